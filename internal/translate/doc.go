// Package translate converts changelog documents between YAML, JSON and
// TOML. It backs the convert command.
package translate
