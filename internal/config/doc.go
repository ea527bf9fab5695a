// Package config loads changelint's own settings.
//
// Settings come, in increasing precedence, from built-in defaults, a
// config.yaml found in the working directory or under the XDG config
// directory, CHANGELINT_* environment variables, and command-line flags
// bound by the CLI:
//
//	version: 1
//	default_database: postgresql
//	render_mode: legacy
//	format: text
//	concurrency: 4
//	strict: false
//
// [Load] validates what it reads; use [Validate] to check a Config built
// by hand.
package config
