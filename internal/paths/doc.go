// Package paths resolves the locations changelint reads its own
// configuration from, following the XDG base directory conventions.
package paths
