// Package logging builds the slog loggers used by changelint.
//
// The console handler writes compact, optionally colored lines to stderr;
// JSON output is available for machine consumption. [LevelFromVerbosity]
// maps repeated -v flags to a level, and [MultiHandler] lets the CLI write
// to the console and a --log-file at once.
//
// Loggers travel through a context.Context:
//
//	ctx = logging.NewContext(ctx, logger)
//	logging.FromContext(ctx).Debug("parsed changelog", "files", n)
//
// Tests use [ForTest] so output is attached to the running test.
package logging
