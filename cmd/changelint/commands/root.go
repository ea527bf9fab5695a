// Package commands implements the changelint CLI.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/thoreinstein/changelint/cmd"
	"github.com/thoreinstein/changelint/internal/config"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/logging"
)

var (
	// verbosity holds the count of -v flags.
	verbosity int
	quiet     bool
	logFormat string
	logFile   string
	// configPath is the --config flag; empty means search the default locations.
	configPath string
)

// skipConfigAnnotation marks commands that run without reading the
// config file.
const skipConfigAnnotation = "changelint/skip-config"

// cfg is loaded in PersistentPreRunE, after flags are parsed and bound.
var cfg *config.Config

// flagKeys maps command flags onto configuration keys so a set flag
// overrides the file and environment.
var flagKeys = map[string]string{
	"database":    config.KeyDefaultDatabase,
	"render-mode": config.KeyRenderMode,
	"format":      config.KeyFormat,
	"concurrency": config.KeyConcurrency,
	"strict":      config.KeyStrict,
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv, -vvv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"only log errors")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "",
		"also write logs to file in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"config file (default: ./config.yaml or $XDG_CONFIG_HOME/changelint/config.yaml)")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("changelint version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "changelint",
	Short: "Validate database changelogs before they reach a database",
	Long: `changelint checks Liquibase-style changelogs written in YAML, JSON or
TOML against the rules of a target database engine.

Every change set is checked for its required attributes, and every change
for attributes the target database does not support. Problems are
reported per change set, labelled with the change set's path, id and
author.`,
	Example: `  # Validate against PostgreSQL
  changelint validate db/changelog.yaml --database postgresql

  # Machine-readable output
  changelint validate db/changelog.yaml -d mysql --format json

  # List supported databases
  changelint databases`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return loadConfig(cmd)
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger from -v, -q, --log-format
// and --log-file, and stores it in the command context.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("cannot use --quiet and --verbose together"), "")
	}
	format, err := logging.ParseFormat(logFormat)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	level := logging.LevelFromVerbosity(debugVerbosity())
	if quiet {
		level = slog.LevelError
	}

	console := logging.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()}.Handler()
	handler := console
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(errors.Wrap(err, "opening log file"), "")
		}
		file := logging.Config{Level: level, Format: logging.FormatJSON, Output: f}.Handler()
		handler = logging.NewMultiHandler(console, file)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

// debugVerbosity returns the -v count, or the level requested through
// CHANGELINT_DEBUG when no -v flag was given.
func debugVerbosity() int {
	if verbosity > 0 {
		return verbosity
	}
	switch os.Getenv("CHANGELINT_DEBUG") {
	case "1", "true":
		return 2
	case "2":
		return 3
	default:
		return 0
	}
}

// loadConfig reads the configuration with cmd's flags bound over it.
func loadConfig(cmd *cobra.Command) error {
	if cmd.Name() == "help" || cmd.Name() == "version" || cmd.Annotations[skipConfigAnnotation] == "true" {
		cfg = config.Default()
		return nil
	}

	config.Init()
	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = viper.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return errors.Wrap(bindErr, "binding flags")
	}

	loaded, err := config.Load(configPath)
	if err != nil {
		return errors.NewConfigError(err)
	}
	cfg = loaded
	logging.FromContext(cmd.Context()).Debug("loaded config", "file", config.Used())
	return nil
}

// Execute runs the root command.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which cancels validation
// when it is done.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
