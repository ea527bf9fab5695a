package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/changelint/internal/changelog"
	"github.com/thoreinstein/changelint/internal/database"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/logging"
	"github.com/thoreinstein/changelint/internal/validator"
)

// isInteractive reports whether the database picker may be shown.
var isInteractive = func(cmd *cobra.Command) bool {
	return logging.IsTTY(os.Stdin) && logging.IsTTY(cmd.OutOrStdout())
}

func init() {
	f := validateCmd.Flags()
	f.StringP("database", "d", "", "target database short name or alias (default from config)")
	f.StringP("format", "f", "", "report format: text, json, line (default from config, text)")
	f.String("render-mode", "", "single-line rendering: legacy, combined (default from config, legacy)")
	f.Bool("strict", false, "fail when warnings are reported")
	f.IntP("concurrency", "j", 0, "change sets validated in parallel (default from config, 4)")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <changelog>",
	Short: "Validate a changelog against a target database",
	Long: `Validate a changelog and every file it includes.

Each change set is checked for id, author and changes. Each change is
checked for its required attributes and for attributes the target
database does not support. Change sets whose dbms attribute excludes the
target are only checked for id and author.

Without --database or a default_database setting, an interactive picker
is shown when running in a terminal. Otherwise the target is unknown and
only rules that apply to every database are enforced.

Exit codes:
  0 - Changelog is valid
  1 - Validation failed, or the changelog could not be read
  2 - Internal error`,
	Example: `  changelint validate db/changelog.yaml -d postgresql
  changelint validate db/changelog.toml -d mariadb --format line --render-mode combined
  CHANGELINT_STRICT=true changelint validate db/changelog.json -d sqlite`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	format, err := validator.ParseFormat(cfg.Format)
	if err != nil {
		return errors.NewConfigError(err)
	}
	mode, err := validator.ParseRenderMode(cfg.RenderMode)
	if err != nil {
		return errors.NewConfigError(err)
	}

	target, err := resolveTarget(cmd)
	if err != nil {
		return err
	}

	cl, err := changelog.NewParser().ParseFile(args[0])
	if err != nil {
		return errors.NewUserError(err, "Check the changelog syntax and include paths")
	}
	logger.Debug("parsed changelog", "path", cl.Path, "files", len(cl.Files), "change_sets", len(cl.ChangeSets))

	opts := []changelog.Option{
		changelog.WithConcurrency(cfg.Concurrency),
		changelog.WithRenderMode(mode),
		changelog.WithLogger(logger),
	}
	if target != nil {
		opts = append(opts, changelog.WithTarget(target))
	}
	result, err := changelog.NewValidator(opts...).Validate(ctx, cl)
	if err != nil {
		return err
	}

	if err := validator.NewReporter(cmd.OutOrStdout(), format).Report(result); err != nil {
		return err
	}

	switch {
	case result.HasErrors():
		return errors.NewUserError(result.Err(), "")
	case cfg.Strict && result.HasWarnings():
		return errors.NewUserError(errors.Wrap(errors.ErrValidationFailed, "warnings reported in strict mode"), "")
	default:
		return nil
	}
}

// resolveTarget returns the configured database, asks for one when
// running interactively, or returns nil for an unknown target.
func resolveTarget(cmd *cobra.Command) (*database.Database, error) {
	name := cfg.DefaultDatabase
	if name == "" && isInteractive(cmd) {
		db, err := pickDatabase()
		if err != nil {
			return nil, errors.NewUserError(err, "Pass --database or set default_database in the config file")
		}
		return db, nil
	}
	if name == "" {
		logging.FromContext(cmd.Context()).Warn("no target database set; validating for an unknown database")
		return nil, nil
	}

	db, err := database.Lookup(name)
	if err != nil {
		return nil, errors.NewUserError(err, "Run: changelint databases")
	}
	return db, nil
}
