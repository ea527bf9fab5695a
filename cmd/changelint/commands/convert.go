package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/changelint/internal/changelog"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/translate"
	"github.com/thoreinstein/changelint/pkg/fileutil"
)

var (
	convertTo     string
	convertOutput string
)

func init() {
	convertCmd.Flags().StringVar(&convertTo, "to", "", "target format: yaml, json, toml (required)")
	convertCmd.Flags().StringVarP(&convertOutput, "output", "o", "", "write to file instead of stdout")
	_ = convertCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(convertCmd)
}

var convertCmd = &cobra.Command{
	Use:   "convert <changelog>",
	Short: "Convert a changelog between YAML, JSON and TOML",
	Long: `Convert a single changelog file to another format.

The source format is taken from the file extension. Includes are not
followed; convert each file separately. Comments are not preserved and
map keys are written in sorted order. Null values are dropped when
converting to TOML.`,
	Example: `  changelint convert db/changelog.yaml --to toml -o db/changelog.toml
  changelint convert db/changelog.toml --to json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := args[0]
	from, err := changelog.FormatOf(src)
	if err != nil {
		return errors.NewUserError(err, "Source must end in .yaml, .yml, .json or .toml")
	}
	to, err := parseTargetFormat(convertTo)
	if err != nil {
		return errors.NewUserError(err, "")
	}

	data, err := fileutil.ReadFileWithLimit(src)
	if err != nil {
		return errors.NewUserError(err, "")
	}
	out, err := translate.Convert(data, from, to)
	if err != nil {
		return errors.NewUserError(errors.Wrapf(err, "converting %s", src), "")
	}

	if convertOutput == "" {
		_, err := cmd.OutOrStdout().Write(out)
		return errors.Wrap(err, "writing output")
	}
	if filepath.Clean(convertOutput) == filepath.Clean(src) {
		return errors.NewUserError(errors.New("output would overwrite the source file"), "")
	}
	if err := fileutil.AtomicWriteFile(convertOutput, out, 0o644); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", convertOutput)
	return nil
}

func parseTargetFormat(s string) (changelog.Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "yaml", "yml":
		return changelog.FormatYAML, nil
	case "json":
		return changelog.FormatJSON, nil
	case "toml":
		return changelog.FormatTOML, nil
	default:
		return "", errors.Wrapf(errors.ErrUnsupportedFormat, "%q (want yaml, json or toml)", s)
	}
}
