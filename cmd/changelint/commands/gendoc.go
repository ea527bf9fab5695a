package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/changelint/cmd"
	"github.com/thoreinstein/changelint/internal/errors"
)

var (
	genDocDir    string
	genDocFormat string
)

func init() {
	genDocCmd.Flags().StringVar(&genDocDir, "dir", "", "output directory (required)")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "documentation format: markdown, man")
	_ = genDocCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(genDocCmd)
}

var genDocCmd = &cobra.Command{
	Use:         "gen-doc",
	Short:       "Generate reference documentation for the CLI",
	Hidden:      true,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Args:        cobra.NoArgs,
	RunE:        runGenDoc,
}

func runGenDoc(c *cobra.Command, _ []string) error {
	if err := os.MkdirAll(genDocDir, 0o755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	var err error
	switch genDocFormat {
	case "markdown":
		err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, frontMatter, referenceLink)
	case "man":
		err = doc.GenManTree(rootCmd, &doc.GenManHeader{
			Title:   "CHANGELINT",
			Section: "1",
			Source:  "changelint " + cmd.Version,
		}, genDocDir)
	default:
		return errors.NewUserError(errors.Newf("unknown documentation format %q", genDocFormat), "Use --format markdown or --format man")
	}
	if err != nil {
		return errors.Wrapf(err, "generating %s", genDocFormat)
	}

	fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
	return nil
}

// frontMatter titles changelint_config_show.md as "config show".
func frontMatter(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	title := strings.ReplaceAll(strings.TrimPrefix(base, "changelint_"), "_", " ")
	return fmt.Sprintf("---\ntitle: %q\ndescription: %q\n---\n", title, "Reference for "+title)
}

func referenceLink(name string) string {
	return "/reference/" + strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))) + "/"
}
