package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/changelint/internal/config"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/paths"
)

var configInitForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "overwrite an existing config file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage changelint configuration",
	Long: `Manage changelint configuration stored in
$XDG_CONFIG_HOME/changelint/config.yaml.

Without a subcommand, shows the effective configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults, the config file and CHANGELINT_*
environment variables have been applied, and the file it was read from.`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:         "init",
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	Short:       "Write a default config file",
	Long: `Write the default configuration to the --config path, or to
$XDG_CONFIG_HOME/changelint/config.yaml when --config is not given.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	source := config.Used()
	if source == "" {
		source = "defaults (no config file found)"
	}
	fmt.Fprintf(out, "# source: %s\n", source)

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}
	_, err = out.Write(data)
	return errors.Wrap(err, "writing config")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = paths.ConfigFile()
	}

	if _, err := os.Stat(path); err == nil && !configInitForce {
		return errors.NewUserError(errors.Newf("config file already exists: %s", path), "Use --force to overwrite")
	}
	if err := config.Save(config.Default(), path); err != nil {
		return errors.NewSystemError(err, "")
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
