package config

import (
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/thoreinstein/changelint/internal/changelog"
	"github.com/thoreinstein/changelint/internal/errors"
	"github.com/thoreinstein/changelint/internal/paths"
	"github.com/thoreinstein/changelint/internal/validator"
	"github.com/thoreinstein/changelint/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides, e.g. CHANGELINT_DEFAULT_DATABASE.
const EnvPrefix = "CHANGELINT"

// Keys understood in the configuration file and environment.
const (
	KeyVersion         = "version"
	KeyDefaultDatabase = "default_database"
	KeyRenderMode      = "render_mode"
	KeyFormat          = "format"
	KeyConcurrency     = "concurrency"
	KeyStrict          = "strict"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version int `mapstructure:"version" yaml:"version"`
	// DefaultDatabase is used when validate is run without --database.
	DefaultDatabase string `mapstructure:"default_database" yaml:"default_database,omitempty"`
	// RenderMode is "legacy" or "combined".
	RenderMode string `mapstructure:"render_mode" yaml:"render_mode"`
	// Format is the report format: text, json or line.
	Format      string `mapstructure:"format" yaml:"format"`
	Concurrency int    `mapstructure:"concurrency" yaml:"concurrency"`
	// Strict makes warnings fail validation.
	Strict bool `mapstructure:"strict" yaml:"strict"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:     1,
		RenderMode:  validator.RenderLegacy.String(),
		Format:      string(validator.FormatText),
		Concurrency: changelog.DefaultConcurrency,
	}
}

// Init registers defaults, search paths and environment overrides with
// the global viper instance. Call it once before Load.
func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	d := Default()
	viper.SetDefault(KeyVersion, d.Version)
	viper.SetDefault(KeyDefaultDatabase, d.DefaultDatabase)
	viper.SetDefault(KeyRenderMode, d.RenderMode)
	viper.SetDefault(KeyFormat, d.Format)
	viper.SetDefault(KeyConcurrency, d.Concurrency)
	viper.SetDefault(KeyStrict, d.Strict)
}

// Load reads the configuration file and validates the result.
//
// With an empty path the search paths from Init are tried and a missing
// file yields the defaults. An explicit path must exist. Invalid values
// are reported as one error marked with ErrInvalidConfig.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "reading config file")
		}
		if path != "" {
			return nil, errors.Wrapf(errors.ErrNotFound, "config file %s", path)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Mark(errors.Join(errs...), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Used returns the file Load read, or "" when defaults were used.
func Used() string {
	return viper.ConfigFileUsed()
}

// Save writes cfg to path as YAML, creating the parent directory.
func Save(cfg *Config, path string) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	if err := fileutil.AtomicWriteYAML(path, cfg); err != nil {
		return errors.Wrap(err, "writing config")
	}
	return nil
}
