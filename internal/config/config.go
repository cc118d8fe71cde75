// Package config provides configuration management for fpnm using Viper.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fp-node-manager/fpnm/internal/errors"
	"github.com/fp-node-manager/fpnm/internal/paths"
	"github.com/fp-node-manager/fpnm/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides, e.g. FPNM_LOCALE.
const EnvPrefix = "FPNM"

// FileName is the config file name inside the config directory.
const FileName = "config.yaml"

// Config keys.
const (
	KeyVersion         = "version"
	KeyAppID           = "app_id"
	KeyLocale          = "locale"
	KeyDefaultTerminal = "default_terminal"
	KeyEditor          = "editor"
	KeyProbeTimeout    = "probe_timeout"
)

// Config represents the top-level configuration structure.
type Config struct {
	Version         int           `mapstructure:"version" yaml:"version" json:"version" toml:"version"`
	AppID           string        `mapstructure:"app_id" yaml:"app_id" json:"app_id" toml:"app_id"`
	Locale          string        `mapstructure:"locale" yaml:"locale" json:"locale" toml:"locale"`
	DefaultTerminal string        `mapstructure:"default_terminal" yaml:"default_terminal" json:"default_terminal" toml:"default_terminal"`
	Editor          string        `mapstructure:"editor" yaml:"editor" json:"editor" toml:"editor"`
	ProbeTimeout    time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout" json:"probe_timeout" toml:"probe_timeout"`
}

var defaults = map[string]any{
	KeyVersion:         1,
	KeyAppID:           paths.DefaultAppID,
	KeyLocale:          "en",
	KeyDefaultTerminal: "",
	KeyEditor:          "code",
	KeyProbeTimeout:    "5s",
}

// Keys returns every supported config key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ValidKey reports whether key is a supported config key.
func ValidKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Version:      1,
		AppID:        paths.DefaultAppID,
		Locale:       "en",
		Editor:       "code",
		ProbeTimeout: 5 * time.Second,
	}
}

// Init resets Viper and installs the search paths, env binding and defaults.
// Call this once at application startup before accessing config values.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Search paths (in order of precedence)
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.AutomaticEnv()

	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
}

// Load reads the configuration file and validates it.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, it searches the default locations and
// falls back to defaults when nothing is found.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := Check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that report issues
// themselves.
func Read(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
			// implicit load; defaults apply
		case errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist):
			return nil, errors.Mark(errors.Wrapf(err, "config file not found at %s", path), errors.ErrNotFound)
		default:
			return nil, errors.Mark(errors.Wrap(err, "reading config file"), errors.ErrInvalidConfig)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}

// FilePath returns the config file in use, or where one would be written.
func FilePath() string {
	if used := viper.ConfigFileUsed(); used != "" {
		return used
	}
	return filepath.Join(paths.ConfigDir(), FileName)
}

// Set writes key=value into the config file at path, creating it when
// missing. The resulting file must validate; otherwise nothing is written.
func Set(path, key, value string) error {
	if !ValidKey(key) {
		return errors.WithHint(
			errors.Mark(errors.Newf("unknown config key %q", key), errors.ErrInvalidConfig),
			"Run: fpnm config list")
	}

	doc := map[string]any{}
	data, err := fileutil.ReadFileWithLimit(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return errors.Mark(errors.Wrapf(err, "parsing %s", path), errors.ErrInvalidConfig)
		}
		if doc == nil {
			doc = map[string]any{}
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return err
	}

	typed, err := coerce(key, value)
	if err != nil {
		return err
	}
	doc[key] = typed

	cfg, err := decode(doc)
	if err != nil {
		return err
	}
	if err := Check(cfg); err != nil {
		return err
	}

	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.IOf(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(path, doc)
}

// coerce converts a command-line string to the type stored for key.
func coerce(key, value string) (any, error) {
	switch key {
	case KeyVersion:
		var v int
		if err := yaml.Unmarshal([]byte(value), &v); err != nil {
			return nil, errors.Mark(errors.Newf("version must be an integer, got %q", value), errors.ErrInvalidConfig)
		}
		return v, nil
	case KeyProbeTimeout:
		if _, err := time.ParseDuration(value); err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "probe_timeout %q", value), errors.ErrInvalidConfig)
		}
		return value, nil
	default:
		return value, nil
	}
}

// decode overlays doc on the defaults through a private Viper instance.
func decode(doc map[string]any) (*Config, error) {
	v := viper.New()
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	if err := v.MergeConfigMap(doc); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "merging config"), errors.ErrInvalidConfig)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "unmarshaling config"), errors.ErrInvalidConfig)
	}
	return &cfg, nil
}
