package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"

	"github.com/goliatone/go-comlinkgen/pkg/render"
)

// EnvPrefix prefixes every environment variable the CLI reads.
const EnvPrefix = "COMLINKGEN"

// Config represents the comlinkgen configuration
type Config struct {
	Provider    string     `mapstructure:"provider"`
	OutputDir   string     `mapstructure:"output_dir"`
	Dialect     string     `mapstructure:"dialect"`
	MaxRefDepth int        `mapstructure:"max_ref_depth"`
	Log         LogConfig  `mapstructure:"log"`
	HTTP        HTTPConfig `mapstructure:"http"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// HTTPConfig represents remote document fetching configuration
type HTTPConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// Options locate the configuration inputs. Zero values use the working
// directory.
type Options struct {
	// Dir holds comlinkgen.yaml and .env.
	Dir string
	// File points at an explicit config file and wins over Dir.
	File string
	// EnvFile points at an explicit dotenv file.
	EnvFile string
}

var defaults = map[string]any{
	"provider":      "",
	"output_dir":    ".",
	"dialect":       string(render.DialectJS),
	"max_ref_depth": 64,
	"log.level":     "info",
	"log.json":      false,
	"http.timeout":  30 * time.Second,
}

// Keys lists every configuration key, sorted.
func Keys() []string {
	return []string{
		"dialect",
		"http.timeout",
		"log.json",
		"log.level",
		"max_ref_depth",
		"output_dir",
		"provider",
	}
}

// EnvName returns the environment variable bound to key.
func EnvName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// Load reads defaults, then comlinkgen.yaml, then the dotenv file, then the
// process environment. Later sources win.
func Load(opts Options) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("comlinkgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(dirOrDot(opts.Dir))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	if err := applyDotenv(v, opts); err != nil {
		return nil, err
	}

	for _, key := range Keys() {
		if err := v.BindEnv(key, EnvName(key)); err != nil {
			return nil, errors.Wrapf(err, "bind %s", key)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDotenv feeds prefixed dotenv entries into v without touching the
// process environment. Variables already set in the environment win.
func applyDotenv(v *viper.Viper, opts Options) error {
	path := opts.EnvFile
	if path == "" {
		path = filepath.Join(dirOrDot(opts.Dir), ".env")
		if _, err := os.Stat(path); err != nil {
			return nil
		}
	}

	values, err := godotenv.Read(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", path)
	}
	for _, key := range Keys() {
		name := EnvName(key)
		value, ok := values[name]
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		v.Set(key, value)
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.MaxRefDepth < 0 {
		return errors.Newf("max_ref_depth must not be negative, got: %d", cfg.MaxRefDepth)
	}
	if _, err := render.ParseDialect(cfg.Dialect); err != nil {
		return errors.Wrap(err, "dialect")
	}
	if _, err := zapcore.ParseLevel(cfg.Log.Level); err != nil {
		return errors.Wrap(err, "log.level")
	}
	if cfg.HTTP.Timeout < 0 {
		return errors.Newf("http.timeout must not be negative, got: %s", cfg.HTTP.Timeout)
	}
	return nil
}

func dirOrDot(dir string) string {
	if dir == "" {
		return "."
	}
	return dir
}
