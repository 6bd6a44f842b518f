package cmd

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by the binary, for
// example TAPIFY_LOG_LEVEL.
const EnvPrefix = "tapify"

// ErrConfig indicates an unusable configuration.
var ErrConfig = errors.New("invalid configuration")

// Config holds the settings of the binary. Values come from a config file,
// TAPIFY_* environment variables and the root command's flags.
type Config struct {
	LogLevel     logrus.Level `mapstructure:"log_level"`
	LogFormat    string       `mapstructure:"log_format"`
	KnownOnly    bool         `mapstructure:"known_only"`
	ExplicitBool bool         `mapstructure:"explicit_bool"`

	// MCPTools limits the callables served by the mcp command. Empty means all.
	MCPTools []string `mapstructure:"mcp_tools"`

	// Defaults maps command names to override values for their parameters.
	Defaults map[string]map[string]any `mapstructure:"defaults"`
}

// LoadDotenv loads environment variables from the named files, ".env" when
// none are given. A missing file is reported to logger and otherwise ignored.
func LoadDotenv(logger logrus.FieldLogger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		logger.WithError(err).Info("No .env file found, using environment variables")
	}
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("log_level", "warning")
	v.SetDefault("log_format", "text")
	v.SetDefault("known_only", false)
	v.SetDefault("explicit_bool", false)
	v.SetDefault("mcp_tools", []string{})

	return v
}

// loadConfig reads the config file, if one is set, and decodes the settings.
func loadConfig(v *viper.Viper) (*Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrConfig, file, err)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		stringToLogLevelHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("%w: log_format must be \"text\" or \"json\", got %q", ErrConfig, cfg.LogFormat)
	}

	return &cfg, nil
}

// overrides returns the configured defaults for the named command.
func (c *Config) overrides(command string) map[string]any {
	return c.Defaults[strings.ToLower(command)]
}

func stringToLogLevelHookFunc() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if from.Kind() != reflect.String || to != reflect.TypeFor[logrus.Level]() {
			return data, nil
		}

		level, err := logrus.ParseLevel(data.(string)) //nolint:forcetypeassert // Checked above.
		if err != nil {
			return nil, fmt.Errorf("log_level: %w", err)
		}

		return level, nil
	}
}

// newLogger returns a logger writing to w as configured.
func newLogger(cfg *Config, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(cfg.LogLevel)

	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}
