package logger

import (
	"fmt"
	"maps"
	"os"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/mattn/go-isatty"

	"github.com/kbukum/catlog/config"
	"github.com/kbukum/catlog/record"
)

// Config contains logging configuration.
type Config struct {
	MinLevel         string         `yaml:"min_level" mapstructure:"min_level" validate:"oneof=debug info warn warning error none off"`
	EnableConsole    bool           `yaml:"enable_console" mapstructure:"enable_console"`
	EnableTimestamps bool           `yaml:"enable_timestamps" mapstructure:"enable_timestamps"`
	EnableColors     bool           `yaml:"enable_colors" mapstructure:"enable_colors"`
	StaticContext    map[string]any `yaml:"static_context" mapstructure:"static_context"`
}

// DefaultConfig returns the configuration used by Default: info level,
// console and timestamps on, colors when stdout is a terminal.
func DefaultConfig() Config {
	return Config{
		MinLevel:         "info",
		EnableConsole:    true,
		EnableTimestamps: true,
		EnableColors:     stdoutIsTerminal(),
	}
}

// ApplyDefaults normalizes the configuration.
func (c *Config) ApplyDefaults() {
	c.MinLevel = strings.ToLower(strings.TrimSpace(c.MinLevel))
	if c.MinLevel == "" {
		c.MinLevel = "info"
	}
}

// Validate validates logging configuration.
func (c *Config) Validate() error {
	err := getValidator().Struct(c)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("logging config: %w", err)
	}
	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of [%s] (got: %v)", fe.Field(), fe.Param(), fe.Value()))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return fmt.Errorf("logging config: %s", strings.Join(messages, "; "))
}

// Severity returns the configured floor. Call Validate first; an unknown
// level yields Info.
func (c *Config) Severity() record.Severity {
	sev, err := record.ParseSeverity(c.MinLevel)
	if err != nil {
		return record.Info
	}
	return sev
}

// LoadConfig reads logging configuration from an optional file, an
// optional .env file and CATLOG_* environment variables, on top of
// DefaultConfig.
func LoadConfig(opts ...config.Option) (Config, error) {
	cfg := DefaultConfig()
	defaults := map[string]any{
		"min_level":         cfg.MinLevel,
		"enable_console":    cfg.EnableConsole,
		"enable_timestamps": cfg.EnableTimestamps,
		"enable_colors":     cfg.EnableColors,
	}
	all := append([]config.Option{
		config.WithEnvPrefix("CATLOG"),
		config.WithDefaults(defaults),
	}, opts...)
	if err := config.Load(&cfg, all...); err != nil {
		return Config{}, err
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// fromEnv builds the default process-wide configuration. LOG_LEVEL
// overrides the level and NO_COLOR disables colors.
func fromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.MinLevel = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.EnableColors = false
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		cfg.MinLevel = "info"
	}
	return cfg
}

func (c Config) clone() Config {
	c.StaticContext = maps.Clone(c.StaticContext)
	return c
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
