package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// FileSystem abstracts the file operations of the loader (useful for testing).
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem using actual file operations.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// LoaderConfig holds dependencies and optional overrides for Load.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // explicit config file path (optional)
	EnvFile    string // explicit .env file path (optional)
	SearchName string // base name searched when ConfigFile is empty
	EnvPrefix  string
	Defaults   map[string]any
}

// Option is a functional option for Load.
type Option func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) Option {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path. Load fails if it does
// not exist.
func WithConfigFile(path string) Option {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) Option {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithSearchName sets the base name looked up in the standard locations
// when no explicit file is given (default "catlog").
func WithSearchName(name string) Option {
	return func(lc *LoaderConfig) { lc.SearchName = name }
}

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(lc *LoaderConfig) { lc.EnvPrefix = prefix }
}

// WithDefaults registers default values. Keys with defaults can be
// overridden from the environment even if the file does not mention them.
func WithDefaults(defaults map[string]any) Option {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

var configExtensions = []string{"yml", "yaml", "json", "toml"}

// ResolveFile returns the config file to read: the explicit path if set,
// otherwise the first <name>.<ext> found in ".", "./config" or "..".
// It returns "" when nothing is found.
func (lc LoaderConfig) ResolveFile() string {
	if lc.ConfigFile != "" {
		return lc.ConfigFile
	}
	name := lc.SearchName
	if name == "" {
		name = "catlog"
	}
	for _, dir := range []string{".", "./config", ".."} {
		for _, ext := range configExtensions {
			path := fmt.Sprintf("%s/%s.%s", dir, name, ext)
			if lc.FileSystem.Exists(path) {
				return path
			}
		}
	}
	return ""
}

// ResolveEnvFile returns the .env file to load, or "".
func (lc LoaderConfig) ResolveEnvFile() string {
	if lc.EnvFile != "" {
		return lc.EnvFile
	}
	if lc.FileSystem.Exists(".env") {
		return ".env"
	}
	return ""
}

// Load fills cfg (a pointer to a struct with mapstructure tags) from the
// resolved sources.
func Load(cfg any, opts ...Option) error {
	lc := LoaderConfig{}
	for _, opt := range opts {
		opt(&lc)
	}
	if lc.FileSystem == nil {
		lc.FileSystem = RealFileSystem{}
	}

	v := viper.New()
	for k, val := range lc.Defaults {
		v.SetDefault(k, val)
	}

	if lc.ConfigFile != "" && !lc.FileSystem.Exists(lc.ConfigFile) {
		return fmt.Errorf("config: file %s not found", lc.ConfigFile)
	}
	if path := lc.ResolveFile(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	if path := lc.ResolveEnvFile(); path != "" {
		if err := lc.FileSystem.LoadEnv(path); err != nil {
			return fmt.Errorf("config: load env file %s: %w", path, err)
		}
	}

	if lc.EnvPrefix != "" {
		v.SetEnvPrefix(lc.EnvPrefix)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}
	return nil
}
