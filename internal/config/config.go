// Package config loads editor settings from a YAML file, KEDIT_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/mnkhoi/kedit/internal/logger"
)

// Config represents the root configuration structure
type Config struct {
	Debug  bool         `mapstructure:"debug"`
	Log    LogConfig    `mapstructure:"log"`
	Editor EditorConfig `mapstructure:"editor"`
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"` // Empty means logger.DefaultPath().
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// EditorConfig holds the editor chrome settings.
type EditorConfig struct {
	MessageTimeout time.Duration `mapstructure:"message_timeout"`
	StatusBar      bool          `mapstructure:"status_bar"`
	Title          bool          `mapstructure:"title"`
}

// LoggerOptions converts the log section into options for logger.InitLogger.
func (c LogConfig) LoggerOptions() logger.Options {
	return logger.Options{
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
	}
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"debug":     "debug",
	"log-level": "log.level",
	"log-path":  "log.path",
}

// Options tells Load where to look.
type Options struct {
	Fs    afero.Fs       // Filesystem the config file is read from. Nil means the OS.
	Path  string         // Explicit config file. Empty searches the default directories.
	Flags *pflag.FlagSet // Flags that override file and environment values.
}

// Load reads the configuration. A missing config file in the default
// directories is not an error; a missing explicit Path is.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	if opts.Fs != nil {
		v.SetFs(opts.Fs)
	}

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("KEDIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	applyDefaults(v)

	if opts.Flags != nil {
		for name, key := range flagKeys {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if opts.Path != "" {
		v.SetConfigFile(opts.Path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, dir := range searchPaths() {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Log.Path = expandPath(cfg.Log.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func searchPaths() []string {
	var dirs []string
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "kedit"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "kedit"))
	}
	return append(dirs, ".")
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.MaxSizeMB < 0 {
		return fmt.Errorf("log.max_size_mb must be >= 0, got %d", c.Log.MaxSizeMB)
	}
	if c.Log.MaxBackups < 0 {
		return fmt.Errorf("log.max_backups must be >= 0, got %d", c.Log.MaxBackups)
	}
	if c.Editor.MessageTimeout <= 0 {
		return fmt.Errorf("editor.message_timeout must be positive, got %v", c.Editor.MessageTimeout)
	}
	return nil
}

// LogLevel returns the parsed log level. Validate has already rejected
// unknown names.
func (c *Config) LogLevel() logger.LogLevel {
	if c.Debug {
		return logger.LevelDebug
	}
	level, _ := logger.ParseLevel(c.Log.Level)
	return level
}

// applyDefaults sets default configuration values
func applyDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)

	v.SetDefault("editor.message_timeout", "5s")
	v.SetDefault("editor.status_bar", true)
	v.SetDefault("editor.title", true)
}
