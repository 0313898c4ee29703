// Package config handles focusd configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/sandeepkv93/focusd/internal/storage"
)

const (
	AppName  = "focusd"
	FileName = "focusd.yaml"
)

// Config mirrors focusd.yaml. Every key may also be set through a FOCUSD_
// prefixed environment variable, e.g. FOCUSD_DATA_FILE.
type Config struct {
	DataFile      string `yaml:"data_file" mapstructure:"data_file"`
	Backend       string `yaml:"backend" mapstructure:"backend"`
	LogLevel      string `yaml:"log_level" mapstructure:"log_level"`
	LogFile       string `yaml:"log_file" mapstructure:"log_file"`
	MarkdownStyle string `yaml:"markdown_style" mapstructure:"markdown_style"`

	source string
}

func Default() *Config {
	return &Config{
		DataFile:      filepath.Join(DataDir(AppName), "data.json"),
		Backend:       storage.BackendJSON,
		LogLevel:      "info",
		MarkdownStyle: "auto",
	}
}

// DataDir follows the XDG base directory rule for application data.
func DataDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".local", "share", app)
}

func ConfigDir(app string) string {
	if base := strings.TrimSpace(os.Getenv("XDG_CONFIG_HOME")); base != "" {
		return filepath.Join(base, app)
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(".", app)
	}
	return filepath.Join(home, ".config", app)
}

// Load reads path, or focusd.yaml from the working directory and then the
// user config directory when path is empty. A missing file yields defaults.
func Load(path string) (*Config, error) {
	def := Default()
	v := viper.New()
	v.SetDefault("data_file", def.DataFile)
	v.SetDefault("backend", def.Backend)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_file", def.LogFile)
	v.SetDefault("markdown_style", def.MarkdownStyle)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(AppName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(ConfigDir(AppName))
	}

	v.SetEnvPrefix("FOCUSD")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	cfg.source = v.ConfigFileUsed()
	return cfg, nil
}

// Source is the config file that was read, if any.
func (c *Config) Source() string {
	return c.source
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataFile) == "" {
		return fmt.Errorf("data_file must not be empty")
	}

	switch c.Backend {
	case storage.BackendJSON, storage.BackendSQLite:
	default:
		return fmt.Errorf("invalid backend: %s (must be json or sqlite)", c.Backend)
	}

	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}

	validStyles := map[string]bool{"auto": true, "dark": true, "light": true, "notty": true}
	if !validStyles[c.MarkdownStyle] {
		return fmt.Errorf("invalid markdown_style: %s (must be auto, dark, light, or notty)", c.MarkdownStyle)
	}
	return nil
}

func (c *Config) Level() slog.Level {
	level, err := parseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// TUILogFile is where the interactive UI writes its log, next to the data
// file unless log_file is set.
func (c *Config) TUILogFile() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(c.DataFile), AppName+".log")
}

func parseLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", raw)
	}
}
