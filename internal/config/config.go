package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/nicobailon/tsm/internal/logging"
	"github.com/nicobailon/tsm/internal/session"
)

const (
	defaultRefreshInterval  = 2 * time.Second
	defaultPreviewLines     = 15
	defaultShowPreview      = true
	defaultMinPreviewHeight = 30
	defaultAgentCommand     = "claude"
	defaultStart            = "agent"
	defaultLogLevel         = "info"
)

var log = logging.ForComponent(logging.CompConfig)

type Config struct {
	RefreshInterval  time.Duration `mapstructure:"refresh_interval"`
	PreviewLines     int           `mapstructure:"preview_lines"`
	ShowPreview      bool          `mapstructure:"show_preview"`
	MinPreviewHeight int           `mapstructure:"min_preview_height"`
	AgentCommand     string        `mapstructure:"agent_command"`
	DefaultStart     string        `mapstructure:"default_start"`
	LogFile          string        `mapstructure:"log_file"`
	LogLevel         string        `mapstructure:"log_level"`

	// File is the config file that was read, empty when running on defaults.
	File string `mapstructure:"-"`
}

func Default() *Config {
	return &Config{
		RefreshInterval:  defaultRefreshInterval,
		PreviewLines:     defaultPreviewLines,
		ShowPreview:      defaultShowPreview,
		MinPreviewHeight: defaultMinPreviewHeight,
		AgentCommand:     defaultAgentCommand,
		DefaultStart:     defaultStart,
		LogLevel:         defaultLogLevel,
	}
}

func (c *Config) StartMode() session.StartMode {
	m, _ := session.ParseStartMode(c.DefaultStart)
	return m
}

func (c *Config) Level() slog.Level {
	l, _ := logging.ParseLevel(c.LogLevel)
	return l
}

func (c *Config) Validate() error {
	if _, err := session.ParseStartMode(c.DefaultStart); err != nil {
		return fmt.Errorf("default_start: %w", err)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh_interval must be positive, got %s", c.RefreshInterval)
	}
	if c.PreviewLines < 0 {
		return fmt.Errorf("preview_lines must not be negative, got %d", c.PreviewLines)
	}
	return nil
}

// Load reads explicit when set, otherwise the first config.yaml, config.yml
// or config.toml found under $XDG_CONFIG_HOME/tsm and ~/.config/tsm.
// TSM_* environment variables override file values.
func Load(explicit string) (*Config, error) {
	v, err := newViper(explicit)
	if err != nil {
		return nil, err
	}
	return decode(v)
}

// Watch re-reads the config file whenever it changes and hands the new
// value to onChange. Files that fail to parse or validate are skipped.
// Without a config file there is nothing to watch.
func Watch(explicit string, onChange func(*Config)) error {
	v, err := newViper(explicit)
	if err != nil {
		return err
	}
	if v.ConfigFileUsed() == "" {
		return nil
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		cfg, err := decode(v)
		if err != nil {
			log.Warn("reload_failed", slog.String("file", e.Name), slog.String("error", err.Error()))
			return
		}
		log.Info("reloaded", slog.String("file", e.Name), slog.String("op", e.Op.String()))
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

func newViper(explicit string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault("refresh_interval", defaultRefreshInterval)
	v.SetDefault("preview_lines", defaultPreviewLines)
	v.SetDefault("show_preview", defaultShowPreview)
	v.SetDefault("min_preview_height", defaultMinPreviewHeight)
	v.SetDefault("agent_command", defaultAgentCommand)
	v.SetDefault("default_start", defaultStart)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", defaultLogLevel)
	v.SetEnvPrefix("TSM")
	v.AutomaticEnv()

	file := explicit
	if file == "" {
		file = findConfigFile()
	}
	if file == "" {
		return v, nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", file, err)
	}
	return v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func searchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "tsm"))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", "tsm"))
	}
	return dirs
}

func findConfigFile() string {
	// yaml wins over toml in the same directory
	for _, dir := range searchDirs() {
		for _, name := range []string{"config.yaml", "config.yml", "config.toml"} {
			path := filepath.Join(dir, name)
			info, err := os.Stat(path)
			if err == nil && !info.IsDir() {
				return path
			}
			if err != nil && !errors.Is(err, os.ErrNotExist) {
				log.Debug("stat_failed", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
	}
	return ""
}
