// Package config loads the application configuration from an XDG-compliant
// path (typically ~/.config/daytrack/config.yaml), merging user settings over
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"daytrack/internal/fsutil"
)

// MaxReminderTimes caps the number of daily reminder slots.
const MaxReminderTimes = 3

// Config is the application configuration.
type Config struct {
	// DataDir overrides the default data directory (~/.daytrack).
	DataDir string `yaml:"data_dir,omitempty"`

	// LogLevel sets the zerolog level (debug, info, warn, error).
	LogLevel string `yaml:"log_level,omitempty"`

	// Notifications configures desktop reminders.
	Notifications NotificationConfig `yaml:"notifications,omitempty"`

	// Feedback configures the weekly AI feedback generator.
	Feedback FeedbackConfig `yaml:"feedback,omitempty"`
}

// NotificationConfig defines desktop notification settings.
type NotificationConfig struct {
	// Enabled switches desktop notifications on.
	Enabled bool `yaml:"enabled,omitempty"`

	// ReminderTimes are HH:MM clock times at which to remind about
	// today's unfinished tasks. At most MaxReminderTimes entries.
	ReminderTimes []string `yaml:"reminder_times,omitempty"`
}

// FeedbackConfig defines AI feedback settings.
type FeedbackConfig struct {
	// Model is the Gemini model name used for weekly feedback.
	Model string `yaml:"model,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `yaml:"api_key_env,omitempty"`

	// Endpoint overrides the generative language API base URL.
	Endpoint string `yaml:"endpoint,omitempty"`

	// TimeoutSeconds bounds a single feedback request.
	TimeoutSeconds int `yaml:"timeout_seconds,omitempty"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		DataDir:  defaultDataDir(),
		LogLevel: "info",
		Notifications: NotificationConfig{
			Enabled:       false,
			ReminderTimes: nil,
		},
		Feedback: FeedbackConfig{
			Model:          "gemini-2.0-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			TimeoutSeconds: 30,
		},
	}
}

// Validate checks the notification and feedback settings.
func (c *Config) Validate() error {
	if len(c.Notifications.ReminderTimes) > MaxReminderTimes {
		return fmt.Errorf("config: at most %d reminder times, got %d",
			MaxReminderTimes, len(c.Notifications.ReminderTimes))
	}
	for _, at := range c.Notifications.ReminderTimes {
		if _, err := time.Parse("15:04", at); err != nil {
			return fmt.Errorf("config: reminder time %q is not HH:MM", at)
		}
	}
	if c.Feedback.TimeoutSeconds < 0 {
		return fmt.Errorf("config: feedback timeout must not be negative")
	}
	return nil
}

// DatabasePath returns the sqlite database location under the data dir.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "daytrack.db")
}

// FeedbackCachePath returns the weekly feedback cache location.
func (c *Config) FeedbackCachePath() string {
	return filepath.Join(c.DataDir, "feedback.json")
}

// LogPath returns the application log file location.
func (c *Config) LogPath() string {
	return filepath.Join(c.DataDir, "daytrack.log")
}

// APIKey resolves the feedback API key from the configured environment
// variable. Empty when unset.
func (c *Config) APIKey() string {
	return os.Getenv(c.Feedback.APIKeyEnv)
}

// Load reads the config file at path, or the default location when path is
// empty, merging user settings over defaults. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = configPath()
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Feedback.Model == "" {
		cfg.Feedback.Model = "gemini-2.0-flash"
	}
	if cfg.Feedback.APIKeyEnv == "" {
		cfg.Feedback.APIKeyEnv = "GEMINI_API_KEY"
	}
	if cfg.Feedback.TimeoutSeconds == 0 {
		cfg.Feedback.TimeoutSeconds = 30
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to the default location, creating the directory if
// needed.
func (c *Config) Save() error {
	path := configPath()
	if path == "" {
		return fmt.Errorf("config: cannot resolve config directory")
	}
	if err := fsutil.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	return fsutil.WriteFileAtomic(path, data, 0o644)
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".daytrack"
	}
	return filepath.Join(home, ".daytrack")
}

func configPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "daytrack", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "daytrack", "config.yaml")
}
