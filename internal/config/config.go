package config

import (
	"os"
	"path/filepath"
	"time"

	serr "gotree/internal/errors"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines display options, the default root and watch mode settings.
type Config struct {
	Display struct {
		ShowHidden      bool `yaml:"show_hidden"`      // List dot entries too
		DirectoriesOnly bool `yaml:"directories_only"` // List directories only
	} `yaml:"display"`
	Directories struct {
		Default string `yaml:"default"` // Root used when none is given
	} `yaml:"directories"`
	Watch struct {
		DebounceMS int `yaml:"debounce_ms"` // Quiet period before re-rendering
	} `yaml:"watch"`
	Logging struct {
		Debug bool   `yaml:"debug"` // Enable debug lines
		JSON  bool   `yaml:"json"`  // One JSON object per line
		File  string `yaml:"file"`  // Also append log lines here
	} `yaml:"logging"`
}

// fileConfig mirrors Config with pointers so unset keys keep defaults.
type fileConfig struct {
	Display struct {
		ShowHidden      *bool `yaml:"show_hidden"`
		DirectoriesOnly *bool `yaml:"directories_only"`
	} `yaml:"display"`
	Directories struct {
		Default *string `yaml:"default"`
	} `yaml:"directories"`
	Watch struct {
		DebounceMS *int `yaml:"debounce_ms"`
	} `yaml:"watch"`
	Logging struct {
		Debug *bool   `yaml:"debug"`
		JSON  *bool   `yaml:"json"`
		File  *string `yaml:"file"`
	} `yaml:"logging"`
}

// DefaultPath returns ~/.config/gotree/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gotree", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, serr.NewConfigError("error reading config file", path, serr.ConfigNotFound, err)
	}

	var loaded fileConfig
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, serr.NewConfigError("error parsing config file", path, serr.InvalidConfig, err)
	}

	if v := loaded.Display.ShowHidden; v != nil {
		cfg.Display.ShowHidden = *v
	}
	if v := loaded.Display.DirectoriesOnly; v != nil {
		cfg.Display.DirectoriesOnly = *v
	}
	if v := loaded.Directories.Default; v != nil {
		cfg.Directories.Default = *v
	}
	if v := loaded.Watch.DebounceMS; v != nil {
		cfg.Watch.DebounceMS = *v
	}
	if v := loaded.Logging.Debug; v != nil {
		cfg.Logging.Debug = *v
	}
	if v := loaded.Logging.JSON; v != nil {
		cfg.Logging.JSON = *v
	}
	if v := loaded.Logging.File; v != nil {
		cfg.Logging.File = *v
	}

	if err := cfg.Validate(); err != nil {
		return nil, serr.Wrapf(err, "invalid configuration in %s", path)
	}
	return cfg, nil
}

// defaultConfig returns the default configuration.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Display.ShowHidden = false
	cfg.Display.DirectoriesOnly = false
	cfg.Directories.Default = "."
	cfg.Watch.DebounceMS = 200
	return cfg
}

// New creates a new configuration instance with default values.
func New() *Config {
	return defaultConfig()
}

// SaveConfig saves the configuration to the specified file.
// It creates parent directories if they don't exist.
func SaveConfig(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return serr.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return serr.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return serr.FromOS("failed to write config file", path, err)
	}
	return nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return serr.NewConfigError("nil config", "", serr.InvalidConfig, nil)
	}
	if c.Directories.Default == "" {
		return serr.NewConfigError("default directory cannot be empty", "directories.default", serr.InvalidConfig, nil)
	}
	if c.Watch.DebounceMS < 0 {
		return serr.NewConfigError("debounce must be >= 0 milliseconds", "watch.debounce_ms", serr.InvalidConfig, nil)
	}
	return nil
}

// Debounce returns the watch quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
