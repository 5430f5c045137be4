package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SEEKTERM_ENDPOINT
const EnvPrefix = "SEEKTERM"

// Config represents the application configuration
type Config struct {
	Version        int                  `toml:"version" mapstructure:"version"`
	Endpoint       string               `toml:"endpoint" mapstructure:"endpoint"`
	RequestTimeout Duration             `toml:"request_timeout" mapstructure:"request_timeout"`
	UserAgent      string               `toml:"user_agent" mapstructure:"user_agent"`
	Log            LogSettings          `toml:"log" mapstructure:"log"`
	Notification   NotificationSettings `toml:"notification" mapstructure:"notification"`
	UI             UISettings           `toml:"ui" mapstructure:"ui"`
}

// LogSettings configures the zap logger
type LogSettings struct {
	Level  string `toml:"level" mapstructure:"level"`
	Format string `toml:"format" mapstructure:"format"`
	// File receives log output; the TUI owns the terminal so stderr is not used
	File string `toml:"file" mapstructure:"file"`
}

// NotificationSettings controls toast timing
type NotificationSettings struct {
	EntranceDelay   Duration `toml:"entrance_delay" mapstructure:"entrance_delay"`
	DisplayDuration Duration `toml:"display_duration" mapstructure:"display_duration"`
	ExitDuration    Duration `toml:"exit_duration" mapstructure:"exit_duration"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen bool `toml:"alt_screen" mapstructure:"alt_screen"`
}

// Duration is a time.Duration stored as text ("30s", "1m30s")
type Duration time.Duration

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) String() string { return time.Duration(d).String() }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(b), err)
	}
	*d = Duration(v)
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	filePath string
	flags    *pflag.FlagSet
}

// Option configures the service
type Option func(*configService)

// WithPath overrides the config file location
func WithPath(path string) Option {
	return func(cs *configService) {
		if path != "" {
			cs.filePath = path
		}
	}
}

// WithFlags binds command-line overrides. Recognised flags are endpoint,
// timeout, user-agent, log-level and log-file; missing ones are skipped.
func WithFlags(fs *pflag.FlagSet) Option {
	return func(cs *configService) { cs.flags = fs }
}

// flagKeys maps flag names to config keys
var flagKeys = map[string]string{
	"endpoint":   "endpoint",
	"timeout":    "request_timeout",
	"user-agent": "user_agent",
	"log-level":  "log.level",
	"log-file":   "log.file",
}

// NewConfigService creates a new config service
func NewConfigService(opts ...Option) ConfigService {
	cs := &configService{filePath: DefaultPath()}
	for _, opt := range opts {
		opt(cs)
	}
	return cs
}

// DefaultPath returns <user config dir>/seekterm/config.toml
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "seekterm", "config.toml")
}

// DefaultLogFile returns <user cache dir>/seekterm/seekterm.log
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "seekterm", "seekterm.log")
}

func (cs *configService) Path() string { return cs.filePath }

// Load reads the service's config file. A missing file yields the defaults
// with environment and flag overrides applied.
func (cs *configService) Load() (*Config, error) {
	return cs.load(cs.filePath, false)
}

// LoadFromPath loads configuration from a specific path, which must exist
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	return cs.load(path, true)
}

func (cs *configService) load(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cs.flags != nil {
		for name, key := range flagKeys {
			if f := cs.flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat config file: %w", err)
		}
		if required {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
	} else {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	var cfg Config
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	)
	if err := v.Unmarshal(&cfg, viper.DecodeHook(hook)); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := config.Validate(); err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks the values a search cannot run without
func (c *Config) Validate() error {
	u, err := url.Parse(strings.TrimSpace(c.Endpoint))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid endpoint %q: must be an http(s) URL", c.Endpoint)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request_timeout must be positive, got %s", c.RequestTimeout)
	}
	n := c.Notification
	if n.EntranceDelay < 0 || n.DisplayDuration <= 0 || n.ExitDuration < 0 {
		return fmt.Errorf("invalid notification timing")
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid log format %q: use console or json", c.Log.Format)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:        1,
		Endpoint:       "http://localhost:8787",
		RequestTimeout: Duration(30 * time.Second),
		UserAgent:      "seekterm",
		Log: LogSettings{
			Level:  "info",
			Format: "console",
			File:   DefaultLogFile(),
		},
		Notification: NotificationSettings{
			EntranceDelay:   Duration(100 * time.Millisecond),
			DisplayDuration: Duration(3 * time.Second),
			ExitDuration:    Duration(300 * time.Millisecond),
		},
		UI: UISettings{
			AltScreen: true,
		},
	}
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("version", d.Version)
	v.SetDefault("endpoint", d.Endpoint)
	v.SetDefault("request_timeout", d.RequestTimeout.String())
	v.SetDefault("user_agent", d.UserAgent)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("notification.entrance_delay", d.Notification.EntranceDelay.String())
	v.SetDefault("notification.display_duration", d.Notification.DisplayDuration.String())
	v.SetDefault("notification.exit_duration", d.Notification.ExitDuration.String())
	v.SetDefault("ui.alt_screen", d.UI.AltScreen)
}
