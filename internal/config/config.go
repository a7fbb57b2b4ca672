// Package config resolves launchdash settings from defaults, an optional
// config file, LAUNCHDASH_* environment variables and command-line flags, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. LAUNCHDASH_SERVER_PORT.
const EnvPrefix = "LAUNCHDASH"

type Config struct {
	Dataset   DatasetConfig   `mapstructure:"dataset" yaml:"dataset"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Chart     ChartConfig     `mapstructure:"chart" yaml:"chart"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
}

type DatasetConfig struct {
	Path string `mapstructure:"path" yaml:"path"` // CSV file
	DB   string `mapstructure:"db" yaml:"db"`     // SQLite store; wins over Path when set
}

type ServerConfig struct {
	Bind     string `mapstructure:"bind" yaml:"bind"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Compress bool   `mapstructure:"compress" yaml:"compress"`
}

type DashboardConfig struct {
	Title      string   `mapstructure:"title" yaml:"title"`
	Sites      []string `mapstructure:"sites" yaml:"sites"`
	SliderStep float64  `mapstructure:"slider_step" yaml:"slider_step"`
}

type ChartConfig struct {
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dataset.path", "spacex_launch_dash.csv")
	v.SetDefault("dataset.db", "")
	v.SetDefault("server.bind", "127.0.0.1")
	v.SetDefault("server.port", 8050)
	v.SetDefault("server.compress", true)
	v.SetDefault("dashboard.title", "SpaceX Launch Records Dashboard")
	v.SetDefault("dashboard.sites", []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"})
	v.SetDefault("dashboard.slider_step", 1000)
	v.SetDefault("chart.width", 900)
	v.SetDefault("chart.height", 450)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load resolves the configuration. path may be empty. flags maps config keys
// (e.g. "server.port") to command-line flags; a flag only overrides when the
// user set it.
func Load(path string, flags map[string]*pflag.Flag) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	for key, f := range flags {
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config to struct: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, _ := Load("", nil)
	return cfg
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Dashboard.SliderStep <= 0 {
		errs = append(errs, fmt.Errorf("dashboard.slider_step must be positive, got %v", c.Dashboard.SliderStep))
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size %dx%d must be positive", c.Chart.Width, c.Chart.Height))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	if c.Dataset.Path == "" && c.Dataset.DB == "" {
		errs = append(errs, errors.New("one of dataset.path or dataset.db is required"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Addr is the server listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}

// WriteYAML writes the effective configuration.
func (c *Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
