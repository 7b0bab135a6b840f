package config

import (
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort     = "8080"
	DefaultHost     = "localhost"
	DefaultLogLevel = "info"
)

// ErrInvalidConfig is returned for config files or overrides that cannot be used.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the settings shared by the server and the command line tool.
type Config struct {
	Host      string    `yaml:"host"`
	Port      string    `yaml:"port"`
	Catalogue string    `yaml:"catalogue"`
	Log       LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	SeqURL string `yaml:"seq_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Host: DefaultHost,
		Port: DefaultPort,
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}

// Load reads the YAML file at path, when path is not empty, over the defaults
// and then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "open config %s", path)
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, errors.Mark(errors.Wrapf(err, "decode config %s", path), ErrInvalidConfig)
		}
	}

	cfg.applyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides fields from PORT, HOST, CATALOGUE, LOG_LEVEL and SEQ_URL.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := getenv("HOST"); v != "" {
		c.Host = v
	}
	if v := getenv("CATALOGUE"); v != "" {
		c.Catalogue = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := getenv("SEQ_URL"); v != "" {
		c.Log.SeqURL = v
	}
}

// Validate checks that the port is set and the log level is known.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.Wrap(ErrInvalidConfig, "port is empty")
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Address returns the host:port the server listens on. An empty host means
// every interface.
func (c Config) Address() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// SlogLevel parses Level; an empty level means info.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	if l.Level == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "log level %q", l.Level), ErrInvalidConfig)
	}
	return level, nil
}
