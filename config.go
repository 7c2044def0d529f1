package cups

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	conf "github.com/Unknwon/goconfig"
	"gopkg.in/yaml.v3"

	"github.com/enthus-golang/cups/ipp"
)

// Config describes how to reach a CUPS server and how to talk to it.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Client  ClientConfig  `yaml:"client"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig locates the CUPS server and holds its credentials.
type ServerConfig struct {
	Address  string        `yaml:"address"`
	Username string        `yaml:"username"`
	Password string        `yaml:"password"`
	AuthType string        `yaml:"auth_type"`
	Timeout  time.Duration `yaml:"timeout"`
}

// ClientConfig sets the attributes sent with every request.
type ClientConfig struct {
	Charset  string `yaml:"charset"`
	Language string `yaml:"language"`
	Username string `yaml:"username"`
	Version  string `yaml:"version"`
}

// LoggingConfig selects the slog level and handler format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Address:  DefaultSocket,
			AuthType: string(AuthBasic),
			Timeout:  defaultTimeout,
		},
		Client: ClientConfig{
			Charset:  ipp.DefaultCharset,
			Language: ipp.DefaultLanguage,
			Version:  ipp.Version11.String(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig reads a YAML (.yaml, .yml) or INI (.ini, .conf) file over the
// defaults. A missing file yields the defaults.
func LoadConfig(configPath string) (*Config, error) {
	cfg := defaults()

	if _, err := os.Stat(configPath); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(configPath)) {
	case ".ini", ".conf":
		if err := loadINI(configPath, cfg); err != nil {
			return nil, err
		}
	default:
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return cfg, nil
}

// loadINI reads the [server], [client] and [logging] sections. Missing
// sections and keys keep their defaults.
func loadINI(configPath string, cfg *Config) error {
	file, err := conf.LoadConfigFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	section := func(name string) map[string]string {
		s, err := file.GetSection(name)
		if err != nil {
			return nil
		}
		return s
	}
	set := func(dst *string, s map[string]string, key string) {
		if v, ok := s[key]; ok && v != "" {
			*dst = v
		}
	}

	server := section("server")
	set(&cfg.Server.Address, server, "address")
	set(&cfg.Server.Username, server, "username")
	set(&cfg.Server.Password, server, "password")
	set(&cfg.Server.AuthType, server, "auth_type")
	if v := server["timeout"]; v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid server timeout %q: %w", v, err)
		}
		cfg.Server.Timeout = d
	}

	client := section("client")
	set(&cfg.Client.Charset, client, "charset")
	set(&cfg.Client.Language, client, "language")
	set(&cfg.Client.Username, client, "username")
	set(&cfg.Client.Version, client, "version")

	logging := section("logging")
	set(&cfg.Logging.Level, logging, "level")
	set(&cfg.Logging.Format, logging, "format")

	return nil
}

// LoadConfigFromEnv returns the defaults overridden by CUPS_SERVER,
// CUPS_USER, CUPS_PASSWORD and CUPS_LOG_LEVEL.
func LoadConfigFromEnv() *Config {
	cfg := defaults()

	if v := os.Getenv("CUPS_SERVER"); v != "" {
		cfg.Server.Address = v
	}

	if v := os.Getenv("CUPS_USER"); v != "" {
		cfg.Server.Username = v
		cfg.Client.Username = v
	}

	if v := os.Getenv("CUPS_PASSWORD"); v != "" {
		cfg.Server.Password = v
	}

	if v := os.Getenv("CUPS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Address == "" {
		return fmt.Errorf("server address is required")
	}

	if c.Server.Timeout < 0 {
		return fmt.Errorf("server timeout must be non-negative")
	}

	switch AuthType(c.Server.AuthType) {
	case AuthBasic, "":
	default:
		return fmt.Errorf("invalid auth type: %s (valid: basic)", c.Server.AuthType)
	}

	if c.Client.Charset == "" {
		return fmt.Errorf("client charset is required")
	}

	if c.Client.Language == "" {
		return fmt.Errorf("client language is required")
	}

	if _, err := parseVersion(c.Client.Version); err != nil {
		return err
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}

	validFormats := map[string]bool{
		"json": true,
		"text": true,
	}

	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s (valid: json, text)", c.Logging.Format)
	}

	return nil
}

func parseVersion(s string) (ipp.Version, error) {
	switch s {
	case "", "1.1":
		return ipp.Version11, nil
	case "2.0":
		return ipp.Version20, nil
	}
	return ipp.Version{}, fmt.Errorf("invalid ipp version: %s (valid: 1.1, 2.0)", s)
}

// NewLogger builds a slog logger on stderr from the logging section.
func NewLogger(cfg LoggingConfig) (*slog.Logger, error) {
	var lvl slog.Level
	switch cfg.Level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", cfg.Level)
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler

	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	case "text":
		handler = slog.NewTextHandler(os.Stderr, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected json|text)", cfg.Format)
	}

	return slog.New(handler), nil
}

// TransportFromConfig creates the HTTP transport described by the server
// section.
func TransportFromConfig(cfg *Config) (*HTTPTransport, error) {
	opts := []TransportOption{WithTimeout(cfg.Server.Timeout)}
	if cfg.Server.Username != "" || cfg.Server.Password != "" {
		opts = append(opts, WithCredentials(cfg.Server.Username, cfg.Server.Password))
	}
	if cfg.Server.AuthType != "" {
		opts = append(opts, WithAuthType(AuthType(cfg.Server.AuthType)))
	}

	transport, err := NewHTTPTransport(cfg.Server.Address, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating transport: %w", err)
	}
	return transport, nil
}

// NewFromConfig validates cfg and wires an HTTP transport, a logger and a
// Manager from it.
func NewFromConfig(cfg *Config) (*Manager, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger, err := NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}

	transport, err := TransportFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	version, err := parseVersion(cfg.Client.Version)
	if err != nil {
		return nil, err
	}

	username := cfg.Client.Username
	if username == "" {
		username = cfg.Server.Username
	}

	return New(transport,
		WithCharset(cfg.Client.Charset),
		WithLanguage(cfg.Client.Language),
		WithUsername(username),
		WithVersion(version),
		WithLogger(logger),
	), nil
}
