package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/healthy-heart/internal/common"
	"github.com/spf13/viper"
)

// Classifier providers.
const (
	ProviderLinear = "linear"
	ProviderHTTP   = "http"
)

// Config holds all application settings.
type Config struct {
	Logging    LoggingConfig
	Database   DatabaseConfig
	Server     ServerConfig
	Classifier ClassifierConfig
}

// LoggingConfig controls slog output.
type LoggingConfig struct {
	Level  string
	Format string
}

// DatabaseConfig locates the SQLite file.
type DatabaseConfig struct {
	Path string
}

// ServerConfig configures the web form.
type ServerConfig struct {
	Address       string
	JWTSecret     string
	CertDir       string
	SessionTTL    time.Duration
	SecureCookies bool
	TLS           bool
}

// ClassifierConfig selects and configures the risk model.
type ClassifierConfig struct {
	Provider  string
	ModelPath string
	URL       string
	Timeout   time.Duration
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.path", "$HOME/.local/share/heart/user_data.db")
	v.SetDefault("classifier.provider", ProviderLinear)
	v.SetDefault("classifier.model_path", "$HOME/.config/heart/model.yaml")
	v.SetDefault("classifier.url", "http://localhost:8000")
	v.SetDefault("classifier.timeout", 10*time.Second)
	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.session_ttl", 24*time.Hour)
	v.SetDefault("server.secure_cookies", false)
	v.SetDefault("server.tls", false)
	v.SetDefault("server.cert_dir", "$HOME/.config/heart/certs")
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)

	cfg := &Config{
		Logging: LoggingConfig{
			Level:  v.GetString("logging.level"),
			Format: v.GetString("logging.format"),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(v.GetString("database.path")),
		},
		Server: ServerConfig{
			Address:       v.GetString("server.address"),
			JWTSecret:     v.GetString("server.jwt_secret"),
			SessionTTL:    v.GetDuration("server.session_ttl"),
			SecureCookies: v.GetBool("server.secure_cookies"),
			TLS:           v.GetBool("server.tls"),
			CertDir:       ExpandPath(v.GetString("server.cert_dir")),
		},
		Classifier: ClassifierConfig{
			Provider:  strings.ToLower(v.GetString("classifier.provider")),
			ModelPath: ExpandPath(v.GetString("classifier.model_path")),
			URL:       strings.TrimRight(v.GetString("classifier.url"), "/"),
			Timeout:   v.GetDuration("classifier.timeout"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that every command depends on.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}

	switch c.Classifier.Provider {
	case ProviderLinear:
		if c.Classifier.ModelPath == "" {
			return fmt.Errorf("%w: classifier.model_path", common.ErrMissingConfig)
		}
	case ProviderHTTP:
		if c.Classifier.URL == "" {
			return fmt.Errorf("%w: classifier.url", common.ErrMissingConfig)
		}
		if c.Classifier.Timeout <= 0 {
			return fmt.Errorf("%w: classifier.timeout must be positive", common.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unsupported classifier provider %q", common.ErrInvalidConfig, c.Classifier.Provider)
	}

	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("%w: server.session_ttl must be positive", common.ErrInvalidConfig)
	}
	return nil
}

// ValidateServer checks the settings only the web server needs.
func (c *Config) ValidateServer() error {
	if len(c.Server.JWTSecret) < 16 {
		return fmt.Errorf("%w: server.jwt_secret must be at least 16 characters", common.ErrMissingConfig)
	}
	if c.Server.Address == "" {
		return fmt.Errorf("%w: server.address", common.ErrMissingConfig)
	}
	if c.Server.TLS && c.Server.CertDir == "" {
		return fmt.Errorf("%w: server.cert_dir is required with server.tls", common.ErrMissingConfig)
	}
	return nil
}
