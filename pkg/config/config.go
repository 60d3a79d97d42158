// Package config loads moderator server settings from flags, MODERATOR_*
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/minely/moderator/pkg/audit"
	"github.com/minely/moderator/pkg/cache"
	"github.com/minely/moderator/pkg/database"
)

// EnvPrefix prefixes every environment variable, e.g. MODERATOR_DATABASE_DSN.
const EnvPrefix = "MODERATOR"

// Keys understood by Load.
const (
	KeyConfig             = "config"
	KeyListen             = "listen"
	KeySeedFile           = "seed-file"
	KeyLogLevel           = "log.level"
	KeyLogFormat          = "log.format"
	KeyDatabaseType       = "database.type"
	KeyDatabaseDSN        = "database.dsn"
	KeyAuditEnabled       = "audit.enabled"
	KeyAuditRetentionDays = "audit.retention-days"
	KeyCacheEnabled       = "cache.enabled"
	KeyCacheTTL           = "cache.ttl"
	KeyCacheMaxSize       = "cache.max-size"
	KeyCORSAllowedOrigins = "cors.allowed-origins"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string
	Format string
}

// CORSConfig controls cross-origin access to /api.
type CORSConfig struct {
	AllowedOrigins []string
}

// Config is the complete server configuration.
type Config struct {
	Listen   string
	SeedFile string // Empty serves the built-in sample data
	Log      LogConfig
	Database database.Config
	Audit    audit.Config
	Cache    cache.Config
	CORS     CORSConfig
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Listen:   ":8080",
		Log:      LogConfig{Level: "info", Format: LogFormatText},
		Database: database.DefaultConfig(),
		Audit:    audit.DefaultConfig(),
		Cache:    cache.DefaultConfig(),
		CORS:     CORSConfig{AllowedOrigins: []string{"*"}},
	}
}

// RegisterFlags declares the server flags with their defaults on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String(KeyConfig, "", "Path to a YAML config file")
	fs.String(KeyListen, d.Listen, "Address to listen on")
	fs.String(KeySeedFile, "", "YAML file with the initial records (default: built-in sample data)")
	fs.String(KeyLogLevel, d.Log.Level, "Log level: debug, info, warn, error")
	fs.String(KeyLogFormat, d.Log.Format, "Log format: text or json")
	fs.String(KeyDatabaseType, d.Database.Type, "History database type: "+strings.Join(database.Types, ", "))
	fs.String(KeyDatabaseDSN, d.Database.DSN, "History database connection string")
	fs.Bool(KeyAuditEnabled, d.Audit.Enabled, "Record status changes in the history")
	fs.Int(KeyAuditRetentionDays, d.Audit.RetentionDays, "Days to keep history events (0 keeps forever)")
	fs.Bool(KeyCacheEnabled, d.Cache.Enabled, "Cache JSON API responses")
	fs.Duration(KeyCacheTTL, d.Cache.TTL, "Cached response lifetime")
	fs.Int(KeyCacheMaxSize, d.Cache.MaxSize, "Maximum cached responses")
	fs.StringSlice(KeyCORSAllowedOrigins, d.CORS.AllowedOrigins, "Origins allowed to call /api")
}

// NewViper returns a viper instance bound to fs and the environment.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	if fs != nil {
		if err := v.BindPFlags(fs); err != nil {
			return nil, fmt.Errorf("binding flags: %w", err)
		}
	}
	return v, nil
}

// Load resolves the configuration from v. Precedence is flag, environment,
// config file, default.
func Load(v *viper.Viper) (Config, error) {
	d := Default()
	v.SetDefault(KeyListen, d.Listen)
	v.SetDefault(KeyLogLevel, d.Log.Level)
	v.SetDefault(KeyLogFormat, d.Log.Format)
	v.SetDefault(KeyDatabaseType, d.Database.Type)
	v.SetDefault(KeyDatabaseDSN, d.Database.DSN)
	v.SetDefault(KeyAuditEnabled, d.Audit.Enabled)
	v.SetDefault(KeyAuditRetentionDays, d.Audit.RetentionDays)
	v.SetDefault(KeyCacheEnabled, d.Cache.Enabled)
	v.SetDefault(KeyCacheTTL, d.Cache.TTL)
	v.SetDefault(KeyCacheMaxSize, d.Cache.MaxSize)
	v.SetDefault(KeyCORSAllowedOrigins, d.CORS.AllowedOrigins)

	if path := v.GetString(KeyConfig); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg := Config{
		Listen:   v.GetString(KeyListen),
		SeedFile: v.GetString(KeySeedFile),
		Log: LogConfig{
			Level:  v.GetString(KeyLogLevel),
			Format: v.GetString(KeyLogFormat),
		},
		Database: database.Config{
			Type:     v.GetString(KeyDatabaseType),
			DSN:      v.GetString(KeyDatabaseDSN),
			LogLevel: d.Database.LogLevel,
		},
		Audit: audit.Config{
			Enabled:       v.GetBool(KeyAuditEnabled),
			RetentionDays: v.GetInt(KeyAuditRetentionDays),
		},
		Cache: cache.Config{
			Enabled: v.GetBool(KeyCacheEnabled),
			TTL:     v.GetDuration(KeyCacheTTL),
			MaxSize: v.GetInt(KeyCacheMaxSize),
		},
		CORS: CORSConfig{AllowedOrigins: v.GetStringSlice(KeyCORSAllowedOrigins)},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if c.Listen == "" {
		errs = append(errs, errors.New("listen address is required"))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	switch c.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unsupported log format %q (expected text or json)", c.Log.Format))
	}
	if !validDatabaseType(c.Database.Type) {
		errs = append(errs, fmt.Errorf("unsupported database type %q (supported: %s)",
			c.Database.Type, strings.Join(database.Types, ", ")))
	} else if c.Database.Type != database.TypeSQLite && c.Database.DSN == "" {
		errs = append(errs, fmt.Errorf("database DSN is required for %s", c.Database.Type))
	}
	if c.Audit.RetentionDays < 0 {
		errs = append(errs, fmt.Errorf("audit retention days must not be negative, got %d", c.Audit.RetentionDays))
	}
	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			errs = append(errs, fmt.Errorf("cache TTL must be positive, got %s", c.Cache.TTL))
		}
		if c.Cache.MaxSize <= 0 {
			errs = append(errs, fmt.Errorf("cache max size must be positive, got %d", c.Cache.MaxSize))
		}
	}
	return errors.Join(errs...)
}

func validDatabaseType(t string) bool {
	return t == "postgresql" || slices.Contains(database.Types, t)
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("unsupported log level %q (expected debug, info, warn or error)", s)
	}
	return l, nil
}

// NewLogger builds the structured logger described by cfg.
func NewLogger(w io.Writer, cfg LogConfig) (*slog.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case LogFormatJSON:
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case LogFormatText, "":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q (expected text or json)", cfg.Format)
	}
}
