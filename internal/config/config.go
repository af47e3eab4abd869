package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/questionboard/questionboard/pkg/logger"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Postgres PostgresConfig
	MongoDB  MongoDBConfig
	Redis    RedisConfig
	Admin    AdminConfig
	Session  SessionConfig
	LogLevel string
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// StoreConfig selects the question store: memory, postgres or mongo.
type StoreConfig struct {
	Driver string
}

type PostgresConfig struct {
	URL      string
	MaxConns int32
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type AdminConfig struct {
	Password string
}

type SessionConfig struct {
	Mode       string
	Secret     string
	TTL        time.Duration
	CookieName string
}

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreMongo    = "mongo"
)

// Addr is the listen address.
func (s ServerConfig) Addr() string { return s.Host + ":" + s.Port }

// IsProduction reports whether cookies must be marked Secure.
func (s ServerConfig) IsProduction() bool { return s.Environment == "production" }

// Addr returns host:port, or "" when Redis is not configured.
func (r RedisConfig) Addr() string {
	if r.Host == "" {
		return ""
	}
	return r.Host + ":" + r.Port
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("SERVER_READ_TIMEOUT", 30)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 30)
	viper.SetDefault("STORE_DRIVER", StoreMemory)
	viper.SetDefault("POSTGRES_MAX_CONNS", 10)
	viper.SetDefault("MONGODB_DATABASE", "questionboard")
	viper.SetDefault("MONGODB_TIMEOUT", 10)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SESSION_MODE", "signed")
	viper.SetDefault("SESSION_TTL_HOURS", 7*24)
	viper.SetDefault("SESSION_COOKIE_NAME", "admin_token")
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  time.Duration(viper.GetInt("SERVER_READ_TIMEOUT")) * time.Second,
			WriteTimeout: time.Duration(viper.GetInt("SERVER_WRITE_TIMEOUT")) * time.Second,
		},
		Store: StoreConfig{
			Driver: viper.GetString("STORE_DRIVER"),
		},
		Postgres: PostgresConfig{
			URL:      viper.GetString("POSTGRES_URL"),
			MaxConns: viper.GetInt32("POSTGRES_MAX_CONNS"),
		},
		MongoDB: MongoDBConfig{
			URI:      viper.GetString("MONGODB_URI"),
			Database: viper.GetString("MONGODB_DATABASE"),
			Timeout:  time.Duration(viper.GetInt("MONGODB_TIMEOUT")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Admin: AdminConfig{
			Password: viper.GetString("ADMIN_PASSWORD"),
		},
		Session: SessionConfig{
			Mode:       viper.GetString("SESSION_MODE"),
			Secret:     viper.GetString("SESSION_SECRET"),
			TTL:        time.Duration(viper.GetInt("SESSION_TTL_HOURS")) * time.Hour,
			CookieName: viper.GetString("SESSION_COOKIE_NAME"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Admin.Password == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required"))
	}
	switch c.Session.Mode {
	case "signed":
		if c.Session.Secret == "" {
			errs = append(errs, errors.New("SESSION_SECRET is required when SESSION_MODE=signed"))
		} else if len(c.Session.Secret) < 32 {
			logger.Warnf("SESSION_SECRET is shorter than 32 bytes; use a longer value in production")
		}
	case "opaque":
		logger.Warnf("SESSION_MODE=opaque: session cookies are not verified server-side")
	default:
		errs = append(errs, fmt.Errorf("unsupported SESSION_MODE %q", c.Session.Mode))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_HOURS must be positive"))
	}
	switch c.Store.Driver {
	case StoreMemory:
	case StorePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required when STORE_DRIVER=postgres"))
		}
	case StoreMongo:
		if c.MongoDB.URI == "" {
			errs = append(errs, errors.New("MONGODB_URI is required when STORE_DRIVER=mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.Store.Driver))
	}
	return errors.Join(errs...)
}
