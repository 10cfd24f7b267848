package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr    string
	GinMode string
}

// DatabaseConfig selects the GORM dialector and its connection settings.
// Path is only used by the sqlite driver.
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	Path     string
}

type RedisConfig struct {
	Host string
	Port string
}

// Addr returns host:port.
func (r RedisConfig) Addr() string {
	return r.Host + ":" + r.Port
}

type SessionConfig struct {
	Secret string
	// Store is either "redis" or "cookie".
	Store string
}

type LogConfig struct {
	Level  string
	Format string
}

// envBindings keeps the environment variable names stable regardless of the
// nested config keys.
var envBindings = map[string]string{
	"server.addr":       "SERVER_ADDR",
	"server.gin_mode":   "GIN_MODE",
	"database.driver":   "DB_DRIVER",
	"database.host":     "DB_HOST",
	"database.port":     "DB_PORT",
	"database.user":     "DB_USER",
	"database.password": "DB_PASSWORD",
	"database.name":     "DB_NAME",
	"database.path":     "DB_PATH",
	"redis.host":        "REDIS_HOST",
	"redis.port":        "REDIS_PORT",
	"session.secret":    "SESSION_SECRET",
	"session.store":     "SESSION_STORE",
	"log.level":         "LOG_LEVEL",
	"log.format":        "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "taskuser")
	v.SetDefault("database.password", "taskpassword")
	v.SetDefault("database.name", "task_management")
	v.SetDefault("database.path", "tasks.db")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("session.secret", "default-secret-key-change-me")
	v.SetDefault("session.store", "redis")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads configuration from the optional file at path and the
// environment. Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Addr:    v.GetString("server.addr"),
			GinMode: v.GetString("server.gin_mode"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("database.driver")),
			Host:     v.GetString("database.host"),
			Port:     v.GetString("database.port"),
			User:     v.GetString("database.user"),
			Password: v.GetString("database.password"),
			Name:     v.GetString("database.name"),
			Path:     v.GetString("database.path"),
		},
		Redis: RedisConfig{
			Host: v.GetString("redis.host"),
			Port: v.GetString("redis.port"),
		},
		Session: SessionConfig{
			Secret: v.GetString("session.secret"),
			Store:  strings.ToLower(v.GetString("session.store")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Session.Store {
	case "redis", "cookie":
	default:
		return fmt.Errorf("unsupported session store %q", c.Session.Store)
	}

	if c.Session.Secret == "" {
		return fmt.Errorf("session secret must not be empty")
	}

	return nil
}

// String returns a string representation of the config (sensitive values are masked).
func (c *Config) String() string {
	return fmt.Sprintf("Config{Addr: %s, DB: %s@%s:%s/%s, Redis: %s, Session: %s *** (masked) ***}",
		c.Server.Addr, c.Database.Driver, c.Database.Host, c.Database.Port, c.Database.Name,
		c.Redis.Addr(), c.Session.Store)
}
