package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port            string `yaml:"port" env:"SERVER_PORT"`
		Mode            string `yaml:"mode" env:"SERVER_MODE"`
		BasePath        string `yaml:"base_path" env:"SERVER_BASE_PATH"`
		ShutdownTimeout string `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
	} `yaml:"server"`

	Database struct {
		Host            string `yaml:"host" env:"DB_HOST"`
		Port            string `yaml:"port" env:"DB_PORT"`
		User            string `yaml:"user" env:"DB_USER"`
		Password        string `yaml:"password" env:"DB_PASSWORD"`
		DBName          string `yaml:"dbname" env:"DB_NAME"`
		SSLMode         string `yaml:"sslmode" env:"DB_SSLMODE"`
		MaxIdleConns    int    `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
		MaxOpenConns    int    `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
		ConnMaxLifetime string `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
		TxRetries       int    `yaml:"tx_retries" env:"DB_TX_RETRIES"`
		AutoMigrate     bool   `yaml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
	} `yaml:"database"`

	JWT struct {
		Secret                string `yaml:"secret" env:"JWT_SECRET"`
		AccessTokenExpiration string `yaml:"access_token_expiration" env:"JWT_ACCESS_TOKEN_EXPIRATION"`
		Issuer                string `yaml:"issuer" env:"JWT_ISSUER"`
	} `yaml:"jwt"`

	Redis struct {
		Addr          string `yaml:"addr" env:"REDIS_ADDR"`
		Password      string `yaml:"password" env:"REDIS_PASSWORD"`
		DB            int    `yaml:"db" env:"REDIS_DB"`
		LoginAttempts int    `yaml:"login_attempts" env:"REDIS_LOGIN_ATTEMPTS"`
		LoginWindow   string `yaml:"login_window" env:"REDIS_LOGIN_WINDOW"`
	} `yaml:"redis"`

	Admin struct {
		Username     string `yaml:"username" env:"ADMIN_USERNAME"`
		Password     string `yaml:"password" env:"ADMIN_PASSWORD"`
		FullName     string `yaml:"full_name" env:"ADMIN_FULL_NAME"`
		SeedDemoData bool   `yaml:"seed_demo_data" env:"SEED_DEMO_DATA"`
	} `yaml:"admin"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from .env files, a YAML file and environment variables,
// in that order of increasing precedence. Missing files are skipped.
func LoadConfig(configPath string, envFiles ...string) (*Config, error) {
	if err := loadDotEnv(envFiles...); err != nil {
		return nil, err
	}

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// loadDotEnv populates the process environment from .env files without overriding
// variables that are already set.
func loadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"
	config.Server.BasePath = "/api"
	config.Server.ShutdownTimeout = "10s"

	config.Database.Host = "localhost"
	config.Database.Port = "5432"
	config.Database.User = "postgres"
	config.Database.Password = "postgres"
	config.Database.DBName = "hostelcare"
	config.Database.SSLMode = "disable"
	config.Database.MaxIdleConns = 2
	config.Database.MaxOpenConns = 20
	config.Database.ConnMaxLifetime = "1h"
	config.Database.TxRetries = 3
	config.Database.AutoMigrate = true

	config.JWT.AccessTokenExpiration = "12h"
	config.JWT.Issuer = "hostelcare"

	config.Redis.LoginAttempts = 10
	config.Redis.LoginWindow = "1m"

	config.Admin.Username = "admin"
	config.Admin.FullName = "System Administrator"

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Database.Host == "" {
		return errors.New("database host is required")
	}

	if config.JWT.Secret == "" {
		return errors.New("JWT secret is required")
	}

	if config.Database.TxRetries < 0 {
		return errors.New("database tx_retries must not be negative")
	}

	durations := map[string]string{
		"JWT access token expiration":   config.JWT.AccessTokenExpiration,
		"database conn max lifetime":    config.Database.ConnMaxLifetime,
		"server shutdown timeout":       config.Server.ShutdownTimeout,
		"redis login throttling window": config.Redis.LoginWindow,
	}
	for name, value := range durations {
		if _, err := time.ParseDuration(value); err != nil {
			return fmt.Errorf("invalid %s format: %w", name, err)
		}
	}

	if config.Redis.Addr != "" && config.Redis.LoginAttempts <= 0 {
		return errors.New("redis login_attempts must be positive when redis is enabled")
	}

	return nil
}

// GetPostgresConnectionString returns postgres connection string
func (c *Config) GetPostgresConnectionString() string {
	sslMode := c.Database.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     c.Database.Host + ":" + c.Database.Port,
		Path:     "/" + c.Database.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(sslMode),
	}
	return u.String()
}
