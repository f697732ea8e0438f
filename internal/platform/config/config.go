package config

import (
	"fmt"
	"log"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store drivers understood by the service.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the contact book binaries.
type Config struct {
	LogLevel string `mapstructure:"LOG_LEVEL"`
	HTTPPort int    `mapstructure:"HTTP_PORT"`

	// LogFile switches logging from the console to a rotated file.
	LogFile       string `mapstructure:"LOG_FILE"`
	LogMaxSizeMB  int    `mapstructure:"LOG_MAX_SIZE_MB"`
	LogMaxBackups int    `mapstructure:"LOG_MAX_BACKUPS"`
	LogMaxAgeDays int    `mapstructure:"LOG_MAX_AGE_DAYS"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`

	// Postgres connection target. Every repository operation dials with these.
	DBHost                  string `mapstructure:"DB_HOST"`
	DBPort                  int    `mapstructure:"DB_PORT"`
	DBName                  string `mapstructure:"DB_NAME"`
	DBUser                  string `mapstructure:"DB_USER"`
	DBPassword              string `mapstructure:"DB_PASSWORD"`
	DBSSLMode               string `mapstructure:"DB_SSLMODE"`
	DBConnectTimeoutSeconds int    `mapstructure:"DB_CONNECT_TIMEOUT_SECONDS"`

	SQLitePath string `mapstructure:"SQLITE_PATH"`

	// NATSURL enables contact change events when set.
	NATSURL string `mapstructure:"NATS_URL"`
}

// PostgresDSN renders the connection target as a postgres:// URL.
// Credentials are escaped so passwords may contain any character.
func (c *Config) PostgresDSN() string {
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort)),
		Path:   "/" + c.DBName,
	}
	if c.DBUser != "" {
		if c.DBPassword != "" {
			u.User = url.UserPassword(c.DBUser, c.DBPassword)
		} else {
			u.User = url.User(c.DBUser)
		}
	}
	q := url.Values{}
	if c.DBSSLMode != "" {
		q.Set("sslmode", c.DBSSLMode)
	}
	if c.DBConnectTimeoutSeconds > 0 {
		q.Set("connect_timeout", strconv.Itoa(c.DBConnectTimeoutSeconds))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ConnectTimeout is the dial timeout applied per operation. Non-positive
// settings fall back to five seconds.
func (c *Config) ConnectTimeout() time.Duration {
	if c.DBConnectTimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.DBConnectTimeoutSeconds) * time.Second
}

// Validate checks the fields the selected store driver depends on.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres:
		if c.DBHost == "" {
			return fmt.Errorf("DB_HOST is required for driver %q", c.StoreDriver)
		}
		if c.DBPort <= 0 || c.DBPort > 65535 {
			return fmt.Errorf("DB_PORT %d out of range", c.DBPort)
		}
		if c.DBName == "" {
			return fmt.Errorf("DB_NAME is required for driver %q", c.StoreDriver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %q", c.StoreDriver)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	return nil
}

// Load reads config.defaults.yaml (if present), a .env file (if present) and
// APP_-prefixed environment variables, in increasing order of precedence.
// serviceName is only used in log output.
func Load(serviceName string) (*Config, error) {
	// A missing .env is the normal case outside development.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config.defaults")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath("../../../configs")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.SetEnvPrefix("APP")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("%s: config.defaults.yaml not found; using defaults and environment variables.", serviceName)
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_PORT", 8080)
	v.SetDefault("LOG_FILE", "")
	v.SetDefault("LOG_MAX_SIZE_MB", 50)
	v.SetDefault("LOG_MAX_BACKUPS", 5)
	v.SetDefault("LOG_MAX_AGE_DAYS", 28)
	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_NAME", "contactosdb")
	v.SetDefault("DB_USER", "contactbook")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_CONNECT_TIMEOUT_SECONDS", 5)
	v.SetDefault("SQLITE_PATH", "./data/contactbook.db")
	v.SetDefault("NATS_URL", "")
}
