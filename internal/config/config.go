package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string

	DBDriver    string
	MySQLHost   string
	MySQLPort   string
	MySQLDB     string
	MySQLUser   string
	MySQLPass   string
	PostgresDSN string
	SQLitePath  string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs  int
	EventsChannel string

	JWTSecret string

	LogLevel  string
	LogPretty bool

	// WorkflowFile optionally replaces the built-in EHS -> Manager stage table.
	WorkflowFile string
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "workorders")
	v.SetDefault("MYSQL_USER", "workorders")
	v.SetDefault("MYSQL_PASS", "workorders")
	v.SetDefault("POSTGRES_DSN", "")
	v.SetDefault("SQLITE_PATH", "workorders.db")
	v.SetDefault("REDIS_ADDR", "redis:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("EVENTS_CHANNEL", "workorder.transitions")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("WORKFLOW_FILE", "")
}

// Load reads configuration from the environment only.
func Load() (*Config, error) { return LoadFrom("") }

// LoadFrom reads an optional config file (yaml, json, toml or .env by
// extension); environment variables always win over file values.
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	c := &Config{
		AppPort:       v.GetString("APP_PORT"),
		DBDriver:      strings.ToLower(v.GetString("DB_DRIVER")),
		MySQLHost:     v.GetString("MYSQL_HOST"),
		MySQLPort:     v.GetString("MYSQL_PORT"),
		MySQLDB:       v.GetString("MYSQL_DB"),
		MySQLUser:     v.GetString("MYSQL_USER"),
		MySQLPass:     v.GetString("MYSQL_PASS"),
		PostgresDSN:   v.GetString("POSTGRES_DSN"),
		SQLitePath:    v.GetString("SQLITE_PATH"),
		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisDB:       v.GetInt("REDIS_DB"),
		IdempTTLSecs:  v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		EventsChannel: v.GetString("EVENTS_CHANNEL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		LogLevel:      v.GetString("LOG_LEVEL"),
		LogPretty:     v.GetBool("LOG_PRETTY"),
		WorkflowFile:  v.GetString("WORKFLOW_FILE"),
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN for DB_DRIVER=postgres")
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH for DB_DRIVER=sqlite")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (mysql, postgres, sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "postgres":
		return c.PostgresDSN
	case "sqlite":
		return c.SQLitePath
	default:
		return c.MySQLDSN()
	}
}
