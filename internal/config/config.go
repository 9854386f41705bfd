package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the service settings read from the environment.
type Config struct {
	// Port the HTTP server listens on
	// Default: 8080
	Port string

	DB DBConfig

	// JWTSecret signs and verifies access tokens. Required.
	JWTSecret string

	// TokenTTL is how long an issued token stays valid
	// Default: 72h
	TokenTTL time.Duration

	// FeedDefaultSize is used when a feed request does not ask for a size
	// Default: 20
	FeedDefaultSize int

	// FeedMaxSize caps the size a client may ask for
	// Default: 100
	FeedMaxSize int

	// LogLevel is one of debug, info, warn, error
	// Default: info
	LogLevel string

	// CORSOrigins lists allowed origins
	// Default: *
	CORSOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN returns the key=value connection string understood by the postgres
// driver.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode,
	)
}

func Default() Config {
	return Config{
		Port: "8080",
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			SSLMode: "disable",
		},
		TokenTTL:        72 * time.Hour,
		FeedDefaultSize: 20,
		FeedMaxSize:     100,
		LogLevel:        "info",
		CORSOrigins:     []string{"*"},
	}
}

// Load reads a .env file when one exists, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

func FromEnv() (Config, error) {
	cfg := Default()

	setString(&cfg.Port, "PORT")
	setString(&cfg.DB.Host, "DB_HOST")
	setString(&cfg.DB.Port, "DB_PORT")
	setString(&cfg.DB.User, "DB_USER")
	setString(&cfg.DB.Password, "DB_PASSWORD")
	setString(&cfg.DB.Name, "DB_NAME")
	setString(&cfg.DB.SSLMode, "DB_SSLMODE")
	setString(&cfg.JWTSecret, "JWT_SECRET")
	setString(&cfg.LogLevel, "LOG_LEVEL")

	if v := os.Getenv("TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = d
	}
	if err := setInt(&cfg.FeedDefaultSize, "FEED_DEFAULT_SIZE"); err != nil {
		return Config{}, err
	}
	if err := setInt(&cfg.FeedMaxSize, "FEED_MAX_SIZE"); err != nil {
		return Config{}, err
	}
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		cfg.CORSOrigins = origins
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET must be set")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %v", c.TokenTTL)
	}
	if c.FeedDefaultSize < 0 {
		return fmt.Errorf("FEED_DEFAULT_SIZE must be >= 0, got %d", c.FeedDefaultSize)
	}
	if c.FeedMaxSize < 1 {
		return fmt.Errorf("FEED_MAX_SIZE must be >= 1, got %d", c.FeedMaxSize)
	}
	if c.FeedDefaultSize > c.FeedMaxSize {
		return fmt.Errorf("FEED_DEFAULT_SIZE (%d) must not exceed FEED_MAX_SIZE (%d)", c.FeedDefaultSize, c.FeedMaxSize)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if len(c.CORSOrigins) == 0 {
		return errors.New("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}
