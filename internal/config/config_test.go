package config

import (
	"log/slog"
	"testing"
	"time"
)

var envKeys = []string{
	"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
	"JWT_SECRET", "TOKEN_TTL", "FEED_DEFAULT_SIZE", "FEED_MAX_SIZE", "LOG_LEVEL", "CORS_ORIGINS",
}

func TestFromEnv(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg Config)
	}{
		{
			name:    "only secret set uses defaults",
			envVars: map[string]string{"JWT_SECRET": "s3cret"},
			check: func(t *testing.T, cfg Config) {
				defaults := Default()
				if cfg.Port != defaults.Port {
					t.Errorf("Port = %v, want %v", cfg.Port, defaults.Port)
				}
				if cfg.TokenTTL != defaults.TokenTTL {
					t.Errorf("TokenTTL = %v, want %v", cfg.TokenTTL, defaults.TokenTTL)
				}
				if cfg.FeedDefaultSize != defaults.FeedDefaultSize {
					t.Errorf("FeedDefaultSize = %v, want %v", cfg.FeedDefaultSize, defaults.FeedDefaultSize)
				}
				if cfg.FeedMaxSize != defaults.FeedMaxSize {
					t.Errorf("FeedMaxSize = %v, want %v", cfg.FeedMaxSize, defaults.FeedMaxSize)
				}
				if cfg.DB.SSLMode != "disable" {
					t.Errorf("DB.SSLMode = %v, want disable", cfg.DB.SSLMode)
				}
				if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
					t.Errorf("CORSOrigins = %v, want [*]", cfg.CORSOrigins)
				}
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"JWT_SECRET":        "s3cret",
				"PORT":              "9090",
				"DB_HOST":           "db",
				"DB_USER":           "cuoora",
				"DB_PASSWORD":       "pw",
				"DB_NAME":           "cuoora",
				"TOKEN_TTL":         "2h",
				"FEED_DEFAULT_SIZE": "5",
				"FEED_MAX_SIZE":     "50",
				"LOG_LEVEL":         "debug",
				"CORS_ORIGINS":      "http://a.test, http://b.test",
			},
			check: func(t *testing.T, cfg Config) {
				if cfg.Port != "9090" {
					t.Errorf("Port = %v, want 9090", cfg.Port)
				}
				if cfg.TokenTTL != 2*time.Hour {
					t.Errorf("TokenTTL = %v, want 2h", cfg.TokenTTL)
				}
				if cfg.FeedDefaultSize != 5 || cfg.FeedMaxSize != 50 {
					t.Errorf("feed sizes = %d/%d, want 5/50", cfg.FeedDefaultSize, cfg.FeedMaxSize)
				}
				level, err := cfg.SlogLevel()
				if err != nil || level != slog.LevelDebug {
					t.Errorf("SlogLevel = %v, %v, want debug", level, err)
				}
				if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[1] != "http://b.test" {
					t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
				}
				want := "host=db user=cuoora password=pw dbname=cuoora port=5432 sslmode=disable TimeZone=UTC"
				if got := cfg.DB.DSN(); got != want {
					t.Errorf("DSN = %q, want %q", got, want)
				}
			},
		},
		{
			name:    "missing secret",
			envVars: map[string]string{},
			wantErr: true,
		},
		{
			name:    "bad ttl",
			envVars: map[string]string{"JWT_SECRET": "x", "TOKEN_TTL": "forever"},
			wantErr: true,
		},
		{
			name:    "negative feed size",
			envVars: map[string]string{"JWT_SECRET": "x", "FEED_DEFAULT_SIZE": "-1"},
			wantErr: true,
		},
		{
			name:    "default above max",
			envVars: map[string]string{"JWT_SECRET": "x", "FEED_DEFAULT_SIZE": "30", "FEED_MAX_SIZE": "10"},
			wantErr: true,
		},
		{
			name:    "zero max feed size",
			envVars: map[string]string{"JWT_SECRET": "x", "FEED_DEFAULT_SIZE": "0", "FEED_MAX_SIZE": "0"},
			wantErr: true,
		},
		{
			name:    "non numeric feed size",
			envVars: map[string]string{"JWT_SECRET": "x", "FEED_MAX_SIZE": "lots"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			envVars: map[string]string{"JWT_SECRET": "x", "LOG_LEVEL": "chatty"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, key := range envKeys {
				t.Setenv(key, "")
			}
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := FromEnv()
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromEnv() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}
