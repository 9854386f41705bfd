package database

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/cuoora/backend/internal/config"
)

// Service owns the GORM handle. Health always sets "status" to "up" or
// "down".
type Service interface {
	Health(ctx context.Context) map[string]string
	Close() error
	GetDB() *gorm.DB
}

type service struct {
	db     *gorm.DB
	name   string
	logger *slog.Logger
}

// New opens the connection described by cfg and sizes the pool.
func New(cfg config.DBConfig, log *slog.Logger) (Service, error) {
	if log == nil {
		log = slog.Default()
	}
	return Open(cfg.DSN(), cfg.Name, log)
}

func Open(dsn, name string, log *slog.Logger) (Service, error) {
	gormLogger := logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelDebug),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("pool for %s: %w", name, err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connected", "event", "database_connected", "module", "database", "database", name)
	return &service{db: db, name: name, logger: log}, nil
}

func (s *service) GetDB() *gorm.DB {
	return s.db
}

const healthTimeout = 5 * time.Second

func (s *service) Health(ctx context.Context) map[string]string {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	sqlDB, err := s.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		s.logger.Warn("database ping failed", "event", "database_unhealthy", "module", "database", "error", err)
		return map[string]string{"status": "down", "error": err.Error()}
	}

	pool := sqlDB.Stats()
	return map[string]string{
		"status":           "up",
		"database":         s.name,
		"open_connections": strconv.Itoa(pool.OpenConnections),
		"in_use":           strconv.Itoa(pool.InUse),
		"idle":             strconv.Itoa(pool.Idle),
		"wait_count":       strconv.FormatInt(pool.WaitCount, 10),
	}
}

func (s *service) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("close %s: %w", s.name, err)
	}
	s.logger.Info("database disconnected", "event", "database_disconnected", "module", "database", "database", s.name)
	return sqlDB.Close()
}
