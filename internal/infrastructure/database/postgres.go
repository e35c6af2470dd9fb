package database

import (
	"context"
	"fmt"
	"time"

	"go-doctor-api/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const initialRetryDelay = time.Second

func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.TimeZone,
	)
}

// NewPostgresConnection opens the database, retrying transient failures up
// to cfg.MaxRetries times with a doubling delay capped at cfg.MaxRetryDelay.
func NewPostgresConnection(ctx context.Context, cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLogLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		}),
	}

	var (
		db  *gorm.DB
		err error
	)
	delay := initialRetryDelay
	for attempt := 0; ; attempt++ {
		db, err = gorm.Open(postgres.Open(DSN(cfg)), gormConfig)
		if err == nil {
			break
		}
		if attempt >= cfg.MaxRetries {
			return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", attempt+1, err)
		}

		log.Warnf("Failed to connect to database (attempt %d/%d), retrying in %s: %+v", attempt+1, cfg.MaxRetries+1, delay, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay = nextRetryDelay(delay, cfg.MaxRetryDelay)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("Successfully connected to PostgreSQL database")

	return db, nil
}

func nextRetryDelay(current, max time.Duration) time.Duration {
	next := current * 2
	if max > 0 && next > max {
		return max
	}
	return next
}

func gormLogLevel(level logrus.Level) logger.LogLevel {
	switch {
	case level >= logrus.DebugLevel:
		return logger.Info
	case level >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}
