package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"agentcrm/internal/pkg/logger"
)

func Connect(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		logger.Log.Info("connecting to PostgreSQL")
		return connectWithRetry(dsn, gormCfg)
	}

	logger.Log.Info("using SQLite for local development", zap.String("dsn", dsn))

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		gormCfg,
	)
}

// connectWithRetry переподключается с экспоненциальной задержкой,
// пока база поднимается (docker compose, деплой).
func connectWithRetry(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	operation := func() (*gorm.DB, error) {
		db, err := gorm.Open(postgres.Open(dsn), cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, err
		}
		return db, nil
	}

	notify := func(err error, d time.Duration) {
		logger.Log.Warn("database not ready, retrying", zap.Error(err), zap.Duration("after", d))
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 1 * time.Second
	b.MaxInterval = 10 * time.Second
	b.MaxElapsedTime = 1 * time.Minute

	db, err := backoff.RetryNotifyWithData(operation, b, notify)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after retries: %w", err)
	}
	return db, nil
}
