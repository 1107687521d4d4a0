package store

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/vsinha/purchasing/pkg/config"
)

// gormWriter routes gorm's own log lines through zap
type gormWriter struct {
	log *zap.SugaredLogger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Warnf(format, args...)
}

// InitDB opens the SQLite database named in cfg
func InitDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	if cfg.Database.Type != config.DBTypeSQLite {
		return nil, fmt.Errorf("unsupported database type %q", cfg.Database.Type)
	}

	newLogger := logger.New(
		gormWriter{log: log.Named("gorm").Sugar()},
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(sqlite.Open(cfg.Database.Name), &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.Database.Name, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to configure connections: %w", err)
	}
	// SQLite serialises writers; one connection keeps in-memory databases shared
	sqlDB.SetMaxOpenConns(1)

	log.Named("gorm").Debug("database opened", zap.String("name", cfg.Database.Name))
	return db, nil
}
