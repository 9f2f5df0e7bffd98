package database

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-storefront-admin/config"
	"go-storefront-admin/pkg/logger"
)

// DSN prefers DATABASE_URL and falls back to the discrete DB_* settings.
func DSN(cfg config.PostgresConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port,
	)
}

// zapWriter routes gorm's own logging into zap.
type zapWriter struct {
	sugar *zap.SugaredLogger
}

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.sugar.Infof(format, args...)
}

func Connect(cfg config.PostgresConfig, log *zap.Logger) (*gorm.DB, error) {
	log = logger.OrNop(log).Named("db")

	gormLog := gormlogger.New(
		zapWriter{sugar: log.Sugar()},
		gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  DSN(cfg),
		PreferSimpleProtocol: true, // pgbouncer / transaction-mode poolers reject prepared statements
	}), &gorm.Config{
		Logger:      gormLog,
		PrepareStmt: false,
	})
	if err != nil {
		return nil, errors.Wrap(err, "error while connecting to postgres")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "error while getting sql.DB")
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Info("database connection established")
	return db, nil
}
