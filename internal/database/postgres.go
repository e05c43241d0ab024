package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/rina-hagihara0844/meal-planner/internal/config"
	"github.com/rina-hagihara0844/meal-planner/internal/models"
	"github.com/rina-hagihara0844/meal-planner/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const connectAttempts = 15

// Open connects to the database selected by cfg and migrates the schema
func Open(cfg *config.Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverSQLite:
		db, err = NewSQLite(cfg.SQLitePath, LogLevel(cfg.DBLogLevel))
	default:
		db, err = NewPostgres(cfg.DatabaseURL, LogLevel(cfg.DBLogLevel))
	}
	if err != nil {
		return nil, err
	}

	if err := AutoMigrateTables(db, models.All()...); err != nil {
		return nil, err
	}
	return db, nil
}

// NewPostgres подключается к PostgreSQL с retry логикой
func NewPostgres(dsn string, level logger.LogLevel) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	utils.Log.Info("Attempting to connect to database...")

	for i := 1; i <= connectAttempts; i++ {
		db, err = gorm.Open(postgres.Open(dsn), gormConfig(level))
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				if err = sqlDB.Ping(); err == nil {
					utils.Log.Infof("Database connected (attempt %d)", i)
					return db, nil
				}
			} else {
				err = dbErr
			}
		}

		utils.Log.Warnf("Attempt %d failed: %v", i, err)

		// 1, 2, 4, 8 seconds, capped at 10
		waitTime := time.Duration(1<<uint(i-1)) * time.Second
		if waitTime > 10*time.Second {
			waitTime = 10 * time.Second
		}
		time.Sleep(waitTime)
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", connectAttempts, err)
}

// AutoMigrateTables создает таблицы
func AutoMigrateTables(db *gorm.DB, models ...interface{}) error {
	utils.Log.Info("Running database migrations...")

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	utils.Log.Info("Database migrations completed")
	return nil
}

// Close releases the pool behind db
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the database still answers
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// LogLevel maps DB_LOG_LEVEL to a gorm log level
func LogLevel(name string) logger.LogLevel {
	switch strings.ToLower(name) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func gormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true,
	}
}
