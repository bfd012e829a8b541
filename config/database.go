package config

import (
	"MindWellGo/models"
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// InitDB opens the database connection and migrates the schema
func InitDB(config Config) error {
	db, err := OpenDB(config)
	if err != nil {
		return err
	}
	DB = db
	return nil
}

// OpenDB opens a connection for the configured driver, sets up the pool and
// migrates the schema.
func OpenDB(config Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch config.DBDriver {
	case "sqlite":
		dialector = sqlite.Open(config.DBPath)
	default:
		dialector = mysql.Open(config.GetDBConnString())
	}

	logLevel := logger.Info
	switch config.Environment {
	case "production":
		logLevel = logger.Warn
	case "test":
		logLevel = logger.Silent
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", config.DBDriver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if config.DBDriver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	if err := migrateDB(db); err != nil {
		return nil, err
	}
	return db, nil
}

// migrateDB migrates all tables
func migrateDB(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.MentalHealthRecord{}); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	return nil
}
