package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/pdv-restaurante/pdv-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// IsPostgresURL reports whether a DATABASE_URL points at PostgreSQL
func IsPostgresURL(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://")
}

// SQLitePath turns a DATABASE_URL into a SQLite file path.
// The "sqlite:///./pdv.db" form written by the previous deployment is accepted.
func SQLitePath(databaseURL string) (string, error) {
	if IsPostgresURL(databaseURL) {
		return "", fmt.Errorf("%q is not a sqlite database", databaseURL)
	}
	path := strings.TrimPrefix(databaseURL, "sqlite:///")
	path = strings.TrimPrefix(path, "sqlite://")
	if path == "" {
		return "", fmt.Errorf("empty sqlite path")
	}
	return path, nil
}

// Dialector picks the gorm driver for a DATABASE_URL
func Dialector(databaseURL string) (gorm.Dialector, error) {
	if IsPostgresURL(databaseURL) {
		return postgres.Open(databaseURL), nil
	}
	path, err := SQLitePath(databaseURL)
	if err != nil {
		return nil, err
	}
	return sqlite.Open(path), nil
}

// OpenDatabase opens a gorm handle with the settings every store relies on:
// driver errors translated to gorm sentinels and UTC timestamps.
func OpenDatabase(dialector gorm.Dialector, level gormlogger.LogLevel) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// ConnectDatabase establishes the connection described by cfg
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	level := gormlogger.Warn
	if cfg.IsTest() {
		level = gormlogger.Silent
	}

	db, err := OpenDatabase(dialector, level)
	if err != nil {
		return nil, err
	}

	if !IsPostgresURL(cfg.DatabaseURL) {
		// sqlite allows a single writer; serialize through one connection
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get database instance: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	log.Println("Database connection established successfully")
	return db, nil
}

// Migrate creates or updates the schema for all models
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Product{},
		&models.DiningTable{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
