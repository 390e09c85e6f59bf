package database

import (
	"fmt"

	"github.com/terravita/core/internal/config"
	"github.com/terravita/core/internal/models"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens a MySQL connection and optionally runs auto-migration.
// The returned handle is passed explicitly to every service; there is no
// package-level instance.
func Connect(cfg *config.AppConfig, autoMigrate bool) (*gorm.DB, error) {
	logLevel := logger.Warn
	if cfg.IsDev() {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:               cfg.Database.DSNValue(),
		DefaultStringSize: 191,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	if autoMigrate {
		if err := Migrate(db); err != nil {
			return nil, fmt.Errorf("migration failed: %w", err)
		}
	}
	return db, nil
}

// Migrate runs GORM auto-migration for all models. Exported so tests can
// apply the same schema to an in-memory database.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserModel{},
		&models.UserSession{},
		&models.SpeciesModel{},
		&models.ProtectedAreaModel{},
		&models.NewsModel{},
	); err != nil {
		return err
	}

	if db.Dialector.Name() == "mysql" {
		// JSON overlay columns need LONGTEXT; AutoMigrate leaves pre-existing
		// column types alone.
		for _, stmt := range []string{
			"ALTER TABLE `species` MODIFY COLUMN `draft_data` LONGTEXT NULL",
			"ALTER TABLE `protected_areas` MODIFY COLUMN `draft_data` LONGTEXT NULL",
			"ALTER TABLE `news` MODIFY COLUMN `draft_data` LONGTEXT NULL",
		} {
			if err := db.Exec(stmt).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
