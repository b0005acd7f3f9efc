package config

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"farmlink/internal/models"
)

// OpenDB opens the postgres connection described by cfg and enables the
// PostGIS extension the nearby query depends on.
func OpenDB(cfg DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.SSLMode, cfg.Timezone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS postgis;").Error; err != nil {
		return nil, fmt.Errorf("failed to enable postgis: %w", err)
	}

	return db, nil
}

// Migrate applies the schema and, on postgres, the GiST geography index that
// backs the 10 km radius query. Tests run the same migration against sqlite,
// which simply skips the spatial index.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Community{},
		&models.Produce{},
		&models.Order{},
		&models.Interest{},
		&models.Tracking{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	if db.Dialector.Name() == "postgres" {
		err = db.Exec(
			`CREATE INDEX IF NOT EXISTS idx_users_location ON users
			 USING gist ((ST_SetSRID(ST_MakePoint(location_lng, location_lat), 4326)::geography))`,
		).Error
		if err != nil {
			return fmt.Errorf("failed to create spatial index: %w", err)
		}
	}

	return nil
}
