package database

import (
	"questboard/internal/models"

	"gorm.io/gorm"
)

// Models lists every model included in automatic migration, in dependency
// order. Tests reuse this to build in-memory schemas identical to the
// server's.
func Models() []any {
	return []any{
		&models.User{},
		&models.Connection{},
		&models.Message{},
		&models.Job{},
	}
}

// Migrate runs AutoMigrate for all registered models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
