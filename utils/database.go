package utils

import (
	"log"
	"os"

	"notekeep/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DB is the global gorm handle, initialized once at startup.
var DB *gorm.DB

// InitDB connects to Postgres using DATABASE_URL and migrates the schema.
func InitDB() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := MigrateModels(db); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	DB = db
}

// MigrateModels runs the schema migration for every persisted entity.
// Tests reuse it against an in-memory database.
func MigrateModels(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.NoteGroup{},
		&model.Note{},
		&model.Session{},
	)
}
