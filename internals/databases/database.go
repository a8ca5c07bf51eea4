package database

import (
	"embed"
	"log"
	"time"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"bimbelku_backend/internals/configs"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Connect membuka koneksi GORM ke PostgreSQL dari Config.
func Connect(cfg *configs.Config) (*gorm.DB, error) {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true, // 👍 cocok untuk PgBouncer (transaction pooling)
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	log.Println("✅ DB connected.")
	return db, nil
}

// TunePool menyetel pool database/sql di bawah GORM.
func TunePool(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("pool tune err: %v", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
}

// Migrate menjalankan migrasi goose yang ter-embed di binary.
func Migrate(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	log.Println("🔄 Applying database migrations...")
	if err := goose.Up(sqlDB, "migrations"); err != nil {
		return err
	}
	log.Println("✅ Migrations applied successfully")
	return nil
}
