package config

import (
	"fmt"
	"log"
	"os"

	"clinicrecord-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// ConnectDB opens the Postgres connection, runs migrations and installs the
// partial unique index that keeps at most one pending permission request per
// doctor and record.
func ConnectDB() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USER", "postgres"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_NAME", "clinicrecord"),
			envOr("DB_PORT", "5432"),
		)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.MedicalRecord{},
		&models.HistoricalMedicalRecord{},
		&models.PermissionRequest{},
		&models.Message{},
	); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// AutoMigrate cannot express a partial index, so it is created by hand.
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS unique_pending_request_per_doctor_and_record
		ON permission_requests (doctor_id, medical_record_id)
		WHERE status = 'pending'`).Error; err != nil {
		log.Fatalf("Failed to create pending-request index: %v", err)
	}

	DB = db
	log.Println("Database connected")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
