package database

import (
	"log"
	"os"

	"course-platform/internal/domain/course"
	"course-platform/internal/domain/entitlement"
	"course-platform/internal/domain/freeze"
	"course-platform/internal/domain/history"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	// ✅ REQUIRED for UUID generation
	if err := DB.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Fatal("❌ Failed to enable pgcrypto extension:", err)
	}

	if err := DB.AutoMigrate(
		// engine-owned
		&entitlement.Grant{},
		&freeze.UserFreeze{},
		&history.Entry{},

		// owned by course-content management, read-only here
		&course.Course{},
		&course.ReleaseWeek{},
		&course.Enrollment{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	log.Println("✅ Connected and migrated successfully")
}
