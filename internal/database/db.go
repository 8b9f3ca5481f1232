package database

import (
	"log"

	"scraptrack-backend/internal/config"
	"scraptrack-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to the database: %v", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.CuttingJob{},
		&models.ScrapEntry{},
		&models.EndPiece{},
		&models.AuditLog{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// Early deployments wrote scrap entries without an approval status. Backfill
	// them to PENDING so the workflow invariant holds for old rows too.
	if DB.Migrator().HasTable(&models.ScrapEntry{}) {
		var nullCount int64
		DB.Raw("SELECT COUNT(*) FROM scrap_entries WHERE approval_status IS NULL OR approval_status = ''").Scan(&nullCount)
		if nullCount > 0 {
			log.Printf("Backfilling %d scrap entries without approval status to PENDING...", nullCount)
			DB.Exec("UPDATE scrap_entries SET approval_status = ? WHERE approval_status IS NULL OR approval_status = ''", models.ApprovalPending)
		}
	}

	log.Println("Database connection established. Migration complete.")
}
