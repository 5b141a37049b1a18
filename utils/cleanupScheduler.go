package utils

import (
	"log"
	"time"

	"lms/database"
	"lms/models"

	"github.com/robfig/cron/v3"
)

// PurgeExpiredCodes deletes verification codes that expired or were consumed
// more than a day ago.
func PurgeExpiredCodes() {
	cutoff := time.Now().Add(-24 * time.Hour)

	result := database.Database.Db.
		Where("expires_at < ? OR (used = ? AND updated_at < ?)", time.Now(), true, cutoff).
		Delete(&models.VerificationCode{})
	if result.Error != nil {
		log.Printf("Scheduler: failed to purge verification codes: %v", result.Error)
		return
	}

	if result.RowsAffected > 0 {
		log.Printf("Scheduler: purged %d stale verification codes", result.RowsAffected)
	}
}

// InitializeCleanupScheduler starts the hourly verification-code purge.
func InitializeCleanupScheduler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("@hourly", PurgeExpiredCodes)
	if err != nil {
		log.Printf("Scheduler: failed to register purge job: %v", err)
		return c
	}

	c.Start()
	log.Println("Verification-code cleanup scheduler started.")
	return c
}
