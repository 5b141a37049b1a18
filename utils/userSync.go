package utils

import (
	"log"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// SyncUserToCRM mirrors a new signup to the configured CRM endpoint. The
// call is best-effort: failures are logged, never surfaced to the user.
func SyncUserToCRM(name, email string) {
	syncURL := config.AppConfig.CRMSyncURL
	if syncURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)

	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{
			"name":  name,
			"email": email,
		}).
		Post(syncURL)
	if err != nil {
		log.Printf("Error syncing user to CRM: %v", err)
		return
	}

	if resp.IsError() {
		log.Printf("CRM sync failed for %s: %s", email, resp.Status())
		return
	}

	log.Printf("User synced successfully to CRM: %s", email)
}
