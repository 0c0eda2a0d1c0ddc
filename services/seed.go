package services

import (
	"fmt"
	"log"

	"helpdesk_app_go/models"

	"gorm.io/gorm"
)

// EnsureDefaultEmailSettings creates the singleton email settings row with
// sensible defaults when none exists yet
func EnsureDefaultEmailSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.EmailSettings{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check email settings: %w", err)
	}
	if count > 0 {
		return nil
	}

	settings := &models.EmailSettings{
		FromName:        "HelpDesk Pro Support",
		FromAddress:     "support@company.com",
		IMAPPort:        993,
		IMAPUseSSL:      true,
		SMTPPort:        587,
		SMTPUseTLS:      true,
		BlockedDomains:  []string{},
		BlockedKeywords: []string{},
	}
	if err := db.Create(settings).Error; err != nil {
		return fmt.Errorf("failed to seed email settings: %w", err)
	}

	log.Println("Seeded default email settings")
	return nil
}
