package models

import (
	"time"
)

// EmailSettings is the singleton mail configuration record: outbound
// identity, IMAP/SMTP connection parameters and the spam filter lists.
// At most one row is expected; it is created on first save and updated
// thereafter.
type EmailSettings struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Outbound identity
	FromName    string `json:"from_name"`
	FromAddress string `json:"from_address"`

	// IMAP (inbound)
	IMAPHost     string `json:"imap_host"`
	IMAPPort     int    `gorm:"default:993" json:"imap_port"`
	IMAPUsername string `json:"imap_username"`
	IMAPPassword string `json:"-"`
	IMAPUseSSL   bool   `gorm:"default:true" json:"imap_use_ssl"`

	// SMTP (outbound)
	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `gorm:"default:587" json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"-"`
	SMTPUseTLS   bool   `gorm:"default:true" json:"smtp_use_tls"`

	// Spam filter
	BlockedDomains  []string `gorm:"serializer:json" json:"blocked_domains"`
	BlockedKeywords []string `gorm:"serializer:json" json:"blocked_keywords"`
}

// TableName specifies the table name for EmailSettings model
func (EmailSettings) TableName() string {
	return "email_settings"
}
