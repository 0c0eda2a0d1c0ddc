package services

import (
	"fmt"
	"time"

	"helpdesk_app_go/models"

	"gorm.io/gorm"
)

// NextTicketNumber builds the next human-readable ticket number, format
// TK-YYYY-NNNNNN with a per-year sequence. Soft-deleted tickets still count
// so numbers are never reused. The unique index on tickets.number backstops
// concurrent creates.
func NextTicketNumber(db *gorm.DB) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("TK-%d-", year)

	var count int64
	err := db.Model(&models.Ticket{}).Unscoped().
		Where("number LIKE ?", prefix+"%").
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("failed to count tickets for numbering: %w", err)
	}

	return fmt.Sprintf("%s%06d", prefix, count+1), nil
}
