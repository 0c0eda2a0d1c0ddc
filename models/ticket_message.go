package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TicketMessage is a reply or internal note attached to a ticket.
// Internal notes are visible to staff only in the UI; they carry no extra
// access control at this layer.
type TicketMessage struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	TicketID   string `gorm:"type:uuid;not null;index" json:"ticket_id"`
	SenderID   string `gorm:"type:uuid;not null;index" json:"sender_id"`
	Body       string `gorm:"not null" json:"body"`
	IsInternal bool   `gorm:"not null;default:false" json:"is_internal"`

	// Relationships
	Sender *Profile `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// BeforeCreate hook to generate UUID
func (m *TicketMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name for TicketMessage model
func (TicketMessage) TableName() string {
	return "ticket_messages"
}
