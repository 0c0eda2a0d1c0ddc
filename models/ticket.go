package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket statuses, in canonical display order
const (
	TicketStatusOpen       = "open"
	TicketStatusInProgress = "in_progress"
	TicketStatusResolved   = "resolved"
	TicketStatusClosed     = "closed"
)

// TicketStatuses lists the known statuses in canonical order
var TicketStatuses = []string{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusResolved,
	TicketStatusClosed,
}

// Ticket priorities
const (
	TicketPriorityLow    = "low"
	TicketPriorityMedium = "medium"
	TicketPriorityHigh   = "high"
	TicketPriorityUrgent = "urgent"
)

// TicketPriorities lists the known priorities from lowest to highest
var TicketPriorities = []string{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityUrgent,
}

// Ticket represents a support request
type Ticket struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Number      string `gorm:"uniqueIndex;not null" json:"number"`
	Subject     string `gorm:"not null" json:"subject"`
	Description string `gorm:"not null" json:"description"`
	Status      string `gorm:"not null;default:open;index" json:"status"`     // open, in_progress, resolved, closed
	Priority    string `gorm:"not null;default:medium;index" json:"priority"` // low, medium, high, urgent

	RequesterID string   `gorm:"type:uuid;not null;index" json:"requester_id"`
	AssigneeID  *string  `gorm:"type:uuid;index" json:"assignee_id,omitempty"`
	Tags        []string `gorm:"serializer:json" json:"tags"`

	// Relationships
	Requester *Profile        `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Assignee  *Profile        `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Messages  []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

// BeforeCreate hook to generate UUID
func (t *Ticket) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

// IsValidTicketStatus checks a status against the known enumeration
func IsValidTicketStatus(status string) bool {
	for _, s := range TicketStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsValidTicketPriority checks a priority against the known enumeration
func IsValidTicketPriority(priority string) bool {
	for _, p := range TicketPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// TableName specifies the table name for Ticket model
func (Ticket) TableName() string {
	return "tickets"
}
