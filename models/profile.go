package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile roles
const (
	RoleCustomer = "customer"
	RoleAgent    = "agent"
	RoleAdmin    = "admin"
)

// Profile represents a person: a customer, an agent, or an admin.
// Staff profiles share their ID with the matching AuthUser identity.
type Profile struct {
	ID        string         `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	FullName  string `gorm:"not null" json:"full_name"`
	Email     string `gorm:"index" json:"email"`
	Role      string `gorm:"not null;default:customer;index" json:"role"` // customer, agent, admin
	AvatarURL string `json:"avatar_url"`

	// Contact / address (optional, mostly used for customers)
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

// BeforeCreate hook to generate UUID
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

// IsStaff checks if the profile belongs to an agent or admin
func (p *Profile) IsStaff() bool {
	return p.Role == RoleAgent || p.Role == RoleAdmin
}

// TableName specifies the table name for Profile model
func (Profile) TableName() string {
	return "profiles"
}
