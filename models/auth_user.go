package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthUser is a login identity in the auth subsystem. Only staff (agents and
// admins) have identities; customers exist as Profile records only.
type AuthUser struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`

	// Auxiliary metadata carried on the identity (mirrors the profile row)
	FullName string `gorm:"not null" json:"full_name"`
	Role     string `gorm:"not null;default:agent" json:"role"` // agent, admin

	IsActive            bool       `gorm:"not null;default:true" json:"is_active"`
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockoutUntil        *time.Time `json:"-"`
	LastLoginAt         *time.Time `json:"last_login_at"`
}

// BeforeCreate hook to generate UUID
func (u *AuthUser) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}

// IsAdmin checks if the identity carries the admin role
func (u *AuthUser) IsAdmin() bool {
	return u.Role == "admin"
}

// TableName specifies the table name for AuthUser model
func (AuthUser) TableName() string {
	return "auth_users"
}
