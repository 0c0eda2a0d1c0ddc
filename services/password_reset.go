package services

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"
	"unicode"

	"helpdesk_app_go/models"

	"gorm.io/gorm"
)

const (
	// ResetTokenLength is the token size in bytes
	ResetTokenLength = 32
	// ResetTokenExpiration is how long a forgot-password token stays valid
	ResetTokenExpiration = 24 * time.Hour
	// InviteTokenExpiration is how long a newly provisioned agent has to set
	// an initial password
	InviteTokenExpiration = 72 * time.Hour
	// MinPasswordLength is the minimum accepted password length
	MinPasswordLength = 8
)

// ErrWeakPassword marks passwords rejected by the policy
var ErrWeakPassword = errors.New("password does not meet requirements")

// ValidatePassword enforces the password policy: length plus at least one
// letter and one number
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrWeakPassword, MinPasswordLength)
	}

	var hasLetter, hasNumber bool
	for _, char := range password {
		switch {
		case unicode.IsLetter(char):
			hasLetter = true
		case unicode.IsNumber(char):
			hasNumber = true
		}
	}
	if !hasLetter || !hasNumber {
		return fmt.Errorf("%w: must contain at least one letter and one number", ErrWeakPassword)
	}

	return nil
}

// GenerateResetToken issues a forgot-password token for the identity with the
// given email. Unknown or inactive emails return (nil, nil) so callers cannot
// be used for email enumeration.
func GenerateResetToken(db *gorm.DB, email string) (*models.PasswordResetToken, error) {
	var user models.AuthUser
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		log.Printf("Password reset requested for unknown email: %s", email)
		return nil, nil
	}

	if !user.IsActive {
		log.Printf("Password reset requested for inactive account: %s", email)
		return nil, nil
	}

	token, err := issueToken(db, &user, ResetTokenExpiration)
	if err != nil {
		return nil, err
	}

	LogSecurityEvent("PASSWORD_RESET_REQUESTED", user.ID, "Password reset requested for email: "+email)
	return token, nil
}

// GenerateInviteToken issues the initial set-password token for a freshly
// provisioned agent, keyed by the shared identity id
func GenerateInviteToken(db *gorm.DB, userID string) (*models.PasswordResetToken, error) {
	var user models.AuthUser
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, fmt.Errorf("failed to find identity for invite: %w", err)
	}

	return issueToken(db, &user, InviteTokenExpiration)
}

// issueToken replaces any outstanding tokens for the identity with a fresh
// random one
func issueToken(db *gorm.DB, user *models.AuthUser, ttl time.Duration) (*models.PasswordResetToken, error) {
	db.Where("user_id = ?", user.ID).Delete(&models.PasswordResetToken{})

	tokenBytes := make([]byte, ResetTokenLength)
	if _, err := rand.Read(tokenBytes); err != nil {
		return nil, fmt.Errorf("failed to generate reset token: %w", err)
	}

	resetToken := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     base64.URLEncoding.EncodeToString(tokenBytes),
		ExpiresAt: time.Now().Add(ttl),
		User:      user,
	}

	if err := db.Create(resetToken).Error; err != nil {
		return nil, fmt.Errorf("failed to create reset token: %w", err)
	}

	return resetToken, nil
}

// ValidateResetToken resolves a token to its identity. Expired tokens are
// deleted on sight.
func ValidateResetToken(db *gorm.DB, token string) (*models.AuthUser, error) {
	var resetToken models.PasswordResetToken
	if err := db.Preload("User").Where("token = ?", token).First(&resetToken).Error; err != nil {
		return nil, fmt.Errorf("invalid or expired token")
	}

	if resetToken.IsExpired() {
		db.Delete(&resetToken)
		return nil, fmt.Errorf("token has expired")
	}

	if resetToken.User == nil || !resetToken.User.IsActive {
		return nil, fmt.Errorf("account is not active")
	}

	return resetToken.User, nil
}

// ResetPassword sets a new password using a valid token. The token is
// consumed and every session for the identity is invalidated.
func ResetPassword(db *gorm.DB, token string, newPassword string) error {
	if err := ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := ValidateResetToken(db, token)
	if err != nil {
		LogSecurityEvent("PASSWORD_RESET_FAILED", "", "Failed password reset attempt")
		return err
	}

	hashedPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.AuthUser{}).Where("id = ?", user.ID).Update("password", hashedPassword).Error; err != nil {
			return fmt.Errorf("failed to update password: %w", err)
		}
		if err := tx.Where("token = ?", token).Delete(&models.PasswordResetToken{}).Error; err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		// Force re-login everywhere
		return DeleteAllUserSessions(tx, user.ID)
	})
	if err != nil {
		return err
	}

	LogSecurityEvent("PASSWORD_RESET_COMPLETED", user.ID, "Password successfully reset")
	return nil
}

// CleanupExpiredResetTokens drops tokens past their expiry. Runs from the
// hourly ticker in cmd/server.
func CleanupExpiredResetTokens(db *gorm.DB) error {
	result := db.Where("expires_at < ?", time.Now()).Delete(&models.PasswordResetToken{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup reset tokens: %w", result.Error)
	}
	if result.RowsAffected > 0 {
		log.Printf("Cleaned up %d expired password reset tokens", result.RowsAffected)
	}
	return nil
}
