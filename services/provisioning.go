package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"helpdesk_app_go/models"

	"gorm.io/gorm"
)

// ErrInvalidAgentInput marks validation failures rejected before any write
var ErrInvalidAgentInput = errors.New("invalid agent input")

// AgentInput is the request to provision a staff account
type AgentInput struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Role     string `json:"role"` // agent (default) or admin
}

// IdentityStore is the auth subsystem: login identities keyed by email
type IdentityStore interface {
	CreateIdentity(user *models.AuthUser) error
	DeleteIdentity(id string) error
}

// ProfileStore is the record subsystem: person rows sharing the identity id
type ProfileStore interface {
	CreateProfile(profile *models.Profile) error
	DeleteProfile(id string) error
}

// Provisioner creates and removes staff accounts. Each account is a pair of
// dependent writes, an identity plus a profile row with the same id, made
// against two stores that do not share a transaction.
type Provisioner struct {
	identities IdentityStore
	profiles   ProfileStore
}

// NewProvisioner returns a Provisioner backed by the given database
func NewProvisioner(db *gorm.DB) *Provisioner {
	return &Provisioner{
		identities: &gormIdentityStore{db: db},
		profiles:   &gormProfileStore{db: db},
	}
}

// NewProvisionerWithStores wires explicit stores (used by tests)
func NewProvisionerWithStores(identities IdentityStore, profiles ProfileStore) *Provisioner {
	return &Provisioner{identities: identities, profiles: profiles}
}

// CreateAgent provisions a staff account and returns the shared id.
//
// Step 1 creates the login identity; a failure there aborts with nothing
// written. Step 2 creates the profile row with the identity's id. If step 2
// fails the step-1 identity is deleted again (compensation); if even that
// delete fails the orphaned identity is logged for manual reconciliation and
// the operation still reports failure.
func (p *Provisioner) CreateAgent(input AgentInput) (string, error) {
	fullName := strings.TrimSpace(input.FullName)
	email := strings.TrimSpace(strings.ToLower(input.Email))

	if fullName == "" || email == "" {
		return "", fmt.Errorf("%w: full name and email are required", ErrInvalidAgentInput)
	}

	role := input.Role
	if role == "" {
		role = models.RoleAgent
	}
	if role != models.RoleAgent && role != models.RoleAdmin {
		return "", fmt.Errorf("%w: role must be agent or admin", ErrInvalidAgentInput)
	}

	// The account starts with a random password; the agent resets it from
	// the invite email.
	tempPassword, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}
	hashed, err := HashPassword(tempPassword)
	if err != nil {
		return "", err
	}

	identity := &models.AuthUser{
		Email:    email,
		Password: hashed,
		FullName: fullName,
		Role:     role,
		IsActive: true,
	}
	if err := p.identities.CreateIdentity(identity); err != nil {
		return "", fmt.Errorf("failed to create auth identity: %w", err)
	}

	profile := &models.Profile{
		ID:       identity.ID,
		FullName: fullName,
		Email:    email,
		Role:     role,
	}
	if err := p.profiles.CreateProfile(profile); err != nil {
		// Compensate: remove the identity created in step 1 so a failed
		// provisioning leaves no partial account behind.
		if delErr := p.identities.DeleteIdentity(identity.ID); delErr != nil {
			log.Printf("[SECURITY] PROVISIONING_ORPHAN | Identity: %s | Details: profile creation failed (%v) and compensating delete failed (%v); reconcile manually", identity.ID, err, delErr)
		}
		return "", fmt.Errorf("failed to create profile: %w", err)
	}

	return identity.ID, nil
}

// DeleteAgent removes a staff account: the profile row first, then the
// identity. A profile-delete failure leaves the identity untouched. An
// identity-delete failure after the profile is gone is reported so the
// caller can retry it out-of-band.
func (p *Provisioner) DeleteAgent(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("%w: agent id is required", ErrInvalidAgentInput)
	}

	if err := p.profiles.DeleteProfile(id); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if err := p.identities.DeleteIdentity(id); err != nil {
		log.Printf("[SECURITY] PROVISIONING_ORPHAN | Identity: %s | Details: profile deleted but identity delete failed (%v); retry out-of-band", id, err)
		return fmt.Errorf("failed to delete auth identity: %w", err)
	}

	return nil
}

type gormIdentityStore struct {
	db *gorm.DB
}

func (s *gormIdentityStore) CreateIdentity(user *models.AuthUser) error {
	return s.db.Create(user).Error
}

func (s *gormIdentityStore) DeleteIdentity(id string) error {
	// Sessions and outstanding reset tokens go first so a removed agent
	// cannot keep or regain a login
	if err := DeleteAllUserSessions(s.db, id); err != nil {
		return err
	}
	if err := s.db.Where("user_id = ?", id).Delete(&models.PasswordResetToken{}).Error; err != nil {
		return err
	}
	return s.db.Delete(&models.AuthUser{}, "id = ?", id).Error
}

type gormProfileStore struct {
	db *gorm.DB
}

func (s *gormProfileStore) CreateProfile(profile *models.Profile) error {
	return s.db.Create(profile).Error
}

func (s *gormProfileStore) DeleteProfile(id string) error {
	return s.db.Delete(&models.Profile{}, "id = ?", id).Error
}
