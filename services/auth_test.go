package services

import (
	"testing"
	"time"

	"helpdesk_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	t.Run("Hash and verify", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		assert.NoError(t, err)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.True(t, VerifyPassword(hash, "correct horse battery staple"))
		assert.False(t, VerifyPassword(hash, "wrong password"))
	})

	t.Run("Same password hashes differently", func(t *testing.T) {
		h1, err := HashPassword("password123")
		assert.NoError(t, err)
		h2, err := HashPassword("password123")
		assert.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestGenerateSessionToken(t *testing.T) {
	token, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.Len(t, token, SessionTokenLength*2)

	other, err := GenerateSessionToken()
	assert.NoError(t, err)
	assert.NotEqual(t, token, other)
}

func TestSessions(t *testing.T) {
	testDB := newTestDB(t)

	user := &models.AuthUser{
		Email:    "agent@example.com",
		Password: "hashed",
		FullName: "Agent",
		Role:     models.RoleAgent,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)

	t.Run("Create and validate", func(t *testing.T) {
		session, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)
		assert.NotEmpty(t, session.Token)

		found, err := ValidateSession(testDB, session.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, found.UserID)
		assert.Equal(t, user.Email, found.User.Email)
	})

	t.Run("Unknown token", func(t *testing.T) {
		_, err := ValidateSession(testDB, "no-such-token")
		assert.Error(t, err)
	})

	t.Run("Expired session is rejected and removed", func(t *testing.T) {
		session, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)

		testDB.Model(session).Update("expires_at", time.Now().Add(-time.Hour))

		_, err = ValidateSession(testDB, session.Token)
		assert.Error(t, err)

		var count int64
		testDB.Model(&models.Session{}).Where("token = ?", session.Token).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("Delete session", func(t *testing.T) {
		session, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)

		assert.NoError(t, DeleteSession(testDB, session.Token))

		_, err = ValidateSession(testDB, session.Token)
		assert.Error(t, err)
	})

	t.Run("Cleanup removes only expired sessions", func(t *testing.T) {
		testDB.Where("1 = 1").Delete(&models.Session{})

		live, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)
		stale, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)
		testDB.Model(stale).Update("expires_at", time.Now().Add(-time.Minute))

		assert.NoError(t, CleanupExpiredSessions(testDB))

		var count int64
		testDB.Model(&models.Session{}).Count(&count)
		assert.Equal(t, int64(1), count)

		_, err = ValidateSession(testDB, live.Token)
		assert.NoError(t, err)
	})

	t.Run("Delete all sessions for a user", func(t *testing.T) {
		testDB.Where("1 = 1").Delete(&models.Session{})

		_, err := CreateSession(testDB, user.ID, "127.0.0.1", "test-agent")
		assert.NoError(t, err)
		_, err = CreateSession(testDB, user.ID, "10.0.0.1", "other-agent")
		assert.NoError(t, err)

		assert.NoError(t, DeleteAllUserSessions(testDB, user.ID))

		var count int64
		testDB.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
		assert.Zero(t, count)
	})
}
