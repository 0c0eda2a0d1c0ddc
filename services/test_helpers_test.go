package services

import (
	"testing"

	"helpdesk_app_go/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	// Unique shared memory name isolates tests while allowing shared cache
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	assert.NoError(t, err)

	err = testDB.AutoMigrate(
		&models.AuthUser{},
		&models.Profile{},
		&models.Session{},
		&models.PasswordResetToken{},
		&models.Ticket{},
		&models.TicketMessage{},
		&models.EmailSettings{},
	)
	assert.NoError(t, err)

	return testDB
}

func stringToPtr(s string) *string {
	return &s
}
