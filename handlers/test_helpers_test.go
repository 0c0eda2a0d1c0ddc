package handlers

import (
	"io"
	"net/http/httptest"
	"testing"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB creates an in-memory test database and installs it as the
// package-level handle the handlers use
func setupTestDB(t *testing.T) *gorm.DB {
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

	db.DB = testDB
	return testDB
}

// setupEcho builds an Echo context for a single handler invocation
func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("config", &config.Config{
		Environment:   "test",
		EmailTestMode: true,
		AppURL:        "http://localhost:8080",
		EmailFrom:     "support@helpdeskpro.app",
		EmailFromName: "HelpDesk Pro Support",
	})
	return e, c, rec
}

// createStaff seeds a login identity plus its profile sharing the same id
func createStaff(t *testing.T, testDB *gorm.DB, name, email, role string) (*models.AuthUser, *models.Profile) {
	t.Helper()

	hashed, err := services.HashPassword("password123")
	assert.NoError(t, err)

	user := &models.AuthUser{
		Email:    email,
		Password: hashed,
		FullName: name,
		Role:     role,
		IsActive: true,
	}
	assert.NoError(t, testDB.Create(user).Error)

	profile := &models.Profile{
		ID:       user.ID,
		FullName: name,
		Email:    email,
		Role:     role,
	}
	assert.NoError(t, testDB.Create(profile).Error)

	return user, profile
}

// createCustomer seeds a customer profile (no login identity)
func createCustomer(t *testing.T, testDB *gorm.DB, name, email string) *models.Profile {
	t.Helper()

	customer := &models.Profile{
		FullName: name,
		Email:    email,
		Role:     models.RoleCustomer,
	}
	assert.NoError(t, testDB.Create(customer).Error)
	return customer
}

func stringToPtr(s string) *string {
	return &s
}
