package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"helpdesk_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestGetCustomers(t *testing.T) {
	testDB := setupTestDB(t)
	createCustomer(t, testDB, "Acme Inc", "it@acme.test")
	createCustomer(t, testDB, "Globex", "help@globex.test")
	createStaff(t, testDB, "Alice", "alice@example.com", models.RoleAgent)

	t.Run("Only customer profiles", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/customers", nil)
		assert.NoError(t, GetCustomers(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var customers []models.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
		assert.Len(t, customers, 2)
		for _, customer := range customers {
			assert.Equal(t, models.RoleCustomer, customer.Role)
		}
	})

	t.Run("Free text search", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/customers?q=globex", nil)
		assert.NoError(t, GetCustomers(c))

		var customers []models.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customers))
		assert.Len(t, customers, 1)
		assert.Equal(t, "Globex", customers[0].FullName)
	})
}

func TestCreateCustomer(t *testing.T) {
	setupTestDB(t)

	t.Run("Creates a customer profile", func(t *testing.T) {
		body := `{"full_name": "Initech", "email": "support@initech.test", "company": "Initech LLC", "phone": "555-0100"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/customers", strings.NewReader(body))

		assert.NoError(t, CreateCustomer(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var customer models.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
		assert.NotEmpty(t, customer.ID)
		assert.Equal(t, models.RoleCustomer, customer.Role)
		assert.Equal(t, "Initech LLC", customer.Company)
	})

	t.Run("Role cannot be escalated through the payload", func(t *testing.T) {
		body := `{"full_name": "Sneaky", "role": "admin"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/customers", strings.NewReader(body))

		assert.NoError(t, CreateCustomer(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var customer models.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &customer))
		assert.Equal(t, models.RoleCustomer, customer.Role)
	})

	t.Run("Full name is required", func(t *testing.T) {
		body := `{"email": "anon@example.com"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/customers", strings.NewReader(body))

		assert.NoError(t, CreateCustomer(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCustomer(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")
	_, agentProfile := createStaff(t, testDB, "Alice", "alice@example.com", models.RoleAgent)

	t.Run("Found", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/customers/"+customer.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(customer.ID)

		assert.NoError(t, GetCustomer(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Staff profiles are not customers", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/customers/"+agentProfile.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(agentProfile.ID)

		assert.NoError(t, GetCustomer(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateCustomer(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")

	t.Run("Updates contact fields", func(t *testing.T) {
		body := `{"full_name": "Acme Incorporated", "email": "it@acme.test", "city": "Springfield", "role": "admin"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/customers/"+customer.ID, strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues(customer.ID)

		assert.NoError(t, UpdateCustomer(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var updated models.Profile
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
		assert.Equal(t, "Acme Incorporated", updated.FullName)
		assert.Equal(t, "Springfield", updated.City)
		assert.Equal(t, models.RoleCustomer, updated.Role)
		assert.Equal(t, customer.ID, updated.ID)
	})

	t.Run("Timestamps and avatar cannot be set through the payload", func(t *testing.T) {
		assert.NoError(t, testDB.Model(&models.Profile{}).Where("id = ?", customer.ID).Update("avatar_url", "/avatars/real.png").Error)
		var before models.Profile
		assert.NoError(t, testDB.First(&before, "id = ?", customer.ID).Error)

		body := `{"full_name": "Acme Inc", "created_at": "1999-01-01T00:00:00Z", "avatar_url": "/avatars/forged.png"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/customers/"+customer.ID, strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues(customer.ID)

		assert.NoError(t, UpdateCustomer(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var after models.Profile
		assert.NoError(t, testDB.First(&after, "id = ?", customer.ID).Error)
		assert.Equal(t, "/avatars/real.png", after.AvatarURL)
		assert.Equal(t, before.CreatedAt.UTC(), after.CreatedAt.UTC())
	})

	t.Run("Unknown customer", func(t *testing.T) {
		body := `{"full_name": "Nobody"}`
		_, c, rec := setupEcho(http.MethodPut, "/api/customers/nope", strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues("nope")

		assert.NoError(t, UpdateCustomer(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
