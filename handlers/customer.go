package handlers

import (
	"net/http"

	"helpdesk_app_go/db"
	"helpdesk_app_go/models"

	"github.com/labstack/echo/v4"
)

// GetCustomers returns customer profiles, newest first
func GetCustomers(c echo.Context) error {
	query := db.DB.Model(&models.Profile{}).Where("role = ?", models.RoleCustomer)

	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ? OR company LIKE ?", like, like, like)
	}

	var customers []models.Profile
	if err := query.Order("created_at desc").Find(&customers).Error; err != nil {
		c.Logger().Error("Failed to fetch customers:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load customers"})
	}

	return c.JSON(http.StatusOK, customers)
}

// GetCustomer returns a single customer profile by ID
func GetCustomer(c echo.Context) error {
	id := c.Param("id")

	var customer models.Profile
	if err := db.DB.First(&customer, "id = ? AND role = ?", id, models.RoleCustomer).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Customer not found"})
	}

	return c.JSON(http.StatusOK, customer)
}

// customerRequest carries the client-mutable customer fields. Binding into
// the model directly would expose id, role, timestamps and avatar_url to
// mass assignment.
type customerRequest struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Company      string `json:"company"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	State        string `json:"state"`
	PostalCode   string `json:"postal_code"`
	Country      string `json:"country"`
}

func (r *customerRequest) apply(customer *models.Profile) {
	customer.FullName = r.FullName
	customer.Email = r.Email
	customer.Phone = r.Phone
	customer.Company = r.Company
	customer.AddressLine1 = r.AddressLine1
	customer.AddressLine2 = r.AddressLine2
	customer.City = r.City
	customer.State = r.State
	customer.PostalCode = r.PostalCode
	customer.Country = r.Country
}

// CreateCustomer creates a new customer profile. Customers never get a login
// identity through this endpoint.
func CreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Full name is required"})
	}

	customer := &models.Profile{Role: models.RoleCustomer}
	req.apply(customer)

	if err := db.DB.Create(customer).Error; err != nil {
		c.Logger().Error("Failed to create customer:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create customer"})
	}

	return c.JSON(http.StatusCreated, customer)
}

// UpdateCustomer replaces the contact fields of an existing customer profile
func UpdateCustomer(c echo.Context) error {
	id := c.Param("id")

	var customer models.Profile
	if err := db.DB.First(&customer, "id = ? AND role = ?", id, models.RoleCustomer).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Customer not found"})
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.FullName == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Full name is required"})
	}

	req.apply(&customer)

	if err := db.DB.Save(&customer).Error; err != nil {
		c.Logger().Error("Failed to update customer:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update customer"})
	}

	return c.JSON(http.StatusOK, customer)
}
