package handlers

import (
	"errors"
	"net/http"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/middleware"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetAgents lists staff profiles (agents and admins)
func GetAgents(c echo.Context) error {
	var agents []models.Profile
	err := db.DB.Where("role IN ?", []string{models.RoleAgent, models.RoleAdmin}).
		Order("created_at asc").
		Find(&agents).Error
	if err != nil {
		c.Logger().Error("Failed to fetch agents:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load agents"})
	}

	return c.JSON(http.StatusOK, agents)
}

// CreateAgentHandler provisions a new staff account (admin only). The
// provisioner creates the login identity first, then the profile row
// sharing its id.
func CreateAgentHandler(c echo.Context) error {
	var input services.AgentInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	provisioner := services.NewProvisioner(db.DB)
	id, err := provisioner.CreateAgent(input)
	if err != nil {
		if errors.Is(err, services.ErrInvalidAgentInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Logger().Error("Failed to provision agent:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if admin := middleware.GetCurrentUser(c); admin != nil {
		services.LogSecurityEvent("AGENT_CREATED", admin.ID, "Created agent: "+id)
	}

	// Send the invite email with its set-password link (non-blocking). A
	// failed token issue is logged, not fatal: the agent can still use the
	// forgot-password flow.
	if cfg, ok := c.Get("config").(*config.Config); ok {
		inviteToken, tokenErr := services.GenerateInviteToken(db.DB, id)
		if tokenErr != nil {
			c.Logger().Error("Failed to issue invite token:", tokenErr)
		} else {
			setupLink := cfg.AppURL + "/reset-password?token=" + inviteToken.Token
			email := services.BuildWelcomeEmail(input.Email, input.FullName, setupLink)
			services.SendEmailAsync(cfg, email)
		}
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": id})
}

// DeleteAgentHandler removes a staff account (admin only): profile row
// first, then the login identity
func DeleteAgentHandler(c echo.Context) error {
	id := c.Param("id")

	admin := middleware.GetCurrentUser(c)
	if admin != nil && admin.ID == id {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Cannot delete your own account"})
	}

	provisioner := services.NewProvisioner(db.DB)
	if err := provisioner.DeleteAgent(id); err != nil {
		if errors.Is(err, services.ErrInvalidAgentInput) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		c.Logger().Error("Failed to delete agent:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	if admin != nil {
		services.LogSecurityEvent("AGENT_DELETED", admin.ID, "Deleted agent: "+id)
	}

	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}
