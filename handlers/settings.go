package handlers

import (
	"net/http"
	"net/mail"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetEmailSettings returns the singleton email settings record. Before the
// first save an empty record (id 0) is returned.
func GetEmailSettings(c echo.Context) error {
	var settings models.EmailSettings
	err := db.DB.First(&settings).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.Logger().Error("Failed to fetch email settings:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load settings"})
	}

	return c.JSON(http.StatusOK, settings)
}

type emailSettingsRequest struct {
	FromName    string `json:"from_name"`
	FromAddress string `json:"from_address"`

	IMAPHost     string `json:"imap_host"`
	IMAPPort     int    `json:"imap_port"`
	IMAPUsername string `json:"imap_username"`
	IMAPPassword string `json:"imap_password"` // empty keeps the stored value
	IMAPUseSSL   bool   `json:"imap_use_ssl"`

	SMTPHost     string `json:"smtp_host"`
	SMTPPort     int    `json:"smtp_port"`
	SMTPUsername string `json:"smtp_username"`
	SMTPPassword string `json:"smtp_password"` // empty keeps the stored value
	SMTPUseTLS   bool   `json:"smtp_use_tls"`

	BlockedDomains  []string `json:"blocked_domains"`
	BlockedKeywords []string `json:"blocked_keywords"`
}

// UpdateEmailSettings upserts the singleton email settings record: created
// on first save, updated in place afterwards
func UpdateEmailSettings(c echo.Context) error {
	var req emailSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	var settings models.EmailSettings
	err := db.DB.First(&settings).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		c.Logger().Error("Failed to fetch email settings:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load settings"})
	}

	settings.FromName = req.FromName
	settings.FromAddress = req.FromAddress
	settings.IMAPHost = req.IMAPHost
	settings.IMAPPort = req.IMAPPort
	settings.IMAPUsername = req.IMAPUsername
	settings.IMAPUseSSL = req.IMAPUseSSL
	settings.SMTPHost = req.SMTPHost
	settings.SMTPPort = req.SMTPPort
	settings.SMTPUsername = req.SMTPUsername
	settings.SMTPUseTLS = req.SMTPUseTLS
	settings.BlockedDomains = services.NormalizeBlockList(req.BlockedDomains)
	settings.BlockedKeywords = services.NormalizeBlockList(req.BlockedKeywords)

	// Credentials are write-only: an empty field keeps what is stored
	if req.IMAPPassword != "" {
		settings.IMAPPassword = req.IMAPPassword
	}
	if req.SMTPPassword != "" {
		settings.SMTPPassword = req.SMTPPassword
	}

	if err := db.DB.Save(&settings).Error; err != nil {
		c.Logger().Error("Failed to save email settings:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save settings"})
	}

	return c.JSON(http.StatusOK, settings)
}

// TestEmailHandler sends a test email with the stored outbound identity
// (development only)
func TestEmailHandler(c echo.Context) error {
	cfg, ok := c.Get("config").(*config.Config)
	if !ok || cfg.Environment != "development" {
		return echo.NewHTTPError(http.StatusForbidden, "This endpoint is only available in development mode")
	}

	var settings models.EmailSettings
	db.DB.First(&settings)

	fromName := settings.FromName
	if fromName == "" {
		fromName = cfg.EmailFromName
	}
	fromAddress := settings.FromAddress
	if fromAddress == "" {
		fromAddress = cfg.EmailFrom
	}

	recipient := c.QueryParam("to")
	if recipient == "" {
		recipient = fromAddress
	}
	if _, err := mail.ParseAddress(recipient); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid recipient address"})
	}

	email := services.BuildTestEmail(recipient, fromName, fromAddress)
	if err := services.SendEmail(cfg, email); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{
			"error":   "Failed to send test email",
			"details": err.Error(),
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message":   "Test email sent successfully",
		"recipient": recipient,
	})
}
