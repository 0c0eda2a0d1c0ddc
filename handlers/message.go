package handlers

import (
	"net/http"

	"helpdesk_app_go/config"
	"helpdesk_app_go/db"
	"helpdesk_app_go/middleware"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetTicketMessages returns a ticket's messages in creation order
func GetTicketMessages(c echo.Context) error {
	ticketID := c.Param("id")

	var ticket models.Ticket
	if err := db.DB.First(&ticket, "id = ?", ticketID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Ticket not found"})
	}

	var messages []models.TicketMessage
	err := db.DB.Preload("Sender").
		Where("ticket_id = ?", ticketID).
		Order("created_at asc").
		Find(&messages).Error
	if err != nil {
		c.Logger().Error("Failed to fetch messages:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load messages"})
	}

	return c.JSON(http.StatusOK, messages)
}

type createMessageRequest struct {
	Body       string `json:"body"`
	IsInternal bool   `json:"is_internal"`
}

// CreateTicketMessage appends a reply or internal note to a ticket.
// Non-internal replies trigger an async notification email to the requester.
func CreateTicketMessage(c echo.Context) error {
	ticketID := c.Param("id")

	var ticket models.Ticket
	if err := db.DB.Preload("Requester").First(&ticket, "id = ?", ticketID).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Ticket not found"})
	}

	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	body := services.SanitizeUserHTML(req.Body)
	if body == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message body is required"})
	}

	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}

	message := &models.TicketMessage{
		TicketID:   ticket.ID,
		SenderID:   user.ID,
		Body:       body,
		IsInternal: req.IsInternal,
	}

	if err := db.DB.Create(message).Error; err != nil {
		c.Logger().Error("Failed to create message:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save message"})
	}

	// Notify the requester on public replies (non-blocking)
	if !req.IsInternal && ticket.Requester != nil && ticket.Requester.Email != "" {
		if cfg, ok := c.Get("config").(*config.Config); ok {
			ticketURL := cfg.AppURL + "/tickets/" + ticket.ID
			email := services.BuildTicketReplyEmail(ticket.Requester.Email, ticket.Requester.FullName, ticket.Number, ticket.Subject, ticketURL)
			services.SendEmailAsync(cfg, email)
		}
	}

	db.DB.Preload("Sender").First(message, "id = ?", message.ID)
	return c.JSON(http.StatusCreated, message)
}
