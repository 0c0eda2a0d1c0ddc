package handlers

import (
	"net/http"

	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// GetTickets returns tickets filtered by status, priority, assignee, free
// text and date range, newest first
func GetTickets(c echo.Context) error {
	query := db.DB.Model(&models.Ticket{}).
		Preload("Requester").Preload("Assignee")

	status := c.QueryParam("status")
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	priority := c.QueryParam("priority")
	if priority != "" && priority != "all" {
		query = query.Where("priority = ?", priority)
	}

	assigneeID := c.QueryParam("assignee_id")
	switch assigneeID {
	case "", "all":
	case "unassigned":
		query = query.Where("assignee_id IS NULL")
	default:
		query = query.Where("assignee_id = ?", assigneeID)
	}

	if q := c.QueryParam("q"); q != "" {
		like := "%" + q + "%"
		query = query.Where("subject LIKE ? OR number LIKE ?", like, like)
	}

	if start := c.QueryParam("start_date"); start != "" {
		query = query.Where("created_at >= ?", start)
	}
	if end := c.QueryParam("end_date"); end != "" {
		query = query.Where("created_at <= ?", end+" 23:59:59")
	}

	var tickets []models.Ticket
	if err := query.Order("created_at desc").Find(&tickets).Error; err != nil {
		c.Logger().Error("Failed to fetch tickets:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load tickets"})
	}

	return c.JSON(http.StatusOK, tickets)
}

type createTicketRequest struct {
	Subject     string   `json:"subject"`
	Description string   `json:"description"`
	RequesterID string   `json:"requester_id"`
	AssigneeID  *string  `json:"assignee_id"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
}

// CreateTicket creates a new support ticket
func CreateTicket(c echo.Context) error {
	var req createTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Subject == "" || req.Description == "" || req.RequesterID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Subject, description and requester are required"})
	}

	if req.Priority == "" {
		req.Priority = models.TicketPriorityMedium
	}
	if !models.IsValidTicketPriority(req.Priority) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid priority. Must be one of: low, medium, high, urgent"})
	}

	var requester models.Profile
	if err := db.DB.First(&requester, "id = ?", req.RequesterID).Error; err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Requester not found"})
	}

	if req.AssigneeID != nil && *req.AssigneeID == "" {
		req.AssigneeID = nil
	}

	number, err := services.NextTicketNumber(db.DB)
	if err != nil {
		c.Logger().Error("Failed to generate ticket number:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create ticket"})
	}

	ticket := &models.Ticket{
		Number:      number,
		Subject:     req.Subject,
		Description: services.SanitizeUserHTML(req.Description),
		Status:      models.TicketStatusOpen,
		Priority:    req.Priority,
		RequesterID: req.RequesterID,
		AssigneeID:  req.AssigneeID,
		Tags:        req.Tags,
	}

	if err := db.DB.Create(ticket).Error; err != nil {
		c.Logger().Error("Failed to create ticket:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create ticket"})
	}

	db.DB.Preload("Requester").Preload("Assignee").First(ticket, "id = ?", ticket.ID)
	return c.JSON(http.StatusCreated, ticket)
}

// GetTicket returns a single ticket with its messages in creation order
func GetTicket(c echo.Context) error {
	id := c.Param("id")

	var ticket models.Ticket
	err := db.DB.Preload("Requester").Preload("Assignee").
		Preload("Messages", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at asc") }).
		Preload("Messages.Sender").
		First(&ticket, "id = ?", id).Error
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Ticket not found"})
	}

	return c.JSON(http.StatusOK, ticket)
}

type updateTicketRequest struct {
	Subject    *string   `json:"subject"`
	Status     *string   `json:"status"`
	Priority   *string   `json:"priority"`
	AssigneeID *string   `json:"assignee_id"`
	Tags       *[]string `json:"tags"`
}

// UpdateTicket updates the mutable ticket fields (status, priority,
// assignee, subject, tags) with enum validation. Tickets are never deleted
// through the API.
func UpdateTicket(c echo.Context) error {
	id := c.Param("id")

	var ticket models.Ticket
	if err := db.DB.First(&ticket, "id = ?", id).Error; err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Ticket not found"})
	}

	var req updateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}

	if req.Status != nil {
		if !models.IsValidTicketStatus(*req.Status) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid status. Must be one of: open, in_progress, resolved, closed"})
		}
		ticket.Status = *req.Status
	}

	if req.Priority != nil {
		if !models.IsValidTicketPriority(*req.Priority) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid priority. Must be one of: low, medium, high, urgent"})
		}
		ticket.Priority = *req.Priority
	}

	if req.AssigneeID != nil {
		if *req.AssigneeID == "" {
			ticket.AssigneeID = nil
		} else {
			var assignee models.Profile
			if err := db.DB.First(&assignee, "id = ? AND role IN ?", *req.AssigneeID, []string{models.RoleAgent, models.RoleAdmin}).Error; err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "Assignee must be an existing agent"})
			}
			ticket.AssigneeID = req.AssigneeID
		}
	}

	if req.Subject != nil && *req.Subject != "" {
		ticket.Subject = *req.Subject
	}

	if req.Tags != nil {
		ticket.Tags = *req.Tags
	}

	if err := db.DB.Save(&ticket).Error; err != nil {
		c.Logger().Error("Failed to update ticket:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update ticket"})
	}

	db.DB.Preload("Requester").Preload("Assignee").First(&ticket, "id = ?", ticket.ID)
	return c.JSON(http.StatusOK, ticket)
}
