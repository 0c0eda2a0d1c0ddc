package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"helpdesk_app_go/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateTicket(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")

	t.Run("Creates with generated number and sanitized description", func(t *testing.T) {
		body := `{"subject": "Printer down", "description": "<p>It broke</p><script>alert(1)</script>", "requester_id": "` + customer.ID + `", "tags": ["hardware"]}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))

		assert.NoError(t, CreateTicket(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var ticket models.Ticket
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		assert.Regexp(t, `^TK-\d{4}-\d{6}$`, ticket.Number)
		assert.Equal(t, models.TicketStatusOpen, ticket.Status)
		assert.Equal(t, models.TicketPriorityMedium, ticket.Priority)
		assert.NotContains(t, ticket.Description, "<script>")
		assert.Contains(t, ticket.Description, "It broke")
		assert.Equal(t, []string{"hardware"}, ticket.Tags)
		assert.NotNil(t, ticket.Requester)
		assert.Equal(t, "Acme Inc", ticket.Requester.FullName)
	})

	t.Run("Numbers advance sequentially", func(t *testing.T) {
		body := `{"subject": "Second", "description": "More trouble", "requester_id": "` + customer.ID + `"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))

		assert.NoError(t, CreateTicket(c))
		assert.Equal(t, http.StatusCreated, rec.Code)

		var ticket models.Ticket
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		assert.True(t, strings.HasSuffix(ticket.Number, "-000002"))
	})

	t.Run("Missing required fields", func(t *testing.T) {
		body := `{"subject": "No description", "requester_id": "` + customer.ID + `"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))

		assert.NoError(t, CreateTicket(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Invalid priority", func(t *testing.T) {
		body := `{"subject": "X", "description": "Y", "requester_id": "` + customer.ID + `", "priority": "catastrophic"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))

		assert.NoError(t, CreateTicket(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid priority")
	})

	t.Run("Unknown requester", func(t *testing.T) {
		body := `{"subject": "X", "description": "Y", "requester_id": "does-not-exist"}`
		_, c, rec := setupEcho(http.MethodPost, "/api/tickets", strings.NewReader(body))

		assert.NoError(t, CreateTicket(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Requester not found")
	})
}

func TestGetTickets(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")
	_, agentProfile := createStaff(t, testDB, "Alice", "alice@example.com", models.RoleAgent)

	seed := []models.Ticket{
		{Number: "TK-2026-000001", Subject: "Printer down", Description: "d", Status: models.TicketStatusOpen, Priority: models.TicketPriorityHigh, RequesterID: customer.ID, AssigneeID: &agentProfile.ID},
		{Number: "TK-2026-000002", Subject: "VPN flaky", Description: "d", Status: models.TicketStatusResolved, Priority: models.TicketPriorityLow, RequesterID: customer.ID},
		{Number: "TK-2026-000003", Subject: "Password reset", Description: "d", Status: models.TicketStatusOpen, Priority: models.TicketPriorityMedium, RequesterID: customer.ID},
	}
	for i := range seed {
		assert.NoError(t, testDB.Create(&seed[i]).Error)
	}

	listTickets := func(t *testing.T, query string) []models.Ticket {
		t.Helper()
		_, c, rec := setupEcho(http.MethodGet, "/api/tickets"+query, nil)
		assert.NoError(t, GetTickets(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var tickets []models.Ticket
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tickets))
		return tickets
	}

	t.Run("All tickets with preloaded relations", func(t *testing.T) {
		tickets := listTickets(t, "")
		assert.Len(t, tickets, 3)
		for _, ticket := range tickets {
			assert.NotNil(t, ticket.Requester)
		}
	})

	t.Run("Status filter", func(t *testing.T) {
		tickets := listTickets(t, "?status=resolved")
		assert.Len(t, tickets, 1)
		assert.Equal(t, "TK-2026-000002", tickets[0].Number)
	})

	t.Run("Priority filter", func(t *testing.T) {
		tickets := listTickets(t, "?priority=high")
		assert.Len(t, tickets, 1)
		assert.Equal(t, "TK-2026-000001", tickets[0].Number)
	})

	t.Run("Unassigned filter", func(t *testing.T) {
		tickets := listTickets(t, "?assignee_id=unassigned")
		assert.Len(t, tickets, 2)
		for _, ticket := range tickets {
			assert.Nil(t, ticket.AssigneeID)
		}
	})

	t.Run("Assignee filter", func(t *testing.T) {
		tickets := listTickets(t, "?assignee_id="+agentProfile.ID)
		assert.Len(t, tickets, 1)
	})

	t.Run("Free text search matches subject and number", func(t *testing.T) {
		assert.Len(t, listTickets(t, "?q=VPN"), 1)
		assert.Len(t, listTickets(t, "?q=TK-2026-000003"), 1)
		assert.Len(t, listTickets(t, "?q=nonexistent"), 0)
	})
}

func TestGetTicket(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")
	user, _ := createStaff(t, testDB, "Alice", "alice@example.com", models.RoleAgent)

	ticket := models.Ticket{Number: "TK-2026-000001", Subject: "Printer down", Description: "d", RequesterID: customer.ID}
	assert.NoError(t, testDB.Create(&ticket).Error)

	for _, body := range []string{"first reply", "second reply"} {
		msg := models.TicketMessage{TicketID: ticket.ID, SenderID: user.ID, Body: body}
		assert.NoError(t, testDB.Create(&msg).Error)
	}

	t.Run("Returns ticket with ordered messages", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/tickets/"+ticket.ID, nil)
		c.SetParamNames("id")
		c.SetParamValues(ticket.ID)

		assert.NoError(t, GetTicket(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var found models.Ticket
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
		assert.Len(t, found.Messages, 2)
		assert.Equal(t, "first reply", found.Messages[0].Body)
	})

	t.Run("Unknown ticket", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/api/tickets/nope", nil)
		c.SetParamNames("id")
		c.SetParamValues("nope")

		assert.NoError(t, GetTicket(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestUpdateTicket(t *testing.T) {
	testDB := setupTestDB(t)
	customer := createCustomer(t, testDB, "Acme Inc", "it@acme.test")
	_, agentProfile := createStaff(t, testDB, "Alice", "alice@example.com", models.RoleAgent)

	newTicket := func(t *testing.T, number string) models.Ticket {
		t.Helper()
		ticket := models.Ticket{Number: number, Subject: "Subject", Description: "d", RequesterID: customer.ID}
		assert.NoError(t, testDB.Create(&ticket).Error)
		return ticket
	}

	update := func(t *testing.T, id, body string) (*models.Ticket, int) {
		t.Helper()
		_, c, rec := setupEcho(http.MethodPut, "/api/tickets/"+id, strings.NewReader(body))
		c.SetParamNames("id")
		c.SetParamValues(id)
		assert.NoError(t, UpdateTicket(c))

		if rec.Code != http.StatusOK {
			return nil, rec.Code
		}
		var ticket models.Ticket
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ticket))
		return &ticket, rec.Code
	}

	t.Run("Status and priority transition", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000101")
		updated, code := update(t, ticket.ID, `{"status": "in_progress", "priority": "urgent"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, models.TicketStatusInProgress, updated.Status)
		assert.Equal(t, models.TicketPriorityUrgent, updated.Priority)
	})

	t.Run("Invalid status", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000102")
		_, code := update(t, ticket.ID, `{"status": "escalated"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("Assign to an agent", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000103")
		updated, code := update(t, ticket.ID, `{"assignee_id": "`+agentProfile.ID+`"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.NotNil(t, updated.AssigneeID)
		assert.Equal(t, agentProfile.ID, *updated.AssigneeID)
	})

	t.Run("Customers cannot be assignees", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000104")
		_, code := update(t, ticket.ID, `{"assignee_id": "`+customer.ID+`"}`)
		assert.Equal(t, http.StatusBadRequest, code)
	})

	t.Run("Empty assignee unassigns", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000105")
		ticket.AssigneeID = &agentProfile.ID
		assert.NoError(t, testDB.Save(&ticket).Error)

		updated, code := update(t, ticket.ID, `{"assignee_id": ""}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Nil(t, updated.AssigneeID)
	})

	t.Run("Omitted fields are untouched", func(t *testing.T) {
		ticket := newTicket(t, "TK-2026-000106")
		updated, code := update(t, ticket.ID, `{"priority": "high"}`)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Subject", updated.Subject)
		assert.Equal(t, models.TicketStatusOpen, updated.Status)
	})

	t.Run("Unknown ticket", func(t *testing.T) {
		_, code := update(t, "nope", `{"status": "open"}`)
		assert.Equal(t, http.StatusNotFound, code)
	})
}
