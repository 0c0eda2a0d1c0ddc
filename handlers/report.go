package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"helpdesk_app_go/db"
	"helpdesk_app_go/models"
	"helpdesk_app_go/services"

	"github.com/labstack/echo/v4"
)

// GetTicketReport computes the aggregated ticket report for a date range.
// Without start/end params the report covers all tickets.
func GetTicketReport(c echo.Context) error {
	query := db.DB.Model(&models.Ticket{}).
		Preload("Requester").Preload("Assignee")

	if start := c.QueryParam("start"); start != "" {
		query = query.Where("created_at >= ?", start)
	}
	if end := c.QueryParam("end"); end != "" {
		query = query.Where("created_at <= ?", end+" 23:59:59")
	}

	var tickets []models.Ticket
	if err := query.Find(&tickets).Error; err != nil {
		c.Logger().Error("Failed to fetch tickets for report:", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to build report"})
	}

	report := services.BuildTicketReport(time.Now(), tickets)
	return c.JSON(http.StatusOK, report)
}

// ExportReportHandler exports tickets in the report range as CSV (default)
// or XLSX
func ExportReportHandler(c echo.Context) error {
	startDate := c.QueryParam("start")
	endDate := c.QueryParam("end")
	status := c.QueryParam("status")
	format := c.QueryParam("format")

	timestamp := time.Now().Format("20060102_150405")

	if format == "xlsx" {
		f, err := services.ExportTicketsXLSX(db.DB, startDate, endDate, status)
		if err != nil {
			c.Logger().Error("Failed to export tickets:", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to export tickets"})
		}
		defer f.Close()

		c.Response().Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tickets_report_%s.xlsx", timestamp))
		return f.Write(c.Response().Writer)
	}

	c.Response().Header().Set("Content-Type", "text/csv")
	c.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=tickets_report_%s.csv", timestamp))

	writer := csv.NewWriter(c.Response().Writer)
	defer writer.Flush()

	if err := services.ExportTicketsCSV(db.DB, writer, startDate, endDate, status); err != nil {
		c.Logger().Error("Failed to export tickets:", err)
		return err
	}
	return nil
}
