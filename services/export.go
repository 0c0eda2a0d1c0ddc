package services

import (
	"encoding/csv"
	"fmt"
	"strings"

	"helpdesk_app_go/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

var ticketExportHeader = []string{
	"Number", "Subject", "Status", "Priority", "Created At",
	"Requester", "Requester Email", "Assignee", "Tags",
}

func ticketExportRow(t models.Ticket) []string {
	requester := ""
	requesterEmail := ""
	if t.Requester != nil {
		requester = t.Requester.FullName
		requesterEmail = t.Requester.Email
	}
	assignee := ""
	if t.Assignee != nil {
		assignee = t.Assignee.FullName
	}

	return []string{
		t.Number,
		t.Subject,
		t.Status,
		t.Priority,
		t.CreatedAt.Format("2006-01-02 15:04"),
		requester,
		requesterEmail,
		assignee,
		strings.Join(t.Tags, ", "),
	}
}

// exportQuery builds the filtered, preloaded ticket query shared by both
// export formats
func exportQuery(db *gorm.DB, startDate, endDate, status string) *gorm.DB {
	query := db.Model(&models.Ticket{}).
		Preload("Requester").Preload("Assignee").
		Order("created_at desc")

	if startDate != "" {
		query = query.Where("created_at >= ?", startDate)
	}
	if endDate != "" {
		// Add time to make it inclusive of the end date
		query = query.Where("created_at <= ?", endDate+" 23:59:59")
	}
	if status != "" && status != "all" {
		query = query.Where("status = ?", status)
	}

	return query
}

// ExportTicketsCSV streams the filtered tickets as CSV rows. Batched reads
// keep memory flat on large ranges.
func ExportTicketsCSV(db *gorm.DB, w *csv.Writer, startDate, endDate, status string) error {
	if err := w.Write(ticketExportHeader); err != nil {
		return err
	}

	var tickets []models.Ticket
	result := exportQuery(db, startDate, endDate, status).
		FindInBatches(&tickets, 100, func(tx *gorm.DB, batch int) error {
			for _, t := range tickets {
				if err := w.Write(ticketExportRow(t)); err != nil {
					return err
				}
			}
			return nil
		})

	return result.Error
}

// ExportTicketsXLSX builds an Excel workbook of the filtered tickets
func ExportTicketsXLSX(db *gorm.DB, startDate, endDate, status string) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Tickets"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}})
	for i, title := range ticketExportHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 2
	var tickets []models.Ticket
	result := exportQuery(db, startDate, endDate, status).
		FindInBatches(&tickets, 100, func(tx *gorm.DB, batch int) error {
			for _, t := range tickets {
				for i, value := range ticketExportRow(t) {
					cell, _ := excelize.CoordinatesToCellName(i+1, row)
					f.SetCellValue(sheet, cell, value)
				}
				row++
			}
			return nil
		})
	if result.Error != nil {
		f.Close()
		return nil, fmt.Errorf("failed to export tickets: %w", result.Error)
	}

	return f, nil
}
