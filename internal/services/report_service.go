package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"

	"backend/internal/domain/models"
	"backend/internal/query"
	"backend/internal/repositories"
	"backend/internal/utils"
)

// ReportService renders the table status overview as a PDF.
type ReportService struct {
	Tables    repositories.TableRepository
	RequestID string
}

// TablesStatusPDF builds a one-page-per-40-rows report of every table and its
// current status, newest first.
func (s ReportService) TablesStatusPDF(ctx context.Context) ([]byte, string, error) {
	tables, err := s.Tables.FindAll(ctx, query.Filter{})
	if err != nil {
		return nil, "", err
	}

	utils.LogEvent(s.RequestID, "reports", "tables_status", fmt.Sprintf("rows=%d", len(tables)))
	return buildTablesReportPDF(tables, time.Now())
}

func buildTablesReportPDF(tables []models.Table, now time.Time) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Tables Status Report", false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TABLES STATUS REPORT")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s", now.Format("2006-01-02 15:04")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(70, 8, "Table", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(60, 8, "Created", "1", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	available := 0
	for _, t := range tables {
		if t.Status == models.TableStatusAvailable {
			available++
		}
		pdf.CellFormat(70, 8, t.TableName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, t.Status, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 8, t.CreatedAt.Format("2006-01-02 15:04"), "1", 1, "L", false, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, fmt.Sprintf("Total: %d tables, %d available, %d occupied.",
		len(tables), available, len(tables)-available), "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("TABLES_REPORT_%s.pdf", now.Format("20060102"))
	return buf.Bytes(), filename, nil
}
