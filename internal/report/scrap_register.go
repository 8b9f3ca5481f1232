package report

import (
	"fmt"
	"time"

	"scraptrack-backend/internal/database"
	"scraptrack-backend/internal/models"
	"scraptrack-backend/internal/scrap"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

var registerColumns = []string{
	"Tracking ID", "Job Order", "Date", "Time",
	"Material Code", "Category", "Classification",
	"Weight (kg)", "Pieces", "Est. Value",
	"Reason", "Operator", "Status", "Decided By", "Decision Notes",
}

// GET /api/reports/scrap-register
// Exports the (optionally filtered) scrap register as an xlsx workbook. The
// same query parameters as the list endpoint apply.
func ScrapRegisterHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entries []models.ScrapEntry
		if err := database.DB.Find(&entries).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load scrap entries")
		}

		filtered := scrap.FilterEntries(entries, scrap.FilterFromQuery(c))

		f := excelize.NewFile()
		defer func() { _ = f.Close() }()

		const sheet = "Scrap Register"
		f.SetSheetName("Sheet1", sheet)

		for i, col := range registerColumns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			_ = f.SetCellValue(sheet, cell, col)
		}

		for row, e := range filtered {
			values := []any{
				e.TrackingID, e.JobOrderNo, e.Date, e.Time,
				e.MaterialCode, string(e.MaterialCategory), string(e.Classification),
				e.WeightKG, e.PieceCount, e.ScrapValueEstimate,
				e.ReasonName, e.OperatorName, string(e.ApprovalStatus), e.ApprovedBy, e.ApprovalNotes,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				_ = f.SetCellValue(sheet, cell, v)
			}
		}

		_ = f.SetColWidth(sheet, "A", "B", 24)
		_ = f.SetColWidth(sheet, "E", "G", 18)

		buf, err := f.WriteToBuffer()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not build the report")
		}

		filename := fmt.Sprintf("scrap-register-%s.xlsx", time.Now().Format("2006-01-02"))
		c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))

		return c.Send(buf.Bytes())
	}
}
