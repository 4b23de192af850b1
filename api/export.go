package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"expensetracker/database"
	"expensetracker/middleware"
	"expensetracker/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler serves downloads of the caller's expenses.
type ExportHandler struct{}

// NewExportHandler creates an export handler.
func NewExportHandler() *ExportHandler {
	return &ExportHandler{}
}

// queryExpenses loads the caller's records, optionally restricted to a date
// range given as start/end query params (2006-01-02). A bad date format is a
// 400; the handler has already responded when ok is false.
func (h *ExportHandler) queryExpenses(c *gin.Context) (expenses []models.Expense, ok bool) {
	userID := middleware.GetCurrentUserID(c)

	query := database.DB.Where("user_id = ?", userID)

	if startStr := c.Query("start"); startStr != "" {
		start, err := time.ParseInLocation("2006-01-02", startStr, time.Local)
		if err != nil {
			BadRequest(c, "start must be formatted as 2006-01-02")
			return nil, false
		}
		query = query.Where("created_at >= ?", start)
	}
	if endStr := c.Query("end"); endStr != "" {
		end, err := time.ParseInLocation("2006-01-02", endStr, time.Local)
		if err != nil {
			BadRequest(c, "end must be formatted as 2006-01-02")
			return nil, false
		}
		// include the whole end day
		query = query.Where("created_at <= ?", end.Add(24*time.Hour-time.Second))
	}

	expenses = make([]models.Expense, 0)
	if err := query.Order("created_at DESC").Find(&expenses).Error; err != nil {
		ServerError(c, err)
		return nil, false
	}
	return expenses, true
}

// ExportCSV downloads the caller's expenses as a CSV file.
// @Summary Export expenses as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start query string false "start date (2006-01-02)"
// @Param end query string false "end date (2006-01-02)"
// @Success 200 {file} file
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	if err := writer.Write([]string{"ID", "Amount", "Category", "Note", "Created At"}); err != nil {
		ServerError(c, err)
		return
	}
	for _, e := range expenses {
		row := []string{
			fmt.Sprintf("%d", e.ID),
			fmt.Sprintf("%.2f", e.Amount),
			e.Category,
			e.Note,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := writer.Write(row); err != nil {
			ServerError(c, err)
			return
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		ServerError(c, err)
		return
	}

	filename := fmt.Sprintf("expenses_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportJSON downloads the caller's expenses plus summary totals as JSON.
// @Summary Export expenses as JSON
// @Tags export
// @Produce json
// @Security BearerAuth
// @Param start query string false "start date (2006-01-02)"
// @Param end query string false "end date (2006-01-02)"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/export/json [get]
func (h *ExportHandler) ExportJSON(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	var totalAmount float64
	for _, e := range expenses {
		totalAmount += e.Amount
	}

	c.JSON(http.StatusOK, gin.H{
		"total_count":  len(expenses),
		"total_amount": totalAmount,
		"expenses":     expenses,
	})
}

// ExportXLSX downloads the caller's expenses as an Excel workbook.
// @Summary Export expenses as XLSX
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start query string false "start date (2006-01-02)"
// @Param end query string false "end date (2006-01-02)"
// @Success 200 {file} file
// @Failure 400 {object} MessageResponse
// @Failure 401 {object} MessageResponse
// @Failure 500 {object} MessageResponse
// @Router /api/export/xlsx [get]
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	expenses, ok := h.queryExpenses(c)
	if !ok {
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Expenses"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetColWidth(sheet, "A", "A", 10)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "C", 18)
	f.SetColWidth(sheet, "D", "D", 30)
	f.SetColWidth(sheet, "E", "E", 20)

	headers := []string{"ID", "Amount", "Category", "Note", "Created At"}
	for i, head := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, head)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	for row, e := range expenses {
		values := []interface{}{
			e.ID,
			e.Amount,
			e.Category,
			e.Note,
			e.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		ServerError(c, err)
		return
	}

	filename := fmt.Sprintf("expenses_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
