package Controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Compass/Models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// RouteHistoryHandler contains handler methods for route history routes
type RouteHistoryHandler struct {
	DB *gorm.DB
}

// NewRouteHistoryHandler creates a new route history handler
func NewRouteHistoryHandler(db *gorm.DB) *RouteHistoryHandler {
	return &RouteHistoryHandler{
		DB: db,
	}
}

// historyQuery applies the shared query-param filters
func (h *RouteHistoryHandler) historyQuery(c *fiber.Ctx) *gorm.DB {
	query := h.DB.Model(&Models.RouteLog{})

	if mode := c.Query("mode"); mode != "" {
		query = query.Where("mode = ?", mode)
	}
	if source := c.Query("source"); source != "" {
		query = query.Where("source = ?", source)
	}
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate != "" && endDate != "" {
		query = query.Where("created_at >= ? AND created_at <= ?", startDate, endDate)
	}

	return query.Order("created_at DESC")
}

// GetRouteHistory returns recent optimizations, newest first
func (h *RouteHistoryHandler) GetRouteHistory(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	if limit < 1 || limit > 500 {
		limit = 50
	}

	var logs []Models.RouteLog
	if err := h.historyQuery(c).Limit(limit).Find(&logs).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch route history",
			"error":   err.Error(),
		})
	}

	var total int64
	h.DB.Model(&Models.RouteLog{}).Count(&total)

	return c.JSON(fiber.Map{
		"routes": logs,
		"count":  len(logs),
		"total":  total,
	})
}

// ExportRouteHistory downloads the filtered history as an Excel workbook
func (h *RouteHistoryHandler) ExportRouteHistory(c *fiber.Ctx) error {
	var logs []Models.RouteLog
	if err := h.historyQuery(c).Limit(5000).Find(&logs).Error; err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch route history",
			"error":   err.Error(),
		})
	}

	f := excelize.NewFile()
	sheetName := "Routes"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to build export",
			"error":   err.Error(),
		})
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"ID", "Created At", "Mode", "Source", "Round Trip",
		"Points", "Total Distance (km)", "Total Duration (min)",
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6FA"},
			Pattern: 1,
		},
	})
	if err == nil {
		f.SetRowStyle(sheetName, 1, 1, headerStyle)
	}

	for rowIndex, entry := range logs {
		row := rowIndex + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), entry.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), entry.CreatedAt.Format("2006-01-02 15:04:05"))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), entry.Mode)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), entry.Source)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), entry.RoundTrip)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), entry.PointCount)
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), entry.TotalDistanceKm)
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), entry.TotalDurationMin)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to build export",
			"error":   err.Error(),
		})
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("route_history_%s.xlsx", timestamp)

	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Set("Content-Length", fmt.Sprintf("%d", buffer.Len()))

	return c.Send(buffer.Bytes())
}
