package Controllers

import (
	"bufio"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

// LogEntry represents a single request log entry
type LogEntry struct {
	Timestamp time.Time     `json:"timestamp"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	URL       string        `json:"url"`
	Status    int           `json:"status"`
	Latency   time.Duration `json:"latency"`
	IP        string        `json:"ip"`
	UserAgent string        `json:"user_agent"`
	Error     string        `json:"error,omitempty"`
}

// GetLogs retrieves request logs with paging and path/method/status filters
func GetLogs(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "50"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}
	pathFilter := c.Query("path", "")
	methodFilter := c.Query("method", "")
	statusFilter := c.Query("status", "")

	file, err := os.Open("logs/requests.log")
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(fiber.Map{"logs": []LogEntry{}, "total": 0, "page": page})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to read logs",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	var entries []LogEntry
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var entry LogEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			continue
		}
		if pathFilter != "" && entry.Path != pathFilter {
			continue
		}
		if methodFilter != "" && entry.Method != methodFilter {
			continue
		}
		if statusFilter != "" {
			if status, err := strconv.Atoi(statusFilter); err == nil && entry.Status != status {
				continue
			}
		}
		entries = append(entries, entry)
	}

	// Newest first
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}

	total := len(entries)
	startIdx := (page - 1) * pageSize
	if startIdx > total {
		startIdx = total
	}
	endIdx := startIdx + pageSize
	if endIdx > total {
		endIdx = total
	}

	return c.JSON(fiber.Map{
		"logs":      entries[startIdx:endIdx],
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
