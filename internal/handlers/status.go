package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/middleware"
	"github.com/zemenlab/zemen/internal/pager"
)

var startTime = time.Now()

// StatusResponse represents the status endpoint response
type StatusResponse struct {
	Status        string        `json:"status"`
	UptimeSeconds int64         `json:"uptime_seconds"`
	Version       string        `json:"version"`
	Today         ethiopic.Date `json:"today"`
	TodayPage     int           `json:"today_page"`
	PageRange     PageRange     `json:"page_range"`
}

// PageRange describes the span of navigable month pages.
type PageRange struct {
	MinYear    int `json:"min_year"`
	MaxYear    int `json:"max_year"`
	TotalPages int `json:"total_pages"`
}

// StatusHandler handles the status endpoint
func StatusHandler(c *gin.Context) {
	logger := middleware.RequestLogger(c)
	now := time.Now()
	todayPage, _ := pager.TodayPage(now)
	response := StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
		Version:       "1.0.0",
		Today:         ethiopic.Today(now),
		TodayPage:     todayPage,
		PageRange: PageRange{
			MinYear:    pager.MinYear,
			MaxYear:    pager.MaxYear,
			TotalPages: pager.TotalPages,
		},
	}
	logger.Info("Status endpoint checked", zap.Int64("uptime_seconds", response.UptimeSeconds))
	c.JSON(http.StatusOK, response)
}
