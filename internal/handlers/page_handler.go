package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/pager"
	"github.com/zemenlab/zemen/internal/service"
)

// MonthDataLoader renders one month page worth of grids, holidays and events.
type MonthDataLoader interface {
	LoadMonthData(ctx context.Context, page int, now time.Time) (*service.MonthPageData, error)
}

type PageHandler struct {
	loader MonthDataLoader
}

func NewPageHandler(loader MonthDataLoader) *PageHandler {
	return &PageHandler{loader: loader}
}

// PageInfo is the metadata of one month page.
type PageInfo struct {
	Page           int                    `json:"page"`
	Year           int                    `json:"year"`
	Month          int                    `json:"month"`
	MonthName      string                 `json:"month_name"`
	Days           int                    `json:"days"`
	FirstDay       ethiopic.Date          `json:"first_day"`
	LastDay        ethiopic.Date          `json:"last_day"`
	GregorianStart ethiopic.GregorianDate `json:"gregorian_start"`
	GregorianEnd   ethiopic.GregorianDate `json:"gregorian_end"`
}

func pageInfo(page int) (PageInfo, error) {
	first, err := pager.DateForPage(page)
	if err != nil {
		return PageInfo{}, err
	}
	last := first.LastOfMonth()
	return PageInfo{
		Page:           page,
		Year:           first.Year,
		Month:          first.Month,
		MonthName:      first.MonthName(),
		Days:           last.Day,
		FirstDay:       first,
		LastDay:        last,
		GregorianStart: first.ToGregorian(),
		GregorianEnd:   last.ToGregorian(),
	}, nil
}

// InitialPage resolves the page to open on. With year/month query parameters
// it is that month's page, otherwise today's.
func (h *PageHandler) InitialPage(c *gin.Context) {
	if c.Query("year") == "" && c.Query("month") == "" {
		h.TodayPage(c)
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}
	if month < 1 || month > ethiopic.MonthsPerYear {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Month must be between 1 and 13"})
		return
	}

	page, err := pager.PageForDate(ethiopic.Date{Year: year, Month: month, Day: 1})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	info, err := pageInfo(page)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// TodayPage resolves the page containing today.
func (h *PageHandler) TodayPage(c *gin.Context) {
	page, err := pager.TodayPage(time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	info, err := pageInfo(page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetPage returns the metadata of one page without rendering its grids.
func (h *PageHandler) GetPage(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}
	info, err := pageInfo(page)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, info)
}

// GetPageData returns the fully rendered page: both grids, holidays, events.
func (h *PageHandler) GetPageData(c *gin.Context) {
	page, err := strconv.Atoi(c.Param("page"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}
	data, err := h.loader.LoadMonthData(c.Request.Context(), page, time.Now())
	if err != nil {
		c.Error(err)
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, data)
}
