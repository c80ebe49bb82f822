package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/holidays"
)

type HolidayHandler struct {
	catalog *holidays.Catalog
}

func NewHolidayHandler(catalog *holidays.Catalog) *HolidayHandler {
	return &HolidayHandler{catalog: catalog}
}

// HolidaysForYear resolves holidays against an Ethiopian year, optionally
// narrowed to one month with ?month=.
func (h *HolidayHandler) HolidaysForYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}

	var occurrences []holidays.Occurrence
	if m := c.Query("month"); m != "" {
		month, err := strconv.Atoi(m)
		if err != nil || month < 1 || month > ethiopic.MonthsPerYear {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Month must be between 1 and 13"})
			return
		}
		occurrences = h.catalog.OccurrencesForMonth(year, month)
	} else {
		occurrences = h.catalog.OccurrencesForYear(year)
	}
	if occurrences == nil {
		occurrences = []holidays.Occurrence{}
	}

	c.JSON(http.StatusOK, gin.H{"year": year, "holidays": occurrences})
}
