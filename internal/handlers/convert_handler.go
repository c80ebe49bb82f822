package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/zemenlab/zemen/internal/ethiopic"
)

// ConvertHandler exposes the calendar conversions. Stateless; both
// directions round-trip exactly.
type ConvertHandler struct{}

func NewConvertHandler() *ConvertHandler {
	return &ConvertHandler{}
}

// ConversionResponse pairs an Ethiopic date with its Gregorian equivalent.
type ConversionResponse struct {
	Ethiopian ethiopic.Date          `json:"ethiopian"`
	Gregorian ethiopic.GregorianDate `json:"gregorian"`
	Weekday   string                 `json:"weekday"`
}

// ToGregorian converts year/month/day query parameters from the Ethiopian
// calendar.
func (h *ConvertHandler) ToGregorian(c *gin.Context) {
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
	day, err := strconv.Atoi(c.Query("day"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid day"})
		return
	}

	date, err := ethiopic.Of(year, month, day)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ConversionResponse{
		Ethiopian: date,
		Gregorian: date.ToGregorian(),
		Weekday:   date.Weekday().Code(),
	})
}

// FromGregorian converts a date=YYYY-MM-DD query parameter to the Ethiopian
// calendar.
func (h *ConvertHandler) FromGregorian(c *gin.Context) {
	g, err := ethiopic.ParseGregorian(c.Query("date"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		return
	}

	date := ethiopic.FromGregorian(g)
	c.JSON(http.StatusOK, ConversionResponse{
		Ethiopian: date,
		Gregorian: g,
		Weekday:   date.Weekday().Code(),
	})
}
