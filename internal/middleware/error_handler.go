package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zemenlab/zemen/internal/ethiopic"
	"github.com/zemenlab/zemen/internal/models"
	"github.com/zemenlab/zemen/internal/pager"
	"github.com/zemenlab/zemen/internal/recurrence"
)

// ErrorResponse represents the standard error response format
type ErrorResponse struct {
	Error string `json:"error"`
}

// ErrorHandler is a middleware that handles errors in a centralized way
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err

			statusCode := http.StatusInternalServerError
			var parseErr *recurrence.ParseError
			switch {
			case errors.Is(err, models.ErrEventNotFound):
				statusCode = http.StatusNotFound
			case errors.Is(err, pager.ErrPageOutOfRange),
				errors.Is(err, ethiopic.ErrInvalidDate),
				errors.Is(err, ethiopic.ErrInvalidMonth),
				errors.As(err, &parseErr):
				statusCode = http.StatusBadRequest
			}
			var rateErr *RateLimitError
			if errors.As(err, &rateErr) {
				statusCode = http.StatusTooManyRequests
			}

			c.JSON(statusCode, ErrorResponse{
				Error: err.Error(),
			})
		}
	}
}

type RateLimitError struct {
	Message string
}

func (e *RateLimitError) Error() string {
	return e.Message
}
