package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/zemenlab/zemen/internal/handlers"
	"github.com/zemenlab/zemen/internal/middleware"
)

// Handlers bundles the route handlers so SetupRoutes stays a readable
// signature as endpoints grow.
type Handlers struct {
	Events    *handlers.EventHandler
	Instances *handlers.InstanceHandler
	Pages     *handlers.PageHandler
	Convert   *handlers.ConvertHandler
	Holidays  *handlers.HolidayHandler
}

// SetupRoutes configures all API routes with their middleware
func SetupRoutes(router *gin.Engine, h Handlers, rateLimiter *middleware.RateLimiter) {
	logger := logrus.New()

	// Global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.ErrorHandler())

	// Public routes
	public := router.Group("/")
	{
		public.GET("/status", handlers.StatusHandler)
		public.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
	}

	limited := router.Group("/")
	limited.Use(rateLimiter.RateLimit())
	{
		events := limited.Group("/events")
		{
			events.POST("", h.Events.CreateEvent)
			events.GET("", h.Events.ListEvents)
			events.GET("/:id", h.Events.GetEvent)
			events.PUT("/:id", h.Events.UpdateEvent)
			events.DELETE("/:id", h.Events.DeleteEvent)
			events.GET("/:id/instances", h.Instances.EventInstances)
		}

		limited.GET("/instances", h.Instances.ListInstances)

		pages := limited.Group("/pages")
		{
			pages.GET("/initial", h.Pages.InitialPage)
			pages.GET("/today", h.Pages.TodayPage)
			pages.GET("/:page", h.Pages.GetPage)
			pages.GET("/:page/data", h.Pages.GetPageData)
		}

		convert := limited.Group("/convert")
		{
			convert.GET("/to-gregorian", h.Convert.ToGregorian)
			convert.GET("/from-gregorian", h.Convert.FromGregorian)
		}

		limited.GET("/holidays/:year", h.Holidays.HolidaysForYear)
	}
}
