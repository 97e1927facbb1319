package router

import (
	"fmt"
	"net/http"

	"deadline-tracker/internal/interfaces/api/handler"
	"deadline-tracker/internal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Config holds the dependencies for the router.
type Config struct {
	TaskHandler *handler.TaskHandler
	Logger      logger.Logger
}

// NewRouter creates and configures a new Echo router.
func NewRouter(cfg *Config) *echo.Echo {
	e := echo.New()

	// Middleware
	e.Use(middleware.RequestID())
	// Use custom logger that integrates with our logger interface
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogHost:      true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			cfg.Logger.Info(fmt.Sprintf("REQUEST: method=%s, uri=%s, status=%d, latency=%s, req_id=%s",
				v.Method, v.URI, v.Status, v.Latency, v.RequestID,
			))
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Routes
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/tasks", cfg.TaskHandler.ListTasks)
	api.POST("/tasks", cfg.TaskHandler.CreateTask)
	api.POST("/tasks/export", cfg.TaskHandler.ExportTasks)
	api.POST("/tasks/import", cfg.TaskHandler.ImportTasks)
	api.GET("/tasks/:id", cfg.TaskHandler.GetTask)
	api.PUT("/tasks/:id", cfg.TaskHandler.UpdateTask)
	api.DELETE("/tasks/:id", cfg.TaskHandler.DeleteTask)
	api.POST("/tasks/:id/complete", cfg.TaskHandler.CompleteTask)
	api.POST("/notifications/test", cfg.TaskHandler.TestNotification)

	cfg.Logger.Info("Router initialized with routes.")
	return e
}
