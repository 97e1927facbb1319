package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	// Application Layer
	appService "deadline-tracker/internal/application/service"

	// Infrastructure Layer
	"deadline-tracker/internal/infrastructure/database/sqlite"
	"deadline-tracker/internal/infrastructure/notification"
	"deadline-tracker/internal/infrastructure/scheduler"

	// Interfaces Layer
	"deadline-tracker/internal/interfaces/api/handler"
	"deadline-tracker/internal/interfaces/api/router"

	// Packages
	appLogger "deadline-tracker/internal/pkg/logger"

	_ "github.com/joho/godotenv/autoload" // Automatically load .env file
)

func gracefulShutdown(apiServer *http.Server, notificationSvc appService.NotificationService, maintenanceSvc appService.MaintenanceService, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Listen for the interrupt signal.
	<-ctx.Done()

	log.Println("Shutting down gracefully, press Ctrl+C again to force")

	// Stop the background scan loop first so no notification fires mid-shutdown
	log.Println("Stopping notification service...")
	notificationSvc.Stop()
	log.Println("Notification service stopped.")

	log.Println("Stopping maintenance scheduler...")
	maintenanceSvc.Stop()
	log.Println("Maintenance scheduler stopped.")

	// Close database connection
	log.Println("Closing database connection...")
	if err := sqlite.CloseDB(); err != nil {
		log.Printf("Error closing database: %v", err)
	} else {
		log.Println("Database connection closed.")
	}

	// Shutdown HTTP server
	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown with error: %v", err)
	}

	log.Println("Server exiting")

	// Notify the main goroutine that the shutdown is complete
	done <- true
}

func main() {
	// --- Initialization ---
	appLog := appLogger.New()
	appLog.Info("Logger initialized.")

	// Load Environment Variables (using autoload)
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080" // Default port
		appLog.Warn("PORT environment variable not set, defaulting to 8080")
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		appLog.Error("Invalid PORT environment variable", err)
		os.Exit(1)
	}

	scanInterval := appService.DefaultScanInterval
	if intervalStr := os.Getenv("SCAN_INTERVAL_SECONDS"); intervalStr != "" {
		seconds, err := strconv.Atoi(intervalStr)
		if err != nil || seconds <= 0 {
			appLog.Error("Invalid SCAN_INTERVAL_SECONDS environment variable", err)
			os.Exit(1)
		}
		scanInterval = time.Duration(seconds) * time.Second
	}

	firebaseConfig := os.Getenv("FIREBASE_CONFIG")
	if firebaseConfig == "" {
		firebaseConfig = "firebase_config.json"
	}

	// --- Infrastructure ---
	db := sqlite.NewDB()
	taskRepo := sqlite.NewTaskRepository(db)
	appLog.Info("Database and repositories initialized.")

	notifManager := notification.NewManager(firebaseConfig, appLog)
	appLog.Info(fmt.Sprintf("Notification channels: remote=%t, local=%t",
		notifManager.RemoteEnabled(), notifManager.LocalEnabled()))
	cronScheduler := scheduler.NewScheduler(appLog)

	// --- Application Services ---
	notificationSvc := appService.NewNotificationService(notifManager, scanInterval, appLog)
	taskSvc := appService.NewTaskService(taskRepo, notificationSvc, appLog)
	maintenanceSvc := appService.NewMaintenanceService(cronScheduler, taskRepo, taskSvc, appLog)
	appLog.Info("Application services initialized.")

	// --- Initialize Schedules ---
	// The reminder schedule is in-memory only, so pending reminders are
	// re-derived from the task store on every boot.
	appLog.Info("Initializing reminder schedules...")
	notificationSvc.Start()
	if err := taskSvc.InitializeReminders(context.Background()); err != nil {
		// Log the error but continue starting the server
		appLog.Error("Failed to initialize reminders on startup", err)
	} else {
		appLog.Info("Reminder schedules initialized.")
	}
	if err := maintenanceSvc.Start(context.Background()); err != nil {
		appLog.Error("Failed to register maintenance jobs", err)
	}

	// --- API Handlers ---
	taskHandler := handler.NewTaskHandler(taskSvc, notificationSvc, appLog)
	appLog.Info("API handlers initialized.")

	// --- Router ---
	routerCfg := &router.Config{
		TaskHandler: taskHandler,
		Logger:      appLog,
	}
	echoRouter := router.NewRouter(routerCfg)

	// --- HTTP Server ---
	apiServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      echoRouter,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// --- Start Server & Shutdown Handling ---
	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, notificationSvc, maintenanceSvc, done)

	appLog.Info(fmt.Sprintf("Server starting on port %d", port))
	err = apiServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		appLog.Error("HTTP server ListenAndServe error", err)
		panic(fmt.Sprintf("http server error: %s", err))
	}

	// Wait for graceful shutdown signal
	<-done
	appLog.Info("Graceful shutdown complete.")
}
