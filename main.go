package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"absensi_qr/attendance"
	"absensi_qr/config"
	"absensi_qr/db"
	"absensi_qr/middleware"
	"absensi_qr/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found") // Non-fatal in production
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	store, err := openStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Error opening %s storage: %v", cfg.StorageDriver, err)
	}
	defer store.Close()

	if cfg.AdminPasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}

	window := attendance.Window{Start: cfg.WindowStart, End: cfg.WindowEnd}
	svc := attendance.NewService(store, store, window, attendance.WithLocation(cfg.Location))
	tokenService := middleware.NewTokenService([]byte(cfg.JWTSecret), cfg.AdminUsername, cfg.AdminPasswordHash)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	r := gin.Default()
	r.Use(middleware.RequestID())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // Kiosk page may be served from anywhere
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Length",
		"Content-Type",
		"Authorization",
		middleware.RequestIDHeader,
	}
	corsConfig.AllowMethods = []string{
		"GET",
		"POST",
	}
	r.Use(cors.New(corsConfig))

	// Setup routes
	routes.SetupRoutes(r, svc, store, tokenService)

	// Run server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Printf("Attendance kiosk listening on :%s (storage=%s, window=%s, tz=%s)",
			cfg.ServerPort, cfg.StorageDriver, window, cfg.Location)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (db.Store, error) {
	switch cfg.StorageDriver {
	case config.DriverPostgres:
		return db.Initialize(db.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			DBName:   cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		})
	case config.DriverBolt:
		return db.NewBolt(cfg.BoltPath)
	case config.DriverSheets:
		return db.NewSheets(ctx, db.SheetsConfig{
			SpreadsheetID:   cfg.SpreadsheetID,
			CredentialsFile: cfg.GoogleCredentialsFile,
			AttendanceSheet: cfg.SheetAttendance,
			SummarySheet:    cfg.SheetSummary,
		})
	case config.DriverMemory:
		log.Println("Warning: memory storage selected, attendance is lost on restart")
		return db.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
