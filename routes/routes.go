package routes

import (
	"absensi_qr/handlers"
	"absensi_qr/middleware"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(r *gin.Engine, svc handlers.KioskService, store handlers.Pinger, tokenService *middleware.TokenService) {
	// Initialize handlers
	attendanceHandler := handlers.NewAttendanceHandler(svc)
	authHandler := handlers.NewAuthHandler(tokenService)
	healthHandler := handlers.NewHealthHandler(store)

	r.GET("/health", healthHandler.HealthCheck)

	api := r.Group("/api")
	{
		// Kiosk routes
		api.GET("/status", attendanceHandler.GetStatus)
		api.POST("/scan", attendanceHandler.Scan)

		api.POST("/login", authHandler.Login)
	}

	// Protected routes
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(tokenService.JWTSecret))
	{
		admin.GET("/attendance/today", attendanceHandler.GetToday)
		admin.GET("/summary", attendanceHandler.GetSummary)
		admin.POST("/summary/rebuild", attendanceHandler.RebuildSummary)
	}
}
