package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/boticaplus/backend/internal/api/handlers"
	"github.com/boticaplus/backend/internal/auth"
	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/service"
	"github.com/boticaplus/backend/internal/storage"
)

type Services struct {
	ReportService   *service.ReportService
	UserService     *service.UserService
	ActivityService *service.ActivityService
	AuthManager     *auth.Manager
	Store           storage.ObjectStorage
	ExportDir       string
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services == nil {
		return router
	}

	userHandler := handlers.NewUserHandler(services.UserService, services.ActivityService, services.AuthManager)
	apiGroup.POST("/auth/login", userHandler.Login)

	authed := apiGroup.Group("")
	authed.Use(auth.RequireAuth(services.AuthManager))
	adminOnly := authed.Group("", auth.RequireRole(domain.RoleAdmin))

	if services.ReportService != nil {
		reportHandler := handlers.NewReportHandler(services.ReportService)
		reportGroup := authed.Group("/reports")
		{
			reportGroup.GET("/sales", reportHandler.GetSalesReport)
			reportGroup.GET("/inventory", reportHandler.GetInventoryReport)
			reportGroup.GET("/financial", reportHandler.GetFinancialReport)
		}
		authed.GET("/dashboard", reportHandler.GetDashboard)

		exportHandler := handlers.NewExportHandler(services.ReportService, services.ActivityService, services.Store, services.ExportDir)
		reportGroup.GET("/:type/export", exportHandler.ExportReport)
		adminOnly.GET("/exports", exportHandler.ListExports)
	}

	userGroup := adminOnly.Group("/users")
	{
		userGroup.POST("", userHandler.CreateUser)
		userGroup.GET("", userHandler.ListUsers)
		userGroup.GET("/:id", userHandler.GetUser)
		userGroup.PUT("/:id", userHandler.UpdateUser)
		userGroup.DELETE("/:id", userHandler.DeactivateUser)
	}

	activityHandler := handlers.NewActivityHandler(services.ActivityService)
	adminOnly.GET("/activity", activityHandler.ListActivity)

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
