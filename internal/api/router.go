package api

import (
	"net/http"

	"dashformance/leads-api/internal/api/controllers"
	"dashformance/leads-api/internal/api/middleware"
	"dashformance/leads-api/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Dependencies are the services the router exposes
type Dependencies struct {
	Extractor   controllers.Extractor
	Leads       controllers.LeadManager
	Stats       controllers.StatsProvider
	RateLimiter *middleware.RateLimiter
	Logger      *logrus.Logger

	// AppPassword protects every route but /health, /metrics, /swagger and /auth; empty disables it
	AppPassword  string
	SecureCookie bool
}

// NewRouter creates and configures a new Gin router
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.RequestID(),
		middleware.Logger(deps.Logger),
		middleware.Recovery(deps.Logger),
		metrics.Middleware(),
	)

	// Initialize controllers
	extractionController := controllers.NewExtractionController(deps.Extractor, deps.Logger)
	leadsController := controllers.NewLeadsController(deps.Leads)
	statsController := controllers.NewStatsController(deps.Stats)
	authController := controllers.NewAuthController(deps.AppPassword, deps.SecureCookie, deps.Logger)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limited := router.Group("/")
	if deps.RateLimiter != nil {
		limited.Use(deps.RateLimiter.Middleware())
	}

	limited.POST("/auth/login", authController.Login)

	protected := limited.Group("/")
	protected.Use(middleware.Auth(deps.AppPassword))

	extraction := protected.Group("/extraction")
	{
		extraction.POST("/search", extractionController.Search)
		extraction.POST("/extract", extractionController.Extract)
		extraction.POST("/preview", extractionController.Preview)
	}

	leads := protected.Group("/leads")
	{
		leads.POST("", leadsController.Create)
		leads.GET("", leadsController.FindAll)
		leads.POST("/batch", leadsController.CreateMany)
		leads.POST("/batch/delete", leadsController.RemoveMany)
		leads.POST("/batch/restore", leadsController.RestoreMany)
		leads.POST("/batch/update", leadsController.UpdateMany)
		leads.GET("/trashed", leadsController.FindAllTrashed)
		leads.POST("/cleanup-duplicates", leadsController.CleanupDuplicates)
		leads.POST("/divide", leadsController.DivideLeads)

		stats := leads.Group("/stats")
		{
			stats.GET("/overview", statsController.Overview)
			stats.GET("/funnel", statsController.Funnel)
			stats.GET("/timeline", statsController.Timeline)
			stats.GET("/performance", statsController.Performance)
			stats.GET("/geo", statsController.Geo)
			stats.GET("/salesforce", statsController.SalesForce)
		}

		leads.GET("/:id", leadsController.FindOne)
		leads.PATCH("/:id", leadsController.Update)
		leads.DELETE("/:id", leadsController.Remove)
		leads.POST("/:id/restore", leadsController.Restore)
		leads.POST("/:id/disqualify", leadsController.Disqualify)
		leads.DELETE("/:id/hard-delete", leadsController.HardDelete)
	}

	return router
}
