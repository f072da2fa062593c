package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/sovtrack/sovtrack/config"
	"github.com/sovtrack/sovtrack/controllers"
	"github.com/sovtrack/sovtrack/middleware"
	"github.com/sovtrack/sovtrack/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB, oracle *utils.PriceOracle, coach *utils.CoachClient) *gin.Engine {
	// Load config and set Gin mode from configuration
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Billing-Signature"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}

	r.Use(cors.New(corsCfg))

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	authController := controllers.NewAuthController(db)
	pathController := controllers.NewPathController(db)
	entryController := controllers.NewEntryController(db)
	financeController := controllers.NewFinanceController(db)
	metricsController := controllers.NewMetricsController(db, oracle)
	coachController := controllers.NewCoachController(db, coach)
	billingController := controllers.NewBillingController(db)
	statsController := controllers.NewStatsController(db)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)
	authGroup.PATCH("/profile", middleware.AuthRequired(), authController.UpdateProfile)

	// Paths are public reading material; selecting one requires a session.
	api.GET("/paths", pathController.ListPaths)

	// Public stats endpoint
	api.GET("/stats", statsController.GetStats)

	// Billing webhooks authenticate with an HMAC signature, not a JWT.
	api.POST("/billing/webhook", billingController.Webhook)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(), middleware.RateLimitMiddleware())

	protected.POST("/paths/select", pathController.SelectPath)

	protected.PUT("/entries/:date", entryController.UpsertEntry)
	protected.GET("/entries/:date", entryController.GetEntry)
	protected.GET("/entries", entryController.ListEntries)

	protected.PUT("/finance/assets", financeController.UpsertAssets)
	protected.GET("/finance/assets", financeController.GetAssets)
	protected.PUT("/finance/expenses", financeController.UpsertExpenses)
	protected.GET("/finance/expenses", financeController.GetExpenses)
	protected.GET("/finance/calculate", financeController.Calculate)

	protected.GET("/billing/status", billingController.Status)

	premium := protected.Group("")
	premium.Use(middleware.PremiumRequired(db))
	premium.GET("/bitcoin/metrics", metricsController.BitcoinMetrics)
	premium.GET("/bitcoin/dca", metricsController.SimulateDCA)
	premium.POST("/coach/ask", coachController.Ask)
	premium.GET("/coach/history", coachController.History)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "api route not found")
	})

	return r
}
