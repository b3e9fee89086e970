package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atsdairy/dashboard/internal/domain/models"
	"github.com/atsdairy/dashboard/internal/server/handlers"
)

// Handlers bundles every screen handler the router mounts. The route paths
// mirror the dashboard's navigation surface one to one.
type Handlers struct {
	Auth         *handlers.AuthHandler
	Insights     *handlers.InsightsHandler
	Prefs        *handlers.PrefsHandler
	Farmers      *handlers.Resource[models.Farmer]
	Milk         *handlers.Resource[models.MilkEntry]
	Distribution *handlers.DistributionHandler
	Units        *handlers.Resource[models.UnitBatch]
	Sales        *handlers.Resource[models.Sale]
	Inventory    *handlers.Resource[models.InventoryItem]
	Team         *handlers.Resource[models.TeamMember]
	Payflow      *handlers.PayflowHandler
	Buzzbox      *handlers.BuzzboxHandler
	Quality      *handlers.Resource[models.QualityTest]
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	auth := r.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/forgot-password", h.Auth.ForgotPassword)
		auth.POST("/logout", h.Auth.Logout)
		auth.GET("/session", h.Auth.Session)
		auth.POST("/session/sync", h.Auth.Sync)
	}

	r.GET("/dashboard", h.Insights.Overview)
	r.GET("/insights-center", h.Insights.Overview)
	r.POST("/insights-center/snapshot", h.Insights.Snapshot)

	h.Farmers.Register(r.Group("/farmers-portal"))
	h.Milk.Register(r.Group("/milking-zone"))
	h.Distribution.Register(r.Group("/distribution-network"))
	h.Units.Register(r.Group("/unit-tracker"))
	h.Sales.Register(r.Group("/sales-grid"))
	h.Inventory.Register(r.Group("/stock-control"))
	h.Team.Register(r.Group("/team-management"))
	h.Payflow.Register(r.Group("/payflow"))
	h.Buzzbox.Register(r.Group("/buzzbox"))
	h.Quality.Register(r.Group("/qa-module"))
	h.Prefs.Register(&r.RouterGroup)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
