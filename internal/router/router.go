package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "vatledger/docs"
	"vatledger/internal/auth"
	"vatledger/internal/domain"
	"vatledger/internal/handler"
	"vatledger/internal/middleware"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health   *handler.HealthHandler
	Report   *handler.ReportHandler
	MenuItem *handler.MenuItemHandler
	Order    *handler.OrderHandler
	Settings *handler.SettingsHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(validator auth.TokenValidator, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	protected.Use(middleware.TenantGuard())

	reports := protected.Group("/reports/vat")
	reports.GET("", h.Report.VATReport)
	reports.GET("/export", h.Report.Export)
	reports.POST("/archive", middleware.RequireRole(domain.RoleAdmin), h.Report.Archive)

	orders := protected.Group("/orders")
	orders.GET("/:id/vat", h.Order.VAT)
	orders.POST("/:id/confirmation", h.Order.SendConfirmation)

	items := protected.Group("/menu-items")
	items.GET("", h.MenuItem.List)
	items.GET("/:id", h.MenuItem.GetByID)
	items.POST("", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), h.MenuItem.Create)
	items.PUT("/:id", middleware.RequireRole(domain.RoleAdmin, domain.RoleManager), h.MenuItem.Update)
	items.DELETE("/:id", middleware.RequireRole(domain.RoleAdmin), h.MenuItem.Delete)

	settings := protected.Group("/settings")
	settings.GET("", h.Settings.Get)
	settings.PUT("", middleware.RequireRole(domain.RoleAdmin), h.Settings.Update)

	return r
}
