package router

import (
	"github.com/clinicore/backend/internal/infrastructure/auth"
	"github.com/clinicore/backend/internal/infrastructure/config"
	"github.com/clinicore/backend/internal/infrastructure/logger"
	"github.com/clinicore/backend/internal/interfaces/http/handler"
	"github.com/clinicore/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the handlers the router wires up
type Handlers struct {
	Health    *handler.HealthHandler
	Invoice   *handler.InvoiceHandler
	Patient   *handler.PatientHandler
	Staff     *handler.StaffHandler
	Inventory *handler.InventoryHandler
}

// New builds the gin engine with middleware and all API routes
func New(cfg *config.Config, jwtService *auth.JWTService, handlers Handlers, log *zap.Logger) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(middleware.CORSConfig{
			AllowOrigins: cfg.HTTP.CORSAllowOrigins,
			AllowMethods: cfg.HTTP.CORSAllowMethods,
			AllowHeaders: cfg.HTTP.CORSAllowHeaders,
		}),
	)

	engine.GET("/health", handlers.Health.Health)
	engine.GET("/ready", handlers.Health.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Auth(middleware.AuthConfig{
		JWTService:          jwtService,
		AllowHeaderFallback: cfg.App.Env != "production",
	}))

	registerInvoiceRoutes(api, handlers.Invoice)
	registerPatientRoutes(api, handlers.Patient)
	registerStaffRoutes(api, handlers.Staff)
	registerInventoryRoutes(api, handlers.Inventory)

	return engine
}

func registerInvoiceRoutes(api *gin.RouterGroup, h *handler.InvoiceHandler) {
	invoices := api.Group("/invoices")
	{
		invoices.POST("", h.Create)
		invoices.GET("", h.List)
		invoices.GET("/:id", h.GetByID)
		invoices.PUT("/:id", h.Update)
		invoices.DELETE("/:id", h.Delete)
		invoices.GET("/number/:number", h.GetByNumber)

		invoices.POST("/:id/items", h.AddItem)
		invoices.PUT("/:id/items/:itemId", h.UpdateItem)
		invoices.DELETE("/:id/items/:itemId", h.RemoveItem)

		invoices.POST("/:id/send", h.Send)
		invoices.POST("/:id/payments", h.RecordPayment)
		invoices.GET("/:id/payments", h.ListPayments)
		invoices.POST("/:id/cancel", h.Cancel)
		invoices.PUT("/:id/status", h.UpdateStatus)
	}
}

func registerPatientRoutes(api *gin.RouterGroup, h *handler.PatientHandler) {
	patients := api.Group("/patients")
	{
		patients.POST("", h.Register)
		patients.GET("", h.List)
		patients.GET("/:id", h.GetByID)
		patients.PUT("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
		patients.GET("/mrn/:mrn", h.GetByMRN)
	}
}

func registerStaffRoutes(api *gin.RouterGroup, h *handler.StaffHandler) {
	staff := api.Group("/staff")
	{
		staff.POST("", h.Create)
		staff.GET("", h.List)
		staff.GET("/:id", h.GetByID)
		staff.PUT("/:id", h.Update)
		staff.DELETE("/:id", h.Delete)
		staff.PUT("/:id/role", h.ChangeRole)
		staff.POST("/:id/deactivate", h.Deactivate)
		staff.POST("/:id/activate", h.Activate)
	}
}

func registerInventoryRoutes(api *gin.RouterGroup, h *handler.InventoryHandler) {
	supplies := api.Group("/supplies")
	{
		supplies.POST("", h.Create)
		supplies.GET("", h.List)
		supplies.GET("/:id", h.GetByID)
		supplies.PUT("/:id", h.Update)
		supplies.DELETE("/:id", h.Delete)
		supplies.GET("/sku/:sku", h.GetBySKU)

		supplies.POST("/:id/receive", h.Receive)
		supplies.POST("/:id/consume", h.Consume)
		supplies.POST("/:id/adjust", h.Adjust)
	}
}
