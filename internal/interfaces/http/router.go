package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/stockledger-api/internal/application/auth"
	"github.com/jhoicas/stockledger-api/internal/application/inventory"
	"github.com/jhoicas/stockledger-api/internal/application/ports"
	"github.com/jhoicas/stockledger-api/internal/application/report"
	"github.com/jhoicas/stockledger-api/internal/application/usecase"
	"github.com/jhoicas/stockledger-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	ProductUC   *usecase.ProductUseCase
	SupplierUC  *usecase.SupplierUseCase
	StockInUC   *inventory.StockInUseCase
	StockOutUC  *inventory.StockOutUseCase
	ReconcileUC *inventory.ReconcileUseCase
	ReportUC    *report.ReportUseCase
	Renderers   []ports.ReportRenderer
	JWTSecret   string
	Log         zerolog.Logger
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y el formato de error común.
func NewApp(name string, log zerolog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: errorHandler(log),
	})
	app.Use(recover.New())
	app.Use(RequestLogger(log))
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": app.Config().AppName})
	})

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC, log)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Todo lo demás requiere Bearer Token con rol admin.
	protected := api.Group("", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/with-debt", supplierHandler.WithDebt)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", supplierHandler.Delete)

	stockIn := protected.Group("/stock-in")
	stockInHandler := NewStockInHandler(deps.StockInUC, log)
	stockIn.Get("/", stockInHandler.List)
	stockIn.Post("/", stockInHandler.Create)
	stockIn.Post("/import", stockInHandler.Import)
	stockIn.Get("/:id", stockInHandler.GetByID)
	stockIn.Put("/:id", stockInHandler.Update)
	stockIn.Delete("/:id", stockInHandler.Delete)

	stockOut := protected.Group("/stock-out")
	stockOutHandler := NewStockOutHandler(deps.StockOutUC, log)
	stockOut.Get("/", stockOutHandler.List)
	stockOut.Post("/", stockOutHandler.Create)
	stockOut.Get("/today", stockOutHandler.Today)
	stockOut.Get("/:id", stockOutHandler.GetByID)
	stockOut.Put("/:id", stockOutHandler.Update)
	stockOut.Delete("/:id", stockOutHandler.Delete)

	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, log, deps.Renderers...)
	reports.Get("/sales", reportHandler.Sales)
	reports.Get("/stock-status", reportHandler.StockStatus)
	reports.Get("/supplier-deliveries", reportHandler.SupplierDeliveries)
	reports.Get("/profit", reportHandler.Profit)
	reports.Get("/outstanding-debts", reportHandler.OutstandingDebts)
	reports.Get("/product-sales", reportHandler.ProductSales)

	admin := protected.Group("/admin")
	adminHandler := NewAdminHandler(deps.ReconcileUC, log)
	admin.Post("/reconcile", adminHandler.Reconcile)
}
