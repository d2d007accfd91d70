package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/dany-shop/internal/application/auth"
	"github.com/jhoicas/dany-shop/internal/application/ledger"
	"github.com/jhoicas/dany-shop/internal/application/ports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *ledger.Ledger
	AuthUC    *auth.AuthUseCase
	Ticket    ports.TicketPDFGenerator
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	anyRole := RequireRole(auth.RoleAdmin, auth.RoleVendedor)
	adminOnly := RequireRole(auth.RoleAdmin)

	// Customers
	customers := protected.Group("/customers", anyRole)
	customerHandler := NewCustomerHandler(deps.Ledger)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/overdue", customerHandler.Overdue)
	customers.Get("/credit", customerHandler.Credit)
	customers.Get("/:folio", customerHandler.GetByFolio)
	customers.Get("/:folio/debt", customerHandler.Debt)
	customers.Get("/:folio/purchases", customerHandler.Purchases)

	// Products (alta y ajustes solo admin)
	products := protected.Group("/products", anyRole)
	productHandler := NewProductHandler(deps.Ledger)
	products.Post("/", adminOnly, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/out-of-stock", productHandler.OutOfStock)
	products.Get("/:id", productHandler.GetByID)

	// Sales
	sales := protected.Group("/sales", anyRole)
	saleHandler := NewSaleHandler(deps.Ledger, deps.Ticket)
	sales.Post("/", saleHandler.Create)
	sales.Post("/preview", saleHandler.Preview)
	sales.Get("/", saleHandler.List)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Get("/:id/ticket", saleHandler.Ticket)

	// Reports
	reports := protected.Group("/reports", anyRole)
	reportHandler := NewReportHandler(deps.Ledger)
	reports.Get("/stats", reportHandler.Stats)
	reports.Get("/top-product", reportHandler.TopProduct)
	reports.Get("/financial", reportHandler.Financial)

	// Actividad, preferencias y exportación
	storeHandler := NewStoreHandler(deps.Ledger)
	protected.Get("/activity", anyRole, storeHandler.Activity)
	protected.Post("/activity/read", anyRole, storeHandler.MarkRead)
	protected.Put("/settings/theme", adminOnly, storeHandler.SetTheme)
	protected.Get("/export", adminOnly, storeHandler.Export)
}
