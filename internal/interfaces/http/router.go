package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/auth"
	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/application/purchasing"
	"github.com/jhoicas/Restobar-api/internal/application/usecase"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC          *usecase.ItemUseCase
	CategoryUC      *usecase.CategoryUseCase
	SupplierUC      *usecase.SupplierUseCase
	IntakeUC        *inventory.IntakeUseCase
	QueryUC         *inventory.QueryUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	PurchasingUC    *purchasing.UseCase
	OrderPDFUC      *purchasing.PDFUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles: escritura de catálogo para admin/gerente; movimientos de bodega
	// también para almacenista; consumos además para cajero (registra ventas).
	manageCatalog := RequireRole(entity.RoleAdmin, entity.RoleGerente)
	manageStock := RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleAlmacenista)
	registerConsumption := RequireRole(entity.RoleAdmin, entity.RoleGerente, entity.RoleAlmacenista, entity.RoleCajero)

	// Items (protegido)
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Post("/", manageCatalog, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", manageCatalog, itemHandler.Update)
	items.Delete("/:id", manageCatalog, itemHandler.Delete)

	// Categories (protegido)
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", manageCatalog, categoryHandler.Create)
	categories.Get("/", categoryHandler.List)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", manageCatalog, categoryHandler.Update)
	categories.Delete("/:id", manageCatalog, categoryHandler.Delete)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", manageCatalog, supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", manageCatalog, supplierHandler.Update)
	suppliers.Delete("/:id", manageCatalog, supplierHandler.Delete)

	// Inventory: libro de movimientos y vistas derivadas (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.IntakeUC, deps.QueryUC, deps.ReplenishmentUC)
	invGroup.Post("/consumptions", registerConsumption, inventoryHandler.RegisterConsumption)
	invGroup.Post("/adjustments", manageStock, inventoryHandler.RegisterAdjustment)
	invGroup.Get("/items/:id/transactions", inventoryHandler.GetTransactionHistory)
	invGroup.Get("/low-stock", inventoryHandler.ListLowStock)
	invGroup.Get("/summary", inventoryHandler.GetMovementSummary)
	invGroup.Get("/replenishment-list", inventoryHandler.GetReplenishmentList)

	// Purchase orders (protegido)
	orders := protected.Group("/purchase-orders")
	purchasingHandler := NewPurchasingHandler(deps.PurchasingUC, deps.OrderPDFUC)
	orders.Post("/", manageStock, purchasingHandler.Create)
	orders.Get("/", purchasingHandler.List)
	orders.Get("/:id", purchasingHandler.GetByID)
	orders.Put("/:id", manageStock, purchasingHandler.Update)
	orders.Post("/:id/complete", manageStock, purchasingHandler.Complete)
	orders.Post("/:id/cancel", manageStock, purchasingHandler.Cancel)
	orders.Get("/:id/pdf", purchasingHandler.DownloadPDF)
}
