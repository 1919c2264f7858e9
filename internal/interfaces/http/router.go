package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Gestion-api/internal/application/analytics"
	"github.com/jhoicas/Gestion-api/internal/application/auth"
	"github.com/jhoicas/Gestion-api/internal/application/billing"
	"github.com/jhoicas/Gestion-api/internal/application/inventory"
	"github.com/jhoicas/Gestion-api/internal/application/purchasing"
	"github.com/jhoicas/Gestion-api/internal/application/usecase"
	"github.com/jhoicas/Gestion-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.UseCase
	ProductUC     *usecase.ProductUseCase
	WarehouseUC   *usecase.WarehouseUseCase
	SupplierUC    *usecase.SupplierUseCase
	CustomerUC    *usecase.CustomerUseCase
	InventoryUC   *inventory.QueryUseCase
	AdjustmentUC  *inventory.AdjustmentUseCase
	TransferUC    *inventory.TransferUseCase
	PurchaseUC    *purchasing.PurchaseOrderUseCase
	InvoiceUC     *billing.InvoiceUseCase
	InvoicePDFUC  *billing.PDFUseCase
	DashboardUC   *analytics.DashboardUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
// Escrituras de catálogo y facturación: admin y manager. Operaciones de
// bodega (ajustes, traslados, recepciones): también bodeguero.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	staff := RequireRole(entity.RoleAdmin, entity.RoleManager)
	warehouseStaff := RequireRole(entity.RoleAdmin, entity.RoleManager, entity.RoleBodeguero)

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup2 := protected.Group("/auth")
	authGroup2.Get("/me", authHandler.Me)

	// Products
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", staff, productHandler.Create)
	products.Put("/:id", staff, productHandler.Update)
	products.Delete("/:id", staff, productHandler.Deactivate)

	// Warehouses
	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Post("/", staff, warehouseHandler.Create)
	warehouses.Put("/:id", staff, warehouseHandler.Update)
	warehouses.Delete("/:id", staff, warehouseHandler.Deactivate)

	// Suppliers
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/", staff, supplierHandler.Create)
	suppliers.Put("/:id", staff, supplierHandler.Update)

	// Customers
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", staff, customerHandler.Create)
	customers.Put("/:id", staff, customerHandler.Update)

	// Inventory: existencias, ledger, reporte de reposición y ajustes
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.AdjustmentUC)
	invGroup := protected.Group("/inventory")
	invGroup.Get("/", inventoryHandler.Levels)
	invGroup.Get("/movements", inventoryHandler.Movements)
	invGroup.Get("/low-stock", inventoryHandler.LowStock)
	protected.Post("/stock-adjustments", warehouseStaff, inventoryHandler.Adjust)

	// Purchase orders
	purchaseOrders := protected.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.PurchaseUC)
	purchaseOrders.Get("/", poHandler.List)
	purchaseOrders.Get("/:id", poHandler.GetByID)
	purchaseOrders.Post("/", staff, poHandler.Create)
	purchaseOrders.Put("/:id/status", staff, poHandler.UpdateStatus)
	purchaseOrders.Post("/:id/receive", warehouseStaff, poHandler.Receive)

	// Stock transfers
	transfers := protected.Group("/stock-transfers")
	transferHandler := NewStockTransferHandler(deps.TransferUC)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Post("/", warehouseStaff, transferHandler.Create)
	transfers.Post("/:id/process", warehouseStaff, transferHandler.Process)
	transfers.Post("/:id/cancel", warehouseStaff, transferHandler.Cancel)

	// Invoices
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC, deps.InvoicePDFUC)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Post("/", staff, invoiceHandler.Create)
	invoices.Put("/:id", staff, invoiceHandler.Update)
	invoices.Post("/:id/payments", staff, invoiceHandler.RecordPayment)

	// Dashboard
	dashboard := protected.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.Summary)
}
