package handler

import (
	"go-inventory-catalog/internal/config"
	"go-inventory-catalog/internal/middleware"
	"go-inventory-catalog/internal/model"
	"go-inventory-catalog/internal/service"
	"go-inventory-catalog/internal/ws"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type Services struct {
	Auth       service.AuthService
	Users      service.UserService
	Categories service.CategoryService
	Products   service.ProductService
	Inventory  service.InventoryService
	Ingest     service.IngestService
	Dashboard  service.DashboardService
}

type Options struct {
	AppName     string
	CORSOrigins string
	Upload      config.Upload
	// AccessLog enables the fiber request logger.
	AccessLog bool
	// Hub serves /ws when set.
	Hub *ws.Hub
}

// NewApp builds the fiber app with every route mounted.
func NewApp(svc Services, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		BodyLimit:    opts.Upload.BodyLimit(),
		ErrorHandler: ErrorHandler,
	})

	// Middleware
	if opts.AccessLog {
		app.Use(logger.New()) // Logging request
	}
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New(cors.Config{AllowOrigins: opts.CORSOrigins}))

	app.Get("/api/health", Health)

	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	categoryHandler := NewCategoryHandler(svc.Categories)
	productHandler := NewProductHandler(svc.Products)
	inventoryHandler := NewInventoryHandler(svc.Inventory)
	csvHandler := NewCSVHandler(svc.Ingest, opts.Upload)
	dashHandler := NewDashboardHandler(svc.Dashboard)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(svc.Auth))
	read := middleware.RequireRole(model.ReadRoles...)
	write := middleware.RequireRole(model.WriteRoles...)

	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/dashboard/stats", read, dashHandler.GetDashboardStats)

	protected.Get("/categories", read, categoryHandler.GetCategories)
	protected.Get("/categories/:id", read, categoryHandler.GetCategory)
	protected.Post("/categories", write, categoryHandler.CreateCategory)
	protected.Put("/categories/:id", write, categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id", write, categoryHandler.DeleteCategory)

	protected.Get("/products", read, productHandler.GetProducts)
	protected.Get("/products/:id", read, productHandler.GetProduct)
	protected.Post("/products", write, productHandler.CreateProduct)
	protected.Put("/products/:id", write, productHandler.UpdateProduct)
	protected.Delete("/products/:id", write, productHandler.DeleteProduct)

	protected.Get("/inventory", read, inventoryHandler.GetInventories)
	protected.Get("/inventory/:id", read, inventoryHandler.GetInventory)
	protected.Post("/inventory", write, inventoryHandler.CreateInventory)
	protected.Put("/inventory/:id", write, inventoryHandler.UpdateInventory)
	protected.Delete("/inventory/:id", write, inventoryHandler.DeleteInventory)

	protected.Post("/csv/upload", write, csvHandler.UploadCSV)

	// User management (master only)
	protected.Get("/users", write, userHandler.GetUsers)
	protected.Get("/users/:id", write, userHandler.GetUser)
	protected.Post("/users", write, userHandler.CreateUser)

	// WebSocket Route
	if opts.Hub != nil {
		app.Use("/ws", ws.Upgrade)
		app.Get("/ws", opts.Hub.Handler())
	}

	return app
}
