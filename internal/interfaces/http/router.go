package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cozinhapro/backoffice-api/internal/application/auth"
	"github.com/cozinhapro/backoffice-api/internal/application/catalog"
	"github.com/cozinhapro/backoffice-api/internal/application/ingest"
	"github.com/cozinhapro/backoffice-api/internal/application/ledger"
	"github.com/cozinhapro/backoffice-api/internal/application/menu"
	"github.com/cozinhapro/backoffice-api/internal/application/recipe"
	"github.com/cozinhapro/backoffice-api/internal/application/report"
	"github.com/cozinhapro/backoffice-api/internal/application/sales"
	"github.com/cozinhapro/backoffice-api/internal/application/waste"
	"github.com/cozinhapro/backoffice-api/internal/infrastructure/pdf"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	CatalogUC *catalog.UseCase
	LedgerUC  *ledger.UseCase
	IngestUC  *ingest.UseCase
	RecipeUC  *recipe.UseCase
	MenuUC    *menu.UseCase
	WasteUC   *waste.UseCase
	SalesUC   *sales.UseCase
	ReportUC  *report.UseCase
	PDFGen    *pdf.CostSheetGenerator
	JWTSecret string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Insumos + livro de movimentos
	productHandler := NewProductHandler(deps.CatalogUC)
	inventoryHandler := NewInventoryHandler(deps.LedgerUC, deps.CatalogUC)
	products := protected.Group("/products")
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Get("/:id/movements", inventoryHandler.Movements)
	products.Post("/:id/stock-min", inventoryHandler.RecommendStockMin)

	invGroup := protected.Group("/inventory")
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/shortage", inventoryHandler.Shortage)

	// Fornecedores (só leitura; nascem da importação de NF-e)
	supplierHandler := NewSupplierHandler(deps.CatalogUC)
	suppliers := protected.Group("/suppliers")
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)

	// Notas fiscais
	invoiceHandler := NewInvoiceHandler(deps.IngestUC, deps.CatalogUC)
	invoices := protected.Group("/invoices")
	invoices.Post("/import", invoiceHandler.Import)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)

	// Fichas técnicas + custos fixos
	recipeHandler := NewRecipeHandler(deps.RecipeUC, deps.PDFGen)
	recipes := protected.Group("/recipes")
	recipes.Post("/", recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeHandler.Update)
	recipes.Put("/:id/ingredients", recipeHandler.SetIngredient)
	recipes.Delete("/:id/ingredients/:productId", recipeHandler.RemoveIngredient)
	recipes.Get("/:id/costing", recipeHandler.Costing)
	recipes.Get("/:id/costing.pdf", recipeHandler.CostingPDF)

	overheads := protected.Group("/overheads")
	overheads.Post("/", recipeHandler.CreateOverhead)
	overheads.Get("/", recipeHandler.ListOverheads)
	overheads.Delete("/:id", recipeHandler.DeleteOverhead)
	overheads.Post("/apportion", recipeHandler.Apportion)

	// Cardápios
	menuHandler := NewMenuHandler(deps.MenuUC)
	menus := protected.Group("/menus")
	menus.Post("/", menuHandler.Create)
	menus.Get("/", menuHandler.List)
	menus.Get("/:id", menuHandler.GetByID)
	menus.Put("/:id", menuHandler.Update)
	menus.Post("/:id/sections", menuHandler.AddSection)
	menus.Get("/:id/price", menuHandler.Price)
	protected.Post("/sections/:sectionId/items", menuHandler.AddItem)
	protected.Put("/menu-items/:id", menuHandler.UpdateItem)

	// Desperdício
	wasteHandler := NewWasteHandler(deps.WasteUC)
	wasteGroup := protected.Group("/waste")
	wasteGroup.Post("/categories", wasteHandler.CreateCategory)
	wasteGroup.Get("/categories", wasteHandler.ListCategories)
	wasteGroup.Post("/events", wasteHandler.RecordEvent)
	wasteGroup.Get("/events", wasteHandler.ListEvents)
	wasteGroup.Post("/goals", wasteHandler.CreateGoal)
	wasteGroup.Get("/goals", wasteHandler.ListGoals)
	wasteGroup.Delete("/goals/:id", wasteHandler.CancelGoal)
	wasteGroup.Get("/goals/:id/progress", wasteHandler.GoalProgress)

	// Feed de vendas
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup := protected.Group("/sales")
	salesGroup.Post("/", salesHandler.Register)
	salesGroup.Get("/", salesHandler.List)

	// Relatórios
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports")
	reports.Get("/profitability", reportHandler.Profitability)
	reports.Get("/profitability.csv", reportHandler.ProfitabilityCSV)
	reports.Get("/top-recipes", reportHandler.TopRecipes)
	reports.Get("/top-recipes.csv", reportHandler.TopRecipesCSV)
	reports.Get("/sections", reportHandler.SalesBySection)
	reports.Get("/trend", reportHandler.MonthlyTrend)
	reports.Get("/shortage.csv", reportHandler.ShortageCSV)
	reports.Get("/demand", reportHandler.DemandForecast)
}
