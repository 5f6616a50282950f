package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/printing"
	"github.com/taller-pro/backoffice-api/internal/application/sheets"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TransferUC   *transfers.TransferUseCase
	SheetUC      *sheets.SheetUseCase
	AssignmentUC *assignments.RegistryUseCase
	BalanceUC    *usecase.BalanceUseCase
	ItemUC       *usecase.ItemUseCase
	PrintUC      *printing.PrintUseCase
	AppEnv       string
	JWTSecret    string
	JWTIssuer    string
	JWTExpMin    int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público; el endpoint solo responde en development)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AppEnv, deps.JWTSecret, deps.JWTIssuer, deps.JWTExpMin)
	authGroup.Post("/token", authHandler.Token)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Catálogo y saldos (lectura, cualquier rol)
	itemHandler := NewItemHandler(deps.ItemUC)
	protected.Get("/items", itemHandler.List)
	protected.Get("/items/:id", itemHandler.GetByID)

	balanceHandler := NewBalanceHandler(deps.BalanceUC)
	protected.Get("/balances", balanceHandler.List)

	// Traslados (protegido)
	transferHandler := NewTransferHandler(deps.TransferUC, deps.PrintUC)
	transfersGroup := protected.Group("/transfers")
	transfersGroup.Post("/", RequireRole("admin", "bodeguero"), transferHandler.Create)
	transfersGroup.Get("/", transferHandler.List)
	transfersGroup.Get("/:id", transferHandler.GetByID)
	transfersGroup.Put("/:id", RequireRole("admin", "bodeguero"), transferHandler.Update)
	transfersGroup.Delete("/:id", RequireRole("admin", "bodeguero"), transferHandler.Delete)
	transfersGroup.Post("/:id/verify", RequireRole("admin", "bodeguero"), transferHandler.Verify)
	transfersGroup.Get("/:id/verification-sheet", transferHandler.VerificationSheet)

	// Hojas de compra (protegido)
	sheetHandler := NewSheetHandler(deps.SheetUC)
	sheetsGroup := protected.Group("/sheets")
	sheetsGroup.Post("/", RequireRole("admin", "bodeguero"), sheetHandler.Create)
	sheetsGroup.Get("/", sheetHandler.List)
	sheetsGroup.Get("/:id", sheetHandler.GetByID)
	sheetsGroup.Get("/:id/progress", sheetHandler.GetProgress)
	sheetsGroup.Post("/:id/transfers", RequireRole("admin", "bodeguero"), sheetHandler.RecordTransfer)
	sheetsGroup.Post("/:id/assign", RequireRole("admin", "bodeguero"), sheetHandler.Assign)
	sheetsGroup.Put("/:id/status", RequireRole("admin", "bodeguero", "tecnico"), sheetHandler.UpdateStatus)

	// Asignaciones artículo→técnico (protegido)
	assignmentHandler := NewAssignmentHandler(deps.AssignmentUC)
	assignmentsGroup := protected.Group("/assignments")
	assignmentsGroup.Get("/", assignmentHandler.List)
	assignmentsGroup.Post("/", RequireRole("admin", "bodeguero"), assignmentHandler.Assign)
	assignmentsGroup.Delete("/items", RequireRole("admin", "bodeguero"), assignmentHandler.Unassign)
	assignmentsGroup.Put("/comment", RequireRole("admin", "bodeguero", "tecnico"), assignmentHandler.UpdateComment)
}
