package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/taller-pro/backoffice-api/internal/application/assignments"
	"github.com/taller-pro/backoffice-api/internal/application/printing"
	"github.com/taller-pro/backoffice-api/internal/application/sheets"
	"github.com/taller-pro/backoffice-api/internal/application/transfers"
	"github.com/taller-pro/backoffice-api/internal/application/usecase"
	infrapdf "github.com/taller-pro/backoffice-api/internal/infrastructure/pdf"
	"github.com/taller-pro/backoffice-api/internal/infrastructure/postgres"
	httpRouter "github.com/taller-pro/backoffice-api/internal/interfaces/http"
	"github.com/taller-pro/backoffice-api/pkg/config"
	"github.com/taller-pro/backoffice-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	balanceRepo := postgres.NewBalanceRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	sheetRepo := postgres.NewPurchaseSheetRepository(pool)
	assignmentRepo := postgres.NewAssignmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	transferUC := transfers.NewTransferUseCase(txRunner, itemRepo, transferRepo, balanceRepo)
	sheetUC := sheets.NewSheetUseCase(sheetRepo, transferRepo, transferUC)
	assignmentUC := assignments.NewRegistryUseCase(txRunner, assignmentRepo)
	balanceUC := usecase.NewBalanceUseCase(balanceRepo)
	itemUC := usecase.NewItemUseCase(itemRepo)

	// PDF: hoja de verificación imprimible del traslado
	sheetGenerator := infrapdf.NewMarotoVerificationSheetGenerator()
	printUC := printing.NewPrintUseCase(transferRepo, itemRepo, sheetGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.MetricsMiddleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", httpRouter.MetricsHandler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		TransferUC:   transferUC,
		SheetUC:      sheetUC,
		AssignmentUC: assignmentUC,
		BalanceUC:    balanceUC,
		ItemUC:       itemUC,
		PrintUC:      printUC,
		AppEnv:       cfg.App.Env,
		JWTSecret:    cfg.JWT.Secret,
		JWTIssuer:    cfg.JWT.Issuer,
		JWTExpMin:    cfg.JWT.Expiration,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
