package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/almoxpro/almox-api/internal/application/auth"
	"github.com/almoxpro/almox-api/internal/application/notafiscal"
	"github.com/almoxpro/almox-api/internal/application/transfer"
	"github.com/almoxpro/almox-api/internal/application/usecase"
	"github.com/almoxpro/almox-api/internal/infrastructure/postgres"
	httpRouter "github.com/almoxpro/almox-api/internal/interfaces/http"
	"github.com/almoxpro/almox-api/pkg/config"
	"github.com/almoxpro/almox-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão com PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	depositRepo := postgres.NewDepositRepository(pool)
	costCenterRepo := postgres.NewCostCenterRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	notaRepo := postgres.NewNotaFiscalRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, depositRepo)
	depositUC := usecase.NewDepositUseCase(depositRepo)
	costCenterUC := usecase.NewCostCenterUseCase(costCenterRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	submitTransferUC := transfer.NewSubmitTransferUseCase(txRunner, depositRepo)
	listTransfersUC := transfer.NewListTransfersUseCase(transferRepo)
	processNotaUC := notafiscal.NewProcessNotaUseCase(txRunner, notaRepo, costCenterRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AlmoxPro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		DepositUC:      depositUC,
		CostCenterUC:   costCenterUC,
		AuditUC:        auditUC,
		SubmitTransfer: submitTransferUC,
		ListTransfers:  listTransfersUC,
		ProcessNota:    processNotaUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
