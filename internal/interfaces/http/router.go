package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/auth"
	"github.com/almoxpro/almox-api/internal/application/notafiscal"
	"github.com/almoxpro/almox-api/internal/application/transfer"
	"github.com/almoxpro/almox-api/internal/application/usecase"
	"github.com/almoxpro/almox-api/internal/domain/policy"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	DepositUC      *usecase.DepositUseCase
	CostCenterUC   *usecase.CostCenterUseCase
	AuditUC        *usecase.AuditUseCase
	SubmitTransfer *transfer.SubmitTransferUseCase
	ListTransfers  *transfer.ListTransfersUseCase
	ProcessNota    *notafiscal.ProcessNotaUseCase
	JWTSecret      string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token); a capacidade exigida por
	// operação fica na matriz de policy, não nos handlers.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Usuários (apenas admin)
	protected.Post("/users", RequirePermission(policy.ActionManageUsers), authHandler.CreateUser)

	// Produtos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequirePermission(policy.ActionManageProducts), productHandler.Create)
	products.Get("/", RequirePermission(policy.ActionViewReports), productHandler.Search)
	products.Get("/below-minimum", RequirePermission(policy.ActionViewReports), productHandler.ListBelowMinimum)
	products.Get("/:id", RequirePermission(policy.ActionViewReports), productHandler.GetByID)

	// Depósitos e centros de custo
	depositHandler := NewDepositHandler(deps.DepositUC, deps.CostCenterUC)
	protected.Post("/deposits", RequirePermission(policy.ActionManageProducts), depositHandler.CreateDeposit)
	protected.Get("/deposits", RequirePermission(policy.ActionViewReports), depositHandler.ListDeposits)
	protected.Post("/cost-centers", RequirePermission(policy.ActionManageProducts), depositHandler.CreateCostCenter)
	protected.Get("/cost-centers", RequirePermission(policy.ActionViewReports), depositHandler.ListCostCenters)

	// Transferências entre depósitos
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.SubmitTransfer, deps.ListTransfers)
	transfers.Post("/", RequirePermission(policy.ActionTransfer), transferHandler.Submit)
	transfers.Get("/", RequirePermission(policy.ActionViewReports), transferHandler.List)

	// Notas fiscais
	notas := protected.Group("/notas-fiscais")
	notaHandler := NewNotaFiscalHandler(deps.ProcessNota)
	notas.Post("/", RequirePermission(policy.ActionIngestNota), notaHandler.Ingest)
	notas.Get("/", RequirePermission(policy.ActionViewReports), notaHandler.List)
	notas.Get("/:id", RequirePermission(policy.ActionViewReports), notaHandler.GetByID)
	notas.Post("/:id/processar-estoque", RequirePermission(policy.ActionProcessNota), notaHandler.ProcessToStock)
	notas.Post("/:id/processar-consumo", RequirePermission(policy.ActionProcessNota), notaHandler.ProcessToConsumption)

	// Relatório de movimentações
	audit := protected.Group("/audit")
	auditHandler := NewAuditHandler(deps.AuditUC)
	audit.Get("/", RequirePermission(policy.ActionViewReports), auditHandler.ListByKind)
	audit.Get("/reference/:id", RequirePermission(policy.ActionViewReports), auditHandler.ListByReference)
}
