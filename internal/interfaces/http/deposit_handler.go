package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/dto"
	"github.com/almoxpro/almox-api/internal/application/usecase"
)

// DepositHandler trata as requisições de depósitos e centros de custo (protegido).
type DepositHandler struct {
	depositUC    *usecase.DepositUseCase
	costCenterUC *usecase.CostCenterUseCase
}

func NewDepositHandler(depositUC *usecase.DepositUseCase, costCenterUC *usecase.CostCenterUseCase) *DepositHandler {
	return &DepositHandler{depositUC: depositUC, costCenterUC: costCenterUC}
}

// CreateDeposit godoc
// @Summary      Criar depósito
// @Tags         deposits
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDepositRequest  true  "nome e unidade"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/deposits [post]
func (h *DepositHandler) CreateDeposit(c *fiber.Ctx) error {
	var in dto.CreateDepositRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	dep, err := h.depositUC.Create(in.Name, in.UnitName)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": dep.ID, "label": dep.Label()})
}

// ListDeposits godoc
// @Summary      Listar depósitos
// @Tags         deposits
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/deposits [get]
func (h *DepositHandler) ListDeposits(c *fiber.Ctx) error {
	deposits, err := h.depositUC.List()
	if err != nil {
		return domainError(c, err)
	}
	out := make([]fiber.Map, 0, len(deposits))
	for _, d := range deposits {
		out = append(out, fiber.Map{"id": d.ID, "name": d.Name, "unit_name": d.UnitName, "label": d.Label()})
	}
	return c.JSON(out)
}

// CreateCostCenter godoc
// @Summary      Criar centro de custo
// @Tags         cost-centers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCostCenterRequest  true  "nome e unidade"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cost-centers [post]
func (h *DepositHandler) CreateCostCenter(c *fiber.Ctx) error {
	var in dto.CreateCostCenterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	cc, err := h.costCenterUC.Create(in.Name, in.UnitName)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": cc.ID, "name": cc.Name})
}

// ListCostCenters godoc
// @Summary      Listar centros de custo
// @Tags         cost-centers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   map[string]string
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/cost-centers [get]
func (h *DepositHandler) ListCostCenters(c *fiber.Ctx) error {
	centers, err := h.costCenterUC.List()
	if err != nil {
		return domainError(c, err)
	}
	out := make([]fiber.Map, 0, len(centers))
	for _, cc := range centers {
		out = append(out, fiber.Map{"id": cc.ID, "name": cc.Name, "unit_name": cc.UnitName})
	}
	return c.JSON(out)
}
