package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/dto"
	"github.com/almoxpro/almox-api/internal/application/usecase"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// AuditHandler trata as consultas do relatório de movimentações (protegido).
type AuditHandler struct {
	uc *usecase.AuditUseCase
}

func NewAuditHandler(uc *usecase.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// ListByKind godoc
// @Summary      Relatório por tipo de lançamento
// @Description  Tipos: saida, entrada, entrada_estoque, entrada_consumo_direto,
//
//	resumo_nota. Intervalo opcional em RFC3339 (from/to).
//
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  true   "tipo de lançamento"
// @Param        from    query  string  false  "início do intervalo (RFC3339)"
// @Param        to      query  string  false  "fim do intervalo (RFC3339)"
// @Param        limit   query  int     false  "máximo de registros (padrão 20)"
// @Param        offset  query  int     false  "deslocamento"
// @Success      200  {array}   map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/audit [get]
func (h *AuditHandler) ListByKind(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "from deve ser RFC3339"})
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "to deve ser RFC3339"})
		}
		to = &t
	}

	entries, err := h.uc.ListByKind(c.Query("kind"), from, to, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAuditMaps(entries))
}

// ListByReference godoc
// @Summary      Lançamentos de uma transferência ou nota
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da transferência ou da nota fiscal"
// @Success      200  {array}   map[string]interface{}
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/audit/reference/{id} [get]
func (h *AuditHandler) ListByReference(c *fiber.Ctx) error {
	entries, err := h.uc.ListByReference(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toAuditMaps(entries))
}

func toAuditMaps(entries []*entity.AuditEntry) []fiber.Map {
	out := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, fiber.Map{
			"id":            e.ID,
			"kind":          e.Kind,
			"reference_id":  e.ReferenceID,
			"product_id":    e.ProductID,
			"material_code": e.MaterialCode,
			"product_name":  e.ProductName,
			"unit":          e.Unit,
			"quantity":      e.Quantity,
			"unit_value":    e.UnitValue,
			"total_value":   e.TotalValue,
			"location":      e.Location,
			"cost_center":   e.CostCenter,
			"actor":         e.Actor.Name,
			"created_at":    e.CreatedAt,
		})
	}
	return out
}
