package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/dto"
	"github.com/almoxpro/almox-api/internal/application/transfer"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// TransferHandler trata as requisições de transferências entre depósitos (protegido).
type TransferHandler struct {
	submit *transfer.SubmitTransferUseCase
	list   *transfer.ListTransfersUseCase
}

// NewTransferHandler constrói o handler.
func NewTransferHandler(submit *transfer.SubmitTransferUseCase, list *transfer.ListTransfersUseCase) *TransferHandler {
	return &TransferHandler{submit: submit, list: list}
}

// Submit godoc
// @Summary      Submeter transferência entre depósitos
// @Description  Debita a origem e credita o destino para cada item, em uma
//
//	única transação. Qualquer item inválido desfaz o lote inteiro.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitTransferRequest  true  "depósitos, itens e observações"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Submit(c *fiber.Ctx) error {
	var in dto.SubmitTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	input := transfer.SubmitInputDTO{
		SourceDepositID:      in.SourceDepositID,
		DestinationDepositID: in.DestinationDepositID,
		Observations:         in.Observations,
		Identity:             GetIdentity(c),
	}
	for _, item := range in.Items {
		input.Items = append(input.Items, transfer.ItemInputDTO{
			ProductID:            item.ProductID,
			Quantity:             item.Quantity,
			AvailableAtSelection: item.AvailableAtSelection,
		})
	}
	tr, err := h.submit.Submit(c.Context(), input)
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(tr))
}

// List godoc
// @Summary      Histórico de transferências
// @Tags         transfers
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "máximo de registros (padrão 20)"
// @Param        offset  query  int  false  "deslocamento"
// @Success      200  {array}   dto.TransferResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/transfers [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	transfers, err := h.list.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.TransferResponse, 0, len(transfers))
	for _, tr := range transfers {
		out = append(out, toTransferResponse(tr))
	}
	return c.JSON(out)
}

func toTransferResponse(tr *entity.Transfer) dto.TransferResponse {
	resp := dto.TransferResponse{
		ID:               tr.ID,
		SourceLabel:      tr.SourceLabel,
		DestinationLabel: tr.DestinationLabel,
		Observations:     tr.Observations,
		PerformedBy:      tr.PerformedBy.Name,
		CreatedAt:        tr.CreatedAt,
	}
	for _, item := range tr.Items {
		resp.Items = append(resp.Items, dto.TransferItemResponse{
			ProductID:    item.ProductID,
			MaterialCode: item.MaterialCode,
			Name:         item.Name,
			Unit:         item.Unit,
			Quantity:     item.Quantity,
			UnitValue:    item.UnitValue,
			TotalValue:   item.TotalValue,
		})
	}
	return resp
}
