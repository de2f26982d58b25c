package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/dto"
	"github.com/almoxpro/almox-api/internal/application/notafiscal"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// NotaFiscalHandler trata as requisições de notas fiscais (protegido).
type NotaFiscalHandler struct {
	uc *notafiscal.ProcessNotaUseCase
}

// NewNotaFiscalHandler constrói o handler.
func NewNotaFiscalHandler(uc *notafiscal.ProcessNotaUseCase) *NotaFiscalHandler {
	return &NotaFiscalHandler{uc: uc}
}

// Ingest godoc
// @Summary      Ingerir XML de NF-e
// @Description  Recebe o XML da nota (corpo da requisição ou campo multipart
//
//	"xml"), extrai número, fornecedor, valor e itens, e registra a
//	nota como pendente. Chave de acesso repetida é rejeitada.
//
// @Tags         notas-fiscais
// @Security     Bearer
// @Accept       application/xml
// @Produce      json
// @Success      201  {object}  dto.NotaFiscalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/notas-fiscais [post]
func (h *NotaFiscalHandler) Ingest(c *fiber.Ctx) error {
	xmlData := c.Body()
	if file, err := c.FormFile("xml"); err == nil && file != nil {
		f, err := file.Open()
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo XML ilegível"})
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "arquivo XML ilegível"})
		}
		xmlData = data
	}
	if len(xmlData) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "XML da nota ausente"})
	}
	nota, err := h.uc.Ingest(c.Context(), xmlData, GetIdentity(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toNotaResponse(nota))
}

// ProcessToStock godoc
// @Summary      Processar nota para estoque
// @Description  Exige todos os itens vinculados a produtos; credita as
//
//	quantidades e marca a nota como processada_estoque. A operação é
//	tudo-ou-nada: item sem vínculo rejeita a nota sem alterar estoque.
//
// @Tags         notas-fiscais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da nota"
// @Param        body  body  dto.ProcessToStockRequest  true  "vínculos item→produto"
// @Success      200   {object}  dto.NotaFiscalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notas-fiscais/{id}/processar-estoque [post]
func (h *NotaFiscalHandler) ProcessToStock(c *fiber.Ctx) error {
	var in dto.ProcessToStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	bindings := make([]notafiscal.BindingDTO, 0, len(in.Bindings))
	for _, b := range in.Bindings {
		bindings = append(bindings, notafiscal.BindingDTO{ItemID: b.ItemID, ProductID: b.ProductID})
	}
	nota, err := h.uc.ProcessToStock(c.Context(), c.Params("id"), bindings, GetIdentity(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toNotaResponse(nota))
}

// ProcessToConsumption godoc
// @Summary      Processar nota para consumo direto
// @Description  Registra o consumo com os centros de custo selecionados e
//
//	marca a nota como processada_consumo. Nenhum produto do estoque é
//	alterado.
//
// @Tags         notas-fiscais
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                           true  "ID da nota"
// @Param        body  body  dto.ProcessToConsumptionRequest  true  "centros de custo e observações"
// @Success      200   {object}  dto.NotaFiscalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/notas-fiscais/{id}/processar-consumo [post]
func (h *NotaFiscalHandler) ProcessToConsumption(c *fiber.Ctx) error {
	var in dto.ProcessToConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	nota, err := h.uc.ProcessToConsumption(c.Context(), c.Params("id"), in.CostCenterIDs, in.Observations, GetIdentity(c))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toNotaResponse(nota))
}

// List godoc
// @Summary      Listar notas fiscais por status
// @Tags         notas-fiscais
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pendente (padrão), processada_estoque ou processada_consumo"
// @Param        limit   query  int     false  "máximo de registros (padrão 20)"
// @Param        offset  query  int     false  "deslocamento"
// @Success      200  {array}   dto.NotaFiscalResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/notas-fiscais [get]
func (h *NotaFiscalHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	status := c.Query("status", entity.NotaStatusPendente)
	notas, err := h.uc.ListByStatus(c.Context(), status, page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	out := make([]dto.NotaFiscalResponse, 0, len(notas))
	for _, n := range notas {
		out = append(out, toNotaResponse(n))
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obter nota fiscal
// @Tags         notas-fiscais
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID da nota"
// @Success      200  {object}  dto.NotaFiscalResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/notas-fiscais/{id} [get]
func (h *NotaFiscalHandler) GetByID(c *fiber.Ctx) error {
	nota, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toNotaResponse(nota))
}

func toNotaResponse(n *entity.NotaFiscal) dto.NotaFiscalResponse {
	resp := dto.NotaFiscalResponse{
		ID:             n.ID,
		Number:         n.Number,
		Supplier:       n.Supplier,
		SupplierCNPJ:   n.SupplierCNPJ,
		AccessKey:      n.AccessKey,
		TotalValue:     n.TotalValue,
		IssueDate:      n.IssueDate,
		Status:         n.Status,
		ProcessingType: n.ProcessingType,
		ProcessedAt:    n.ProcessedAt,
	}
	for _, item := range n.Items {
		resp.Items = append(resp.Items, dto.NotaFiscalItemResponse{
			ID:             item.ID,
			Code:           item.Code,
			Description:    item.Description,
			Quantity:       item.Quantity,
			Unit:           item.Unit,
			UnitValue:      item.UnitValue,
			TotalValue:     item.TotalValue,
			BoundProductID: item.BoundProductID,
		})
	}
	return resp
}
