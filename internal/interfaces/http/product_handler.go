package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/almoxpro/almox-api/internal/application/dto"
	"github.com/almoxpro/almox-api/internal/application/usecase"
	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// ProductHandler trata as requisições de produtos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Criar produto em um depósito
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "dados do produto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "corpo inválido"})
	}
	p, err := h.uc.Create(usecase.CreateProductInput{
		MaterialCode:    in.MaterialCode,
		SupplierCode:    in.SupplierCode,
		Name:            in.Name,
		Unit:            in.Unit,
		DepositID:       in.DepositID,
		Shelf:           in.Shelf,
		Quantity:        in.Quantity,
		MinimumQuantity: in.MinimumQuantity,
		UnitValue:       in.UnitValue,
	})
	if err != nil {
		return domainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toProductResponse(p))
}

// Search godoc
// @Summary      Buscar produtos
// @Description  Busca por nome (sem acentos, sem diferenciar maiúsculas),
//
//	código de material ou código do fornecedor, opcionalmente
//	restrita a um depósito.
//
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q           query  string  false  "termo de busca"
// @Param        deposit_id  query  string  false  "restringir ao depósito"
// @Param        limit       query  int     false  "máximo de registros (padrão 20)"
// @Param        offset      query  int     false  "deslocamento"
// @Success      200  {array}   dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) Search(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parâmetros inválidos"})
	}
	page.DefaultPage()
	products, err := h.uc.Search(c.Query("q"), c.Query("deposit_id"), page.Limit, page.Offset)
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductResponses(products))
}

// GetByID godoc
// @Summary      Obter produto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID do produto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	p, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductResponse(p))
}

// ListBelowMinimum godoc
// @Summary      Produtos abaixo do estoque mínimo
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        deposit_id  query  string  false  "restringir ao depósito"
// @Success      200  {array}   dto.ProductResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products/below-minimum [get]
func (h *ProductHandler) ListBelowMinimum(c *fiber.Ctx) error {
	products, err := h.uc.ListBelowMinimum(c.Query("deposit_id"))
	if err != nil {
		return domainError(c, err)
	}
	return c.JSON(toProductResponses(products))
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:              p.ID,
		MaterialCode:    p.MaterialCode,
		SupplierCode:    p.SupplierCode,
		Name:            p.Name,
		Unit:            p.Unit,
		DepositID:       p.DepositID,
		Shelf:           p.Shelf,
		Quantity:        p.Quantity,
		MinimumQuantity: p.MinimumQuantity,
		UnitValue:       p.UnitValue,
	}
}

func toProductResponses(products []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}
