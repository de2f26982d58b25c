package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
	"github.com/almoxpro/almox-api/pkg/textutil"
)

// ProductUseCase CRUD e consultas de produtos do almoxarifado.
// A quantidade em estoque não é editável por aqui: só os motores de
// transferência e de notas fiscais a mutam.
type ProductUseCase struct {
	productRepo repository.ProductRepository
	depositRepo repository.DepositRepository
}

// NewProductUseCase constrói o caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, depositRepo repository.DepositRepository) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, depositRepo: depositRepo}
}

// CreateProductInput dados para criar um produto em um depósito.
type CreateProductInput struct {
	MaterialCode    string
	SupplierCode    string
	Name            string
	Unit            string
	DepositID       string
	Shelf           string
	Quantity        decimal.Decimal
	MinimumQuantity decimal.Decimal
	UnitValue       decimal.Decimal
}

// Create valida e persiste o produto. (MaterialCode, DepositID) é único.
func (uc *ProductUseCase) Create(in CreateProductInput) (*entity.Product, error) {
	if in.MaterialCode == "" || in.Name == "" || in.DepositID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.UnitValue.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	dep, err := uc.depositRepo.GetByID(in.DepositID)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.productRepo.GetByMaterialAndDeposit(in.MaterialCode, in.DepositID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:              uuid.New().String(),
		MaterialCode:    in.MaterialCode,
		SupplierCode:    in.SupplierCode,
		Name:            in.Name,
		Unit:            in.Unit,
		DepositID:       in.DepositID,
		Shelf:           in.Shelf,
		Quantity:        in.Quantity,
		MinimumQuantity: in.MinimumQuantity,
		UnitValue:       in.UnitValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devolve um produto por ID.
func (uc *ProductUseCase) GetByID(id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// Search busca por nome, código de material ou código do fornecedor,
// insensível a acentos (o termo é normalizado antes da consulta).
func (uc *ProductUseCase) Search(term, depositID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.Search(textutil.Normalize(term), depositID, limit, offset)
}

// ListByDeposit lista os produtos de um depósito.
func (uc *ProductUseCase) ListByDeposit(depositID string, limit, offset int) ([]*entity.Product, error) {
	return uc.productRepo.ListByDeposit(depositID, limit, offset)
}

// ListBelowMinimum devolve os produtos com estoque igual ou abaixo do mínimo
// (alerta de baixo estoque). depositID vazio = todos os depósitos.
func (uc *ProductUseCase) ListBelowMinimum(depositID string) ([]*entity.Product, error) {
	return uc.productRepo.ListBelowMinimum(depositID)
}
