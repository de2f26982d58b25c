package repository

import (
	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// ProductRepository define o porto de persistência para Product (DIP).
// Os métodos *ForUpdate bloqueiam a linha (SELECT FOR UPDATE) e só fazem
// sentido dentro de uma transação.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByIDForUpdate(id string) (*entity.Product, error)
	GetByMaterialAndDeposit(materialCode, depositID string) (*entity.Product, error)
	GetByMaterialAndDepositForUpdate(materialCode, depositID string) (*entity.Product, error)
	UpdateQuantity(productID string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	Search(term, depositID string, limit, offset int) ([]*entity.Product, error)
	ListByDeposit(depositID string, limit, offset int) ([]*entity.Product, error)
	ListBelowMinimum(depositID string) ([]*entity.Product, error)
	Delete(id string) error
}
