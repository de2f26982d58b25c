package repository

import "github.com/almoxpro/almox-api/internal/domain/entity"

// DepositRepository define o porto de persistência para Deposit.
type DepositRepository interface {
	Create(deposit *entity.Deposit) error
	GetByID(id string) (*entity.Deposit, error)
	List() ([]*entity.Deposit, error)
}

// CostCenterRepository define o porto de persistência para CostCenter.
type CostCenterRepository interface {
	Create(center *entity.CostCenter) error
	GetByID(id string) (*entity.CostCenter, error)
	List() ([]*entity.CostCenter, error)
}
