package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// DepositUseCase cadastro de depósitos.
type DepositUseCase struct {
	depositRepo repository.DepositRepository
}

// NewDepositUseCase constrói o caso de uso.
func NewDepositUseCase(depositRepo repository.DepositRepository) *DepositUseCase {
	return &DepositUseCase{depositRepo: depositRepo}
}

// Create valida e persiste um depósito.
func (uc *DepositUseCase) Create(name, unitName string) (*entity.Deposit, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	dep := &entity.Deposit{
		ID:        uuid.New().String(),
		Name:      name,
		UnitName:  unitName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.depositRepo.Create(dep); err != nil {
		return nil, err
	}
	return dep, nil
}

// List devolve todos os depósitos.
func (uc *DepositUseCase) List() ([]*entity.Deposit, error) {
	return uc.depositRepo.List()
}

// GetByID devolve um depósito por ID.
func (uc *DepositUseCase) GetByID(id string) (*entity.Deposit, error) {
	dep, err := uc.depositRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if dep == nil {
		return nil, domain.ErrNotFound
	}
	return dep, nil
}

// CostCenterUseCase cadastro de centros de custo.
type CostCenterUseCase struct {
	costCenterRepo repository.CostCenterRepository
}

// NewCostCenterUseCase constrói o caso de uso.
func NewCostCenterUseCase(costCenterRepo repository.CostCenterRepository) *CostCenterUseCase {
	return &CostCenterUseCase{costCenterRepo: costCenterRepo}
}

// Create valida e persiste um centro de custo.
func (uc *CostCenterUseCase) Create(name, unitName string) (*entity.CostCenter, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	center := &entity.CostCenter{
		ID:        uuid.New().String(),
		Name:      name,
		UnitName:  unitName,
		CreatedAt: time.Now(),
	}
	if err := uc.costCenterRepo.Create(center); err != nil {
		return nil, err
	}
	return center, nil
}

// List devolve todos os centros de custo.
func (uc *CostCenterUseCase) List() ([]*entity.CostCenter, error) {
	return uc.costCenterRepo.List()
}
