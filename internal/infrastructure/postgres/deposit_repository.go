package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

var _ repository.DepositRepository = (*DepositRepo)(nil)

// DepositRepo implementação de DepositRepository (usável com pool ou tx).
type DepositRepo struct {
	q Querier
}

// NewDepositRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewDepositRepository(q Querier) *DepositRepo {
	return &DepositRepo{q: q}
}

// Create persiste um depósito.
func (r *DepositRepo) Create(deposit *entity.Deposit) error {
	query := `
		INSERT INTO deposits (id, name, unit_name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		deposit.ID, deposit.Name, nullIfEmpty(deposit.UnitName), deposit.CreatedAt, deposit.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deposit: %w", err)
	}
	return nil
}

// GetByID obtém um depósito por ID.
func (r *DepositRepo) GetByID(id string) (*entity.Deposit, error) {
	query := `SELECT id, name, unit_name, created_at, updated_at FROM deposits WHERE id = $1`
	var d entity.Deposit
	var unitName *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&d.ID, &d.Name, &unitName, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deposit: %w", err)
	}
	if unitName != nil {
		d.UnitName = *unitName
	}
	return &d, nil
}

// List devolve todos os depósitos.
func (r *DepositRepo) List() ([]*entity.Deposit, error) {
	query := `SELECT id, name, unit_name, created_at, updated_at FROM deposits ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list deposits: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deposit
	for rows.Next() {
		var d entity.Deposit
		var unitName *string
		if err := rows.Scan(&d.ID, &d.Name, &unitName, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan deposit: %w", err)
		}
		if unitName != nil {
			d.UnitName = *unitName
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementação de CostCenterRepository.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// Create persiste um centro de custo.
func (r *CostCenterRepo) Create(center *entity.CostCenter) error {
	query := `INSERT INTO cost_centers (id, name, unit_name, created_at) VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query,
		center.ID, center.Name, nullIfEmpty(center.UnitName), center.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cost center: %w", err)
	}
	return nil
}

// GetByID obtém um centro de custo por ID.
func (r *CostCenterRepo) GetByID(id string) (*entity.CostCenter, error) {
	query := `SELECT id, name, unit_name, created_at FROM cost_centers WHERE id = $1`
	var c entity.CostCenter
	var unitName *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(&c.ID, &c.Name, &unitName, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	if unitName != nil {
		c.UnitName = *unitName
	}
	return &c, nil
}

// List devolve todos os centros de custo.
func (r *CostCenterRepo) List() ([]*entity.CostCenter, error) {
	query := `SELECT id, name, unit_name, created_at FROM cost_centers ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()
	var list []*entity.CostCenter
	for rows.Next() {
		var c entity.CostCenter
		var unitName *string
		if err := rows.Scan(&c.ID, &c.Name, &unitName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		if unitName != nil {
			c.UnitName = *unitName
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
