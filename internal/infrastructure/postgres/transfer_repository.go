package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementação de TransferRepository (usável com pool ou tx).
// Transferências são imutáveis: só INSERT e SELECT.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste a transferência e seus itens.
func (r *TransferRepo) Create(transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, source_deposit_id, destination_deposit_id, source_label, destination_label,
			observations, performed_by_id, performed_by_name, performed_by_email, performed_by_role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.SourceDepositID, transfer.DestinationDepositID,
		transfer.SourceLabel, transfer.DestinationLabel, nullIfEmpty(transfer.Observations),
		transfer.PerformedBy.UserID, transfer.PerformedBy.Name,
		nullIfEmpty(transfer.PerformedBy.Email), transfer.PerformedBy.Role,
		transfer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	itemQuery := `
		INSERT INTO transfer_items (id, transfer_id, product_id, material_code, name, unit,
			quantity, available_at_selection, unit_value, total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for _, item := range transfer.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, transfer.ID, item.ProductID, item.MaterialCode, item.Name, item.Unit,
			item.Quantity, item.AvailableAtSelection, item.UnitValue, item.TotalValue,
		)
		if err != nil {
			return fmt.Errorf("insert transfer item: %w", err)
		}
	}
	return nil
}

// GetByID obtém uma transferência com seus itens.
func (r *TransferRepo) GetByID(id string) (*entity.Transfer, error) {
	query := `
		SELECT id, source_deposit_id, destination_deposit_id, source_label, destination_label,
			observations, performed_by_id, performed_by_name, performed_by_email, performed_by_role, created_at
		FROM transfers WHERE id = $1`
	t, err := r.scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil || t == nil {
		return t, err
	}
	items, err := r.itemsFor(t.ID)
	if err != nil {
		return nil, err
	}
	t.Items = items
	return t, nil
}

// List devolve transferências mais recentes primeiro, com itens.
func (r *TransferRepo) List(limit, offset int) ([]*entity.Transfer, error) {
	query := `
		SELECT id, source_deposit_id, destination_deposit_id, source_label, destination_label,
			observations, performed_by_id, performed_by_name, performed_by_email, performed_by_role, created_at
		FROM transfers ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, t := range list {
		items, err := r.itemsFor(t.ID)
		if err != nil {
			return nil, err
		}
		t.Items = items
	}
	return list, nil
}

func (r *TransferRepo) scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	var observations, email *string
	err := row.Scan(
		&t.ID, &t.SourceDepositID, &t.DestinationDepositID, &t.SourceLabel, &t.DestinationLabel,
		&observations, &t.PerformedBy.UserID, &t.PerformedBy.Name, &email, &t.PerformedBy.Role,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	if observations != nil {
		t.Observations = *observations
	}
	if email != nil {
		t.PerformedBy.Email = *email
	}
	return &t, nil
}

func (r *TransferRepo) itemsFor(transferID string) ([]entity.TransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, material_code, name, unit,
			quantity, available_at_selection, unit_value, total_value
		FROM transfer_items WHERE transfer_id = $1`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("list transfer items: %w", err)
	}
	defer rows.Close()
	var items []entity.TransferItem
	for rows.Next() {
		var it entity.TransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.MaterialCode, &it.Name, &it.Unit,
			&it.Quantity, &it.AvailableAtSelection, &it.UnitValue, &it.TotalValue); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
