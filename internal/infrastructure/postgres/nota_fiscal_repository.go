package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

var _ repository.NotaFiscalRepository = (*NotaFiscalRepo)(nil)

const notaColumns = `id, number, supplier, supplier_cnpj, access_key, total_value, issue_date,
	status, processing_type, processed_by, processed_at, raw_xml, created_at, updated_at`

// NotaFiscalRepo implementação de NotaFiscalRepository (usável com pool ou tx).
type NotaFiscalRepo struct {
	q Querier
}

// NewNotaFiscalRepository constrói o adaptador. Passar pool ou tx (Querier).
func NewNotaFiscalRepository(q Querier) *NotaFiscalRepo {
	return &NotaFiscalRepo{q: q}
}

// Create persiste a nota e seus itens.
func (r *NotaFiscalRepo) Create(nota *entity.NotaFiscal) error {
	query := `
		INSERT INTO notas_fiscais (id, number, supplier, supplier_cnpj, access_key, total_value, issue_date,
			status, raw_xml, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		nota.ID, nota.Number, nota.Supplier, nullIfEmpty(nota.SupplierCNPJ),
		nullIfEmpty(nota.AccessKey), nota.TotalValue, nota.IssueDate,
		nota.Status, nota.RawXML, nota.CreatedAt, nota.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("nota fiscal já ingerida: %w", err)
		}
		return fmt.Errorf("insert nota fiscal: %w", err)
	}

	itemQuery := `
		INSERT INTO nota_fiscal_items (id, nota_fiscal_id, code, description, quantity, unit, unit_value, total_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range nota.Items {
		_, err := r.q.Exec(context.Background(), itemQuery,
			item.ID, nota.ID, item.Code, item.Description,
			item.Quantity, item.Unit, item.UnitValue, item.TotalValue,
		)
		if err != nil {
			return fmt.Errorf("insert nota fiscal item: %w", err)
		}
	}
	return nil
}

// GetByID obtém a nota com itens.
func (r *NotaFiscalRepo) GetByID(id string) (*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE id = $1`
	return r.oneWithItems(r.q.QueryRow(context.Background(), query, id))
}

// GetByIDForUpdate obtém a nota bloqueando a linha (SELECT FOR UPDATE);
// serializa processamentos concorrentes da mesma nota.
func (r *NotaFiscalRepo) GetByIDForUpdate(id string) (*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE id = $1 FOR UPDATE`
	return r.oneWithItems(r.q.QueryRow(context.Background(), query, id))
}

// GetByAccessKey obtém a nota pela chave de acesso (deduplicação da ingestão).
func (r *NotaFiscalRepo) GetByAccessKey(accessKey string) (*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE access_key = $1`
	return r.oneWithItems(r.q.QueryRow(context.Background(), query, accessKey))
}

// UpdateProcessing grava status, tipo, usuário e data de processamento.
func (r *NotaFiscalRepo) UpdateProcessing(nota *entity.NotaFiscal) error {
	query := `
		UPDATE notas_fiscais
		SET status = $2, processing_type = $3, processed_by = $4, processed_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		nota.ID, nota.Status, nullIfEmpty(nota.ProcessingType),
		nullIfEmpty(nota.ProcessedBy), nota.ProcessedAt, nota.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update nota processing: %w", err)
	}
	return nil
}

// UpdateItemBinding grava o produto vinculado a um item.
func (r *NotaFiscalRepo) UpdateItemBinding(itemID, productID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE nota_fiscal_items SET bound_product_id = $2 WHERE id = $1`,
		itemID, productID,
	)
	if err != nil {
		return fmt.Errorf("update item binding: %w", err)
	}
	return nil
}

// CreateConsumption persiste o registro de consumo direto; os centros de
// custo vão como snapshot JSONB.
func (r *NotaFiscalRepo) CreateConsumption(consumo *entity.ConsumoDireto) error {
	centers, err := json.Marshal(consumo.CostCenters)
	if err != nil {
		return fmt.Errorf("marshal cost centers: %w", err)
	}
	query := `
		INSERT INTO consumo_direto (id, nota_fiscal_id, nota_number, supplier, supplier_cnpj,
			cost_centers, responsible, observations, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err = r.q.Exec(context.Background(), query,
		consumo.ID, consumo.NotaFiscalID, consumo.NotaNumber, consumo.Supplier,
		nullIfEmpty(consumo.SupplierCNPJ), centers, consumo.Responsible,
		nullIfEmpty(consumo.Observations), consumo.CreatedBy, consumo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert consumo direto: %w", err)
	}
	return nil
}

// ListByStatus devolve notas no status, mais recentes primeiro, com itens.
func (r *NotaFiscalRepo) ListByStatus(status string, limit, offset int) ([]*entity.NotaFiscal, error) {
	query := `SELECT ` + notaColumns + ` FROM notas_fiscais WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list notas fiscais: %w", err)
	}
	defer rows.Close()

	var list []*entity.NotaFiscal
	for rows.Next() {
		n, err := r.scanNota(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, n := range list {
		items, err := r.itemsFor(n.ID)
		if err != nil {
			return nil, err
		}
		n.Items = items
	}
	return list, nil
}

func (r *NotaFiscalRepo) oneWithItems(row pgx.Row) (*entity.NotaFiscal, error) {
	n, err := r.scanNota(row)
	if err != nil || n == nil {
		return n, err
	}
	items, err := r.itemsFor(n.ID)
	if err != nil {
		return nil, err
	}
	n.Items = items
	return n, nil
}

func (r *NotaFiscalRepo) scanNota(row pgx.Row) (*entity.NotaFiscal, error) {
	var n entity.NotaFiscal
	var cnpj, accessKey, processingType, processedBy *string
	err := row.Scan(
		&n.ID, &n.Number, &n.Supplier, &cnpj, &accessKey, &n.TotalValue, &n.IssueDate,
		&n.Status, &processingType, &processedBy, &n.ProcessedAt, &n.RawXML,
		&n.CreatedAt, &n.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan nota fiscal: %w", err)
	}
	if cnpj != nil {
		n.SupplierCNPJ = *cnpj
	}
	if accessKey != nil {
		n.AccessKey = *accessKey
	}
	if processingType != nil {
		n.ProcessingType = *processingType
	}
	if processedBy != nil {
		n.ProcessedBy = *processedBy
	}
	return &n, nil
}

func (r *NotaFiscalRepo) itemsFor(notaID string) ([]entity.NotaFiscalItem, error) {
	query := `
		SELECT id, nota_fiscal_id, code, description, quantity, unit, unit_value, total_value, bound_product_id
		FROM nota_fiscal_items WHERE nota_fiscal_id = $1`
	rows, err := r.q.Query(context.Background(), query, notaID)
	if err != nil {
		return nil, fmt.Errorf("list nota items: %w", err)
	}
	defer rows.Close()
	var items []entity.NotaFiscalItem
	for rows.Next() {
		var it entity.NotaFiscalItem
		var bound *string
		if err := rows.Scan(&it.ID, &it.NotaFiscalID, &it.Code, &it.Description,
			&it.Quantity, &it.Unit, &it.UnitValue, &it.TotalValue, &bound); err != nil {
			return nil, fmt.Errorf("scan nota item: %w", err)
		}
		if bound != nil {
			it.BoundProductID = *bound
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
