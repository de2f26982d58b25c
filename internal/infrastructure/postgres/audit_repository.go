package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

const auditColumns = `id, kind, reference_id, product_id, material_code, product_name, unit,
	quantity, unit_value, total_value, location, cost_center,
	actor_id, actor_name, actor_email, actor_role, actor_unit, created_at`

// AuditRepo grava e lê lançamentos do relatório. Não há UPDATE nem DELETE
// para audit_entries; a tabela só cresce.
type AuditRepo struct {
	q Querier
}

func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Append insere um lançamento.
func (r *AuditRepo) Append(entry *entity.AuditEntry) error {
	query := `
		INSERT INTO audit_entries (id, kind, reference_id, product_id, material_code, product_name, unit,
			quantity, unit_value, total_value, location, cost_center,
			actor_id, actor_name, actor_email, actor_role, actor_unit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(context.Background(), query,
		entry.ID, entry.Kind, entry.ReferenceID, nullIfEmpty(entry.ProductID),
		nullIfEmpty(entry.MaterialCode), entry.ProductName, nullIfEmpty(entry.Unit),
		entry.Quantity, entry.UnitValue, entry.TotalValue,
		nullIfEmpty(entry.Location), nullIfEmpty(entry.CostCenter),
		entry.Actor.UserID, entry.Actor.Name, nullIfEmpty(entry.Actor.Email),
		entry.Actor.Role, nullIfEmpty(entry.Actor.Unit), entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByKind devolve lançamentos do tipo, opcionalmente dentro do intervalo
// [from, to], mais recentes primeiro.
func (r *AuditRepo) ListByKind(kind string, from, to *time.Time, limit, offset int) ([]*entity.AuditEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_entries
		WHERE kind = $1
		  AND ($2::timestamptz IS NULL OR created_at >= $2)
		  AND ($3::timestamptz IS NULL OR created_at <= $3)
		ORDER BY created_at DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, kind, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

// ListByReference devolve todos os lançamentos de uma transferência ou nota,
// em ordem de gravação.
func (r *AuditRepo) ListByReference(referenceID string) ([]*entity.AuditEntry, error) {
	query := `
		SELECT ` + auditColumns + `
		FROM audit_entries
		WHERE reference_id = $1
		ORDER BY created_at ASC`
	rows, err := r.q.Query(context.Background(), query, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries by reference: %w", err)
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *AuditRepo) collect(rows pgx.Rows) ([]*entity.AuditEntry, error) {
	var list []*entity.AuditEntry
	for rows.Next() {
		var e entity.AuditEntry
		var productID, materialCode, unit, location, costCenter, actorEmail, actorUnit *string
		err := rows.Scan(
			&e.ID, &e.Kind, &e.ReferenceID, &productID, &materialCode, &e.ProductName, &unit,
			&e.Quantity, &e.UnitValue, &e.TotalValue, &location, &costCenter,
			&e.Actor.UserID, &e.Actor.Name, &actorEmail, &e.Actor.Role, &actorUnit, &e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if productID != nil {
			e.ProductID = *productID
		}
		if materialCode != nil {
			e.MaterialCode = *materialCode
		}
		if unit != nil {
			e.Unit = *unit
		}
		if location != nil {
			e.Location = *location
		}
		if costCenter != nil {
			e.CostCenter = *costCenter
		}
		if actorEmail != nil {
			e.Actor.Email = *actorEmail
		}
		if actorUnit != nil {
			e.Actor.Unit = *actorUnit
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
