package repository

import (
	"time"

	"github.com/almoxpro/almox-api/internal/domain/entity"
)

// AuditRepository define o porto do relatório append-only.
// Só há inserção e leitura: lançamentos nunca são atualizados nem apagados.
type AuditRepository interface {
	Append(entry *entity.AuditEntry) error
	ListByKind(kind string, from, to *time.Time, limit, offset int) ([]*entity.AuditEntry, error)
	ListByReference(referenceID string) ([]*entity.AuditEntry, error)
}
