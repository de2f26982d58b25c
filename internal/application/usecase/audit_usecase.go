package usecase

import (
	"time"

	"github.com/almoxpro/almox-api/internal/domain"
	"github.com/almoxpro/almox-api/internal/domain/entity"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// AuditUseCase consulta do relatório append-only.
type AuditUseCase struct {
	auditRepo repository.AuditRepository
}

// NewAuditUseCase constrói o caso de uso.
func NewAuditUseCase(auditRepo repository.AuditRepository) *AuditUseCase {
	return &AuditUseCase{auditRepo: auditRepo}
}

// ListByKind devolve lançamentos de um tipo em um período.
func (uc *AuditUseCase) ListByKind(kind string, from, to *time.Time, limit, offset int) ([]*entity.AuditEntry, error) {
	switch kind {
	case entity.AuditKindSaida, entity.AuditKindEntrada,
		entity.AuditKindEntradaEstoque, entity.AuditKindEntradaConsumo,
		entity.AuditKindResumoNota:
		return uc.auditRepo.ListByKind(kind, from, to, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
}

// ListByReference devolve todos os lançamentos de uma transferência ou nota.
func (uc *AuditUseCase) ListByReference(referenceID string) ([]*entity.AuditEntry, error) {
	return uc.auditRepo.ListByReference(referenceID)
}
