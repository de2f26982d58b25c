package repository

import "github.com/almoxpro/almox-api/internal/domain/entity"

// TransferRepository define o porto de persistência para Transfer.
// Transferências são imutáveis após criadas; não há Update.
type TransferRepository interface {
	Create(transfer *entity.Transfer) error
	GetByID(id string) (*entity.Transfer, error)
	List(limit, offset int) ([]*entity.Transfer, error)
}
