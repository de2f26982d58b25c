package transfer

import (
	"context"

	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade do lote inteiro da
// transferência: ou todos os itens aplicam, ou nenhum.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		transferRepo repository.TransferRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
