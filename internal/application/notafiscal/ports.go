package notafiscal

import (
	"context"

	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD com os
// repositórios necessários ao processamento de notas fiscais. O incremento de
// estoque, a transição de estado e os lançamentos de relatório aplicam juntos
// ou não aplicam.
type TxRunner interface {
	RunNota(ctx context.Context, fn func(
		notaRepo repository.NotaFiscalRepository,
		productRepo repository.ProductRepository,
		auditRepo repository.AuditRepository,
	) error) error
}
