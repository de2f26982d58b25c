package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/almoxpro/almox-api/internal/application/notafiscal"
	"github.com/almoxpro/almox-api/internal/application/transfer"
	"github.com/almoxpro/almox-api/internal/domain/repository"
)

// Garante que TxRunner implementa os portos dos dois motores.
var _ transfer.TxRunner = (*TxRunner)(nil)
var _ notafiscal.TxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação para o motor de transferências, executa fn com
// repositórios atados à tx e faz Commit ou Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	transferRepo repository.TransferRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	productRepo := NewProductRepository(tx)
	transferRepo := NewTransferRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(productRepo, transferRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunNota inicia uma transação para o motor de notas fiscais.
func (r *TxRunner) RunNota(ctx context.Context, fn func(
	notaRepo repository.NotaFiscalRepository,
	productRepo repository.ProductRepository,
	auditRepo repository.AuditRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	notaRepo := NewNotaFiscalRepository(tx)
	productRepo := NewProductRepository(tx)
	auditRepo := NewAuditRepository(tx)

	if err := fn(notaRepo, productRepo, auditRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
