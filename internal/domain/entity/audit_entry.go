package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de lançamento no relatório (append-only).
const (
	AuditKindSaida          = "saida"                  // egresso de transferência (origem)
	AuditKindEntrada        = "entrada"                // ingresso de transferência (destino)
	AuditKindEntradaEstoque = "entrada_estoque"        // item de nota processada para estoque
	AuditKindEntradaConsumo = "entrada_consumo_direto" // item de nota de consumo direto
	AuditKindResumoNota     = "resumo_nota"            // resumo da nota fiscal processada
)

// AuditEntry é um lançamento do relatório: uma linha por produto afetado por
// operação, nunca atualizada nem apagada. Carrega o snapshot do produto e do
// ator no momento da operação.
type AuditEntry struct {
	ID           string
	Kind         string
	ReferenceID  string // ID da transferência ou da nota fiscal
	ProductID    string
	MaterialCode string
	ProductName  string
	Unit         string
	Quantity     decimal.Decimal
	UnitValue    decimal.Decimal
	TotalValue   decimal.Decimal // Quantity * UnitValue, calculado na gravação
	Location     string          // depósito ("Depósito - Unidade") ou "Consumo Direto"
	CostCenter   string          // centro de custo atribuído (consumo direto)
	Actor        Identity
	CreatedAt    time.Time
}

// ConsumoDireto registra o processamento de uma nota para consumo direto,
// com o snapshot dos centros de custo selecionados.
type ConsumoDireto struct {
	ID           string
	NotaFiscalID string
	NotaNumber   string
	Supplier     string
	SupplierCNPJ string
	CostCenters  []CostCenter // snapshot no momento do processamento
	Responsible  string
	Observations string
	CreatedBy    string // UserID
	CreatedAt    time.Time
}
