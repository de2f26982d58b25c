package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transfer registra uma transferência de produtos entre dois depósitos.
// Imutável após criada; o detalhe quantitativo fica nos TransferItem e o
// rastro contábil nos AuditEntry (um par saída/entrada por item).
type Transfer struct {
	ID                   string
	SourceDepositID      string
	DestinationDepositID string
	SourceLabel          string // "Depósito - Unidade" no momento da operação
	DestinationLabel     string
	Observations         string
	PerformedBy          Identity
	Items                []TransferItem
	CreatedAt            time.Time
}

// TransferItem é uma linha da transferência.
// AvailableAtSelection guarda o estoque visto pelo operador ao escolher o
// produto; a validação de commit relê a linha sob bloqueio e não usa este valor.
type TransferItem struct {
	ID                   string
	TransferID           string
	ProductID            string
	MaterialCode         string
	Name                 string
	Unit                 string
	Quantity             decimal.Decimal
	AvailableAtSelection decimal.Decimal
	UnitValue            decimal.Decimal
	TotalValue           decimal.Decimal
}
