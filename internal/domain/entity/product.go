package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa um produto do almoxarifado em um depósito específico.
// O mesmo código de material replicado em outro depósito gera um novo registro
// compartilhando MaterialCode; (MaterialCode, DepositID) é único.
// Quantity só é mutada pelos motores de transferência e de notas fiscais,
// sempre dentro de transação com bloqueio de linha.
type Product struct {
	ID              string
	MaterialCode    string // código do material, estável entre depósitos
	SupplierCode    string // código do fornecedor (busca na tela de transferência)
	Name            string
	Unit            string // unidade de medida (UN, KG, M...)
	DepositID       string
	Shelf           string          // prateleira / endereçamento físico
	Quantity        decimal.Decimal // estoque em mãos; invariante: >= 0
	MinimumQuantity decimal.Decimal // limiar para alerta de baixo estoque
	UnitValue       decimal.Decimal // valor unitário, copiado para os relatórios
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CloneForDeposit devolve uma cópia descritiva do produto para outro depósito,
// com a quantidade informada. Usado quando uma transferência cria o registro
// de destino pela primeira vez.
func (p *Product) CloneForDeposit(depositID string, quantity decimal.Decimal, now time.Time) *Product {
	return &Product{
		MaterialCode:    p.MaterialCode,
		SupplierCode:    p.SupplierCode,
		Name:            p.Name,
		Unit:            p.Unit,
		DepositID:       depositID,
		Shelf:           p.Shelf,
		Quantity:        quantity,
		MinimumQuantity: p.MinimumQuantity,
		UnitValue:       p.UnitValue,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}
