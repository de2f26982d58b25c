package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/almoxpro/almox-api/internal/domain"
)

// Estados do ciclo de vida de uma nota fiscal.
// pendente -> processada_estoque | processada_consumo; ambos terminais.
const (
	NotaStatusPendente          = "pendente"
	NotaStatusProcessadaEstoque = "processada_estoque"
	NotaStatusProcessadaConsumo = "processada_consumo"
)

// Tipos de processamento gravados junto com o estado terminal.
const (
	ProcessamentoEstoque = "estoque"
	ProcessamentoConsumo = "consumo_direto"
)

// NotaFiscal representa uma NF-e de fornecedor ingerida via XML.
// Criada como pendente; transiciona exatamente uma vez para um dos estados
// processados e torna-se imutável (itens e status).
type NotaFiscal struct {
	ID             string
	Number         string
	Supplier       string
	SupplierCNPJ   string
	AccessKey      string // chave de acesso (Id de infNFe, sem o prefixo "NFe")
	TotalValue     decimal.Decimal
	IssueDate      time.Time
	Status         string
	ProcessingType string // estoque | consumo_direto (vazio enquanto pendente)
	ProcessedBy    string // UserID
	ProcessedAt    *time.Time
	RawXML         string
	Items          []NotaFiscalItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NotaFiscalItem é uma linha da nota (um <det> do XML).
// BoundProductID é preenchido na conciliação; obrigatório em todos os itens
// antes de processar para estoque.
type NotaFiscalItem struct {
	ID             string
	NotaFiscalID   string
	Code           string // cProd
	Description    string // xProd
	Quantity       decimal.Decimal
	Unit           string // uCom
	UnitValue      decimal.Decimal
	TotalValue     decimal.Decimal
	BoundProductID string
}

// Transition aplica a transição de estado da nota. Única porta de saída do
// estado pendente: qualquer chamada sobre nota já processada falha com
// ErrAlreadyProcessed e nada é alterado.
func (n *NotaFiscal) Transition(to, processingType, userID string, at time.Time) error {
	if n.Status != NotaStatusPendente {
		return domain.ErrAlreadyProcessed
	}
	if to != NotaStatusProcessadaEstoque && to != NotaStatusProcessadaConsumo {
		return domain.ErrInvalidInput
	}
	n.Status = to
	n.ProcessingType = processingType
	n.ProcessedBy = userID
	n.ProcessedAt = &at
	n.UpdatedAt = at
	return nil
}
