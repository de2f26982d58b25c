package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BindingRequest vínculo de um item da nota a um produto do estoque.
type BindingRequest struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
}

// ProcessToStockRequest corpo do POST /api/notas-fiscais/:id/processar-estoque.
type ProcessToStockRequest struct {
	Bindings []BindingRequest `json:"bindings"`
}

// ProcessToConsumptionRequest corpo do POST /api/notas-fiscais/:id/processar-consumo.
type ProcessToConsumptionRequest struct {
	CostCenterIDs []string `json:"cost_center_ids"`
	Observations  string   `json:"observations"`
}

// NotaFiscalItemResponse linha da nota na resposta.
type NotaFiscalItemResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Description    string          `json:"description"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit"`
	UnitValue      decimal.Decimal `json:"unit_value"`
	TotalValue     decimal.Decimal `json:"total_value"`
	BoundProductID string          `json:"bound_product_id,omitempty"`
}

// NotaFiscalResponse nota fiscal na resposta.
type NotaFiscalResponse struct {
	ID             string                   `json:"id"`
	Number         string                   `json:"number"`
	Supplier       string                   `json:"supplier"`
	SupplierCNPJ   string                   `json:"supplier_cnpj"`
	AccessKey      string                   `json:"access_key"`
	TotalValue     decimal.Decimal          `json:"total_value"`
	IssueDate      time.Time                `json:"issue_date"`
	Status         string                   `json:"status"`
	ProcessingType string                   `json:"processing_type,omitempty"`
	ProcessedAt    *time.Time               `json:"processed_at,omitempty"`
	Items          []NotaFiscalItemResponse `json:"items"`
}
