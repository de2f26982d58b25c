package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferItemRequest uma linha da transferência.
type TransferItemRequest struct {
	ProductID            string          `json:"product_id"`
	Quantity             decimal.Decimal `json:"quantity"`
	AvailableAtSelection decimal.Decimal `json:"available_at_selection"`
}

// SubmitTransferRequest corpo do POST /api/transfers.
type SubmitTransferRequest struct {
	SourceDepositID      string                `json:"source_deposit_id"`
	DestinationDepositID string                `json:"destination_deposit_id"`
	Observations         string                `json:"observations"`
	Items                []TransferItemRequest `json:"items"`
}

// TransferItemResponse linha da transferência na resposta.
type TransferItemResponse struct {
	ProductID    string          `json:"product_id"`
	MaterialCode string          `json:"material_code"`
	Name         string          `json:"name"`
	Unit         string          `json:"unit"`
	Quantity     decimal.Decimal `json:"quantity"`
	UnitValue    decimal.Decimal `json:"unit_value"`
	TotalValue   decimal.Decimal `json:"total_value"`
}

// TransferResponse transferência criada ou listada.
type TransferResponse struct {
	ID               string                 `json:"id"`
	SourceLabel      string                 `json:"source"`
	DestinationLabel string                 `json:"destination"`
	Observations     string                 `json:"observations,omitempty"`
	PerformedBy      string                 `json:"performed_by"`
	Items            []TransferItemResponse `json:"items"`
	CreatedAt        time.Time              `json:"created_at"`
}
