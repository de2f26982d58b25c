package dto

import "github.com/shopspring/decimal"

// CreateProductRequest corpo do POST /api/products.
type CreateProductRequest struct {
	MaterialCode    string          `json:"material_code"`
	SupplierCode    string          `json:"supplier_code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	DepositID       string          `json:"deposit_id"`
	Shelf           string          `json:"shelf"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitValue       decimal.Decimal `json:"unit_value"`
}

// ProductResponse produto na resposta.
type ProductResponse struct {
	ID              string          `json:"id"`
	MaterialCode    string          `json:"material_code"`
	SupplierCode    string          `json:"supplier_code,omitempty"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	DepositID       string          `json:"deposit_id"`
	Shelf           string          `json:"shelf,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	MinimumQuantity decimal.Decimal `json:"minimum_quantity"`
	UnitValue       decimal.Decimal `json:"unit_value"`
}

// CreateDepositRequest corpo do POST /api/deposits.
type CreateDepositRequest struct {
	Name     string `json:"name"`
	UnitName string `json:"unit_name"`
}

// CreateCostCenterRequest corpo do POST /api/cost-centers.
type CreateCostCenterRequest struct {
	Name     string `json:"name"`
	UnitName string `json:"unit_name"`
}
