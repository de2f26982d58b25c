package entity

import "time"

// CostCenter representa um centro de custo para notas de consumo direto.
type CostCenter struct {
	ID        string
	Name      string
	UnitName  string
	CreatedAt time.Time
}
