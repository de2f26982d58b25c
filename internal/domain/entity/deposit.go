package entity

import "time"

// Deposit representa um depósito (local físico ou lógico de armazenagem).
type Deposit struct {
	ID        string
	Name      string
	UnitName  string // unidade / filial à qual o depósito pertence
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Label devolve o texto "Depósito - Unidade" usado nos relatórios,
// no mesmo formato registrado pelo sistema de origem dos dados.
func (d *Deposit) Label() string {
	if d.UnitName == "" {
		return d.Name
	}
	return d.Name + " - " + d.UnitName
}
