package entity

// Roles válidos para User e Identity.
const (
	RoleAdmin      = "admin"
	RoleAlmoxarife = "almoxarife"
	RoleComprador  = "comprador"
	RoleConsulta   = "consulta"
)

// Identity é o snapshot do usuário atuante, carimbado em cada mutação do
// estoque e em cada relatório. Os motores exigem uma identidade não vazia.
type Identity struct {
	UserID string
	Name   string
	Email  string
	Role   string
	Unit   string
}

// IsZero informa se a identidade está ausente (sem usuário autenticado).
func (i Identity) IsZero() bool {
	return i.UserID == ""
}
