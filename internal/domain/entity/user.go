package entity

import "time"

// User representa um usuário do sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // hash bcrypt, nunca em claro no domínio após persistir
	Name         string
	Role         string // admin, almoxarife, comprador, consulta
	Unit         string // unidade / centro de custo do usuário
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity devolve o snapshot de identidade do usuário para atribuição.
func (u *User) Identity() Identity {
	return Identity{
		UserID: u.ID,
		Name:   u.Name,
		Email:  u.Email,
		Role:   u.Role,
		Unit:   u.Unit,
	}
}
