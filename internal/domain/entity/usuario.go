package entity

import "time"

// Roles válidos para Usuario.
const (
	RoleAdmin     = "admin"
	RoleFarmacia  = "farmacia"
	RoleQuirofano = "quirofano"
)

// Estados de cuenta.
const (
	UsuarioActivo     = "active"
	UsuarioInactivo   = "inactive"
	UsuarioSuspendido = "suspended"
)

// Usuario representa un usuario del sistema.
type Usuario struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Nombre       string
	Role         string // admin, farmacia, quirofano
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleValido indica si el rol es uno de los conocidos.
func RoleValido(role string) bool {
	switch role {
	case RoleAdmin, RoleFarmacia, RoleQuirofano:
		return true
	}
	return false
}
