package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin       = "admin"
	RoleGerente     = "gerente"
	RoleAlmacenista = "almacenista"
	RoleCajero      = "cajero"
)

// User representa un miembro del personal con acceso al back-office.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, gerente, almacenista, cajero
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
