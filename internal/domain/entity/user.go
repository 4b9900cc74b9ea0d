package entity

import "time"

// Role nivel de privilegio de un usuario. Conjunto cerrado: ver Roles().
type Role string

// Roles válidos para User.
const (
	RoleManager     Role = "manager"
	RoleStoreKeeper Role = "store_keeper"
)

// DefaultRole rol asignado cuando el registro no especifica uno (el de menor privilegio).
const DefaultRole = RoleStoreKeeper

// Roles devuelve todos los roles conocidos.
func Roles() []Role {
	return []Role{RoleManager, RoleStoreKeeper}
}

// Valid indica si r pertenece al conjunto de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleStoreKeeper:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// ParseRole convierte un string en Role. Cadena vacía → DefaultRole.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return DefaultRole, true
	}
	r := Role(s)
	return r, r.Valid()
}

// User representa una identidad registrada.
type User struct {
	ID           string
	Name         string
	Email        string // normalizado (trim + case fold); clave de login
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
