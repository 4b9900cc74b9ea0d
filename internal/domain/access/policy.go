// Package access define qué roles pueden invocar cada operación protegida.
//
// Cada operación declara su allow-list en una única tabla (Policy) y todas las
// rutas pasan por Authorize; no hay comparaciones de rol dispersas por handler.
package access

import (
	"fmt"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// Operation identifica una operación protegida de la API.
type Operation string

const (
	OpProductList     Operation = "product.list"
	OpProductGet      Operation = "product.get"
	OpProductCreate   Operation = "product.create"
	OpProductUpdate   Operation = "product.update"
	OpProductDelete   Operation = "product.delete"
	OpDashboardStats  Operation = "dashboard.stats"
	OpDashboardReport Operation = "dashboard.report"
)

// Policy allow-list por operación.
type Policy map[Operation][]entity.Role

// DefaultPolicy devuelve la tabla de permisos de la aplicación.
func DefaultPolicy() Policy {
	everyone := []entity.Role{entity.RoleManager, entity.RoleStoreKeeper}
	managerOnly := []entity.Role{entity.RoleManager}
	return Policy{
		OpProductList:     everyone,
		OpProductGet:      everyone,
		OpProductCreate:   everyone,
		OpProductUpdate:   everyone,
		OpProductDelete:   managerOnly,
		OpDashboardStats:  managerOnly,
		OpDashboardReport: managerOnly,
	}
}

// Allowed devuelve la allow-list de op (nil si la operación no está declarada).
func (p Policy) Allowed(op Operation) []entity.Role {
	return p[op]
}

// Authorize permite la operación sólo si role está en la allow-list de op.
// Operaciones no declaradas y roles desconocidos se rechazan.
func (p Policy) Authorize(role entity.Role, op Operation) error {
	if !role.Valid() {
		return fmt.Errorf("%w: rol %q desconocido", domain.ErrForbidden, role)
	}
	if !RoleIn(role, p[op]) {
		return fmt.Errorf("%w: rol %q no permitido para %s", domain.ErrForbidden, role, op)
	}
	return nil
}

// RoleIn indica si role pertenece a allowed.
func RoleIn(role entity.Role, allowed []entity.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
