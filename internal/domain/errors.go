package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// La capa HTTP los traduce a status + código estable (ver interfaces/http/errors.go).
var (
	ErrValidation         = errors.New("entrada inválida")
	ErrDuplicateIdentity  = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrUnauthenticated    = errors.New("no autenticado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrNotFound           = errors.New("recurso no encontrado")
)
