package repository

import (
	"context"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos Get* devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	// Create persiste el usuario; devuelve domain.ErrDuplicateIdentity si el email ya existe.
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
