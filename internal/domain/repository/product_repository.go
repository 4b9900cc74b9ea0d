package repository

import (
	"context"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.ProductWithCreator, error)
	// Update devuelve domain.ErrNotFound si el producto no existe.
	Update(ctx context.Context, product *entity.Product) error
	// List devuelve todos los productos con los datos del creador.
	List(ctx context.Context) ([]*entity.ProductWithCreator, error)
	// Delete devuelve domain.ErrNotFound si el producto no existe.
	Delete(ctx context.Context, id string) error
}
