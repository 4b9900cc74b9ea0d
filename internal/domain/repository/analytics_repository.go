package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// CategoryStats agregado crudo por categoría.
type CategoryStats struct {
	Category      entity.Category
	Count         int64
	TotalQuantity decimal.Decimal
}

// InventoryStatsRepository consultas de solo lectura sobre la colección de productos.
// Las implementaciones no modifican datos; cada método es una consulta independiente
// (sin transacción entre ellas).
type InventoryStatsRepository interface {
	// CountProducts total de productos.
	CountProducts(ctx context.Context) (int64, error)
	// TotalValue Σ quantity × price sobre todos los productos (0 si no hay productos).
	TotalValue(ctx context.Context) (decimal.Decimal, error)
	// StatsByCategory conteo y cantidad total por categoría.
	StatsByCategory(ctx context.Context) ([]CategoryStats, error)
	// CountBelow productos con quantity < threshold.
	CountBelow(ctx context.Context, threshold decimal.Decimal) (int64, error)
	// CountOutOfStock productos con quantity = 0.
	CountOutOfStock(ctx context.Context) (int64, error)
	// RecentProducts los limit productos con last_updated más reciente (DESC), con el nombre del creador.
	RecentProducts(ctx context.Context, limit int) ([]*entity.ProductWithCreator, error)
}
