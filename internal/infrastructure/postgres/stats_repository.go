package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

var _ repository.InventoryStatsRepository = (*InventoryStatsRepo)(nil)

// InventoryStatsRepo consultas agregadas de solo lectura para el dashboard.
type InventoryStatsRepo struct {
	q Querier
}

// NewInventoryStatsRepository construye el repositorio de estadísticas.
func NewInventoryStatsRepository(q Querier) *InventoryStatsRepo {
	return &InventoryStatsRepo{q: q}
}

func (r *InventoryStatsRepo) CountProducts(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

func (r *InventoryStatsRepo) TotalValue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(quantity * price), 0) FROM products`).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("total value: %w", err)
	}
	return total, nil
}

func (r *InventoryStatsRepo) StatsByCategory(ctx context.Context) ([]repository.CategoryStats, error) {
	rows, err := r.q.Query(ctx, `
		SELECT category, COUNT(*), COALESCE(SUM(quantity), 0)
		FROM products
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("stats by category: %w", err)
	}
	defer rows.Close()

	out := make([]repository.CategoryStats, 0)
	for rows.Next() {
		var (
			s        repository.CategoryStats
			category string
		)
		if err := rows.Scan(&category, &s.Count, &s.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan category stats: %w", err)
		}
		s.Category = entity.Category(category)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *InventoryStatsRepo) CountBelow(ctx context.Context, threshold decimal.Decimal) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity < $1`, threshold).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

func (r *InventoryStatsRepo) CountOutOfStock(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity = 0`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count out of stock: %w", err)
	}
	return n, nil
}

// RecentProducts últimos productos modificados, con el nombre del creador.
func (r *InventoryStatsRepo) RecentProducts(ctx context.Context, limit int) ([]*entity.ProductWithCreator, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.last_updated DESC, p.id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent products: %w", err)
	}
	return collectProducts(rows)
}
