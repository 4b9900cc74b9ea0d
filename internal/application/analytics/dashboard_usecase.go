// Package analytics contiene el motor de agregación del dashboard de inventario.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

const (
	DefaultLowStockThreshold = 10 // quantity < 10 cuenta como stock bajo
	DefaultRecentLimit       = 5  // productos en el widget "recientes"
)

// DashboardConfig umbrales del motor de agregación.
type DashboardConfig struct {
	LowStockThreshold int
	RecentLimit       int
}

// DashboardUseCase calcula las métricas del dashboard sobre la colección completa de productos.
//
// Fuente de datos: InventoryStatsRepository (consultas read-only). No hay caché: cada
// llamada recalcula. Las consultas son independientes y no comparten transacción, así que
// una escritura concurrente puede producir un snapshot no perfectamente atómico.
type DashboardUseCase struct {
	statsRepo repository.InventoryStatsRepository
	cfg       DashboardConfig
}

// NewDashboardUseCase construye el caso de uso. Umbral negativo o límite <= 0 usan los defaults.
func NewDashboardUseCase(statsRepo repository.InventoryStatsRepository, cfg DashboardConfig) *DashboardUseCase {
	if cfg.LowStockThreshold < 0 {
		cfg.LowStockThreshold = DefaultLowStockThreshold
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	return &DashboardUseCase{statsRepo: statsRepo, cfg: cfg}
}

// GetStats construye el DashboardStatsResponse.
//
// Seis consultas en paralelo; el primer error cancela el resto y se devuelve envuelto.
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsResponse, error) {
	var (
		total      int64
		value      decimal.Decimal
		byCategory []repository.CategoryStats
		lowStock   int64
		outOfStock int64
		recent     []*entity.ProductWithCreator
	)
	threshold := decimal.NewFromInt(int64(uc.cfg.LowStockThreshold))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		if total, err = uc.statsRepo.CountProducts(gctx); err != nil {
			return fmt.Errorf("total de productos: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if value, err = uc.statsRepo.TotalValue(gctx); err != nil {
			return fmt.Errorf("valor total: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if byCategory, err = uc.statsRepo.StatsByCategory(gctx); err != nil {
			return fmt.Errorf("por categoría: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if lowStock, err = uc.statsRepo.CountBelow(gctx, threshold); err != nil {
			return fmt.Errorf("stock bajo: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if outOfStock, err = uc.statsRepo.CountOutOfStock(gctx); err != nil {
			return fmt.Errorf("agotados: %w", err)
		}
		return nil
	})
	g.Go(func() (err error) {
		if recent, err = uc.statsRepo.RecentProducts(gctx, uc.cfg.RecentLimit); err != nil {
			return fmt.Errorf("recientes: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	categories := make([]dto.CategoryStatsDTO, 0, len(byCategory))
	for _, c := range byCategory {
		categories = append(categories, dto.CategoryStatsDTO{
			ID:            string(c.Category),
			Count:         c.Count,
			TotalQuantity: c.TotalQuantity,
		})
	}

	if len(recent) > uc.cfg.RecentLimit {
		recent = recent[:uc.cfg.RecentLimit]
	}
	recentDTO := make([]dto.ProductResponse, 0, len(recent))
	for _, p := range recent {
		item := usecase.ToProductResponse(p)
		// el dashboard solo expone el nombre del creador
		if item.CreatedBy != nil {
			item.CreatedBy.Email = ""
		}
		recentDTO = append(recentDTO, *item)
	}

	return &dto.DashboardStatsResponse{
		TotalProducts:      total,
		TotalValue:         value,
		ProductsByCategory: categories,
		RecentProducts:     recentDTO,
		Summary: dto.StockSummaryDTO{
			LowStock:   lowStock,
			OutOfStock: outOfStock,
		},
	}, nil
}
