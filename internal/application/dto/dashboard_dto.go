package dto

import "github.com/shopspring/decimal"

// DashboardStatsResponse respuesta de GET /api/dashboard/stats.
type DashboardStatsResponse struct {
	TotalProducts      int64              `json:"totalProducts"`
	TotalValue         decimal.Decimal    `json:"totalValue"` // Σ quantity × price
	ProductsByCategory []CategoryStatsDTO `json:"productsByCategory"`
	RecentProducts     []ProductResponse  `json:"recentProducts"` // máx. 5, last_updated DESC
	Summary            StockSummaryDTO    `json:"summary"`
}

// CategoryStatsDTO agregado por categoría. El campo se llama "_id" por compatibilidad con el cliente.
type CategoryStatsDTO struct {
	ID            string          `json:"_id"`
	Count         int64           `json:"count"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
}

// StockSummaryDTO contadores de stock bajo y agotado.
type StockSummaryDTO struct {
	LowStock   int64 `json:"lowStock"`
	OutOfStock int64 `json:"outOfStock"`
}
