package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un commodity en inventario.
// Quantity y Price nunca son negativos; el valor de la línea es Quantity × Price.
type Product struct {
	ID          string
	Name        string
	Category    Category
	Quantity    decimal.Decimal
	Unit        Unit
	Price       decimal.Decimal // precio por unidad
	Location    string
	Supplier    string // opcional
	CreatedBy   string // users.id
	CreatedAt   time.Time
	LastUpdated time.Time
}

// Value devuelve Quantity × Price.
func (p *Product) Value() decimal.Decimal {
	return p.Quantity.Mul(p.Price)
}

// ProductWithCreator producto con los datos públicos de quien lo creó (populate).
type ProductWithCreator struct {
	Product
	CreatorName  string
	CreatorEmail string
}
