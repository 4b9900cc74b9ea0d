package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// productSelect columnas del producto + datos públicos del creador (LEFT JOIN: el creador puede no existir).
const productSelect = `
	SELECT p.id::text, p.name, p.category, p.quantity, p.unit, p.price, p.location, p.supplier,
	       COALESCE(p.created_by::text, ''), p.created_at, p.last_updated,
	       COALESCE(u.name, ''), COALESCE(u.email, '')
	FROM products p
	LEFT JOIN users u ON u.id = p.created_by`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, name, category, quantity, unit, price, location, supplier, created_by, created_at, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Name, string(p.Category), p.Quantity, string(p.Unit), p.Price, p.Location, p.Supplier,
		p.CreatedBy, p.CreatedAt, p.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.ProductWithCreator, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update reemplaza los campos editables y last_updated. ErrNotFound si el producto no existe.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category = $3, quantity = $4, unit = $5, price = $6, location = $7, supplier = $8, last_updated = $9
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.Name, string(p.Category), p.Quantity, string(p.Unit), p.Price, p.Location, p.Supplier, p.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todos los productos en orden de creación.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.ProductWithCreator, error) {
	rows, err := r.q.Query(ctx, productSelect+` ORDER BY p.created_at, p.id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return collectProducts(rows)
}

// Delete elimina un producto por ID. ErrNotFound si no existía.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.ProductWithCreator, error) {
	var (
		p        entity.ProductWithCreator
		category string
		unit     string
	)
	err := row.Scan(
		&p.ID, &p.Name, &category, &p.Quantity, &unit, &p.Price, &p.Location, &p.Supplier,
		&p.CreatedBy, &p.CreatedAt, &p.LastUpdated, &p.CreatorName, &p.CreatorEmail,
	)
	if err != nil {
		return nil, err
	}
	p.Category = entity.Category(category)
	p.Unit = entity.Unit(unit)
	return &p, nil
}

func collectProducts(rows pgx.Rows) ([]*entity.ProductWithCreator, error) {
	defer rows.Close()
	list := make([]*entity.ProductWithCreator, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
