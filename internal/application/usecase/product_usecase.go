package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. La autorización ya ocurrió en el pipeline HTTP.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

// List devuelve todos los productos con su creador.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *ToProductResponse(p))
	}
	return items, nil
}

// GetByID obtiene un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return ToProductResponse(p), nil
}

// Create crea un producto a nombre de createdBy.
func (uc *ProductUseCase) Create(ctx context.Context, createdBy string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Category:    entity.Category(in.Category),
		Quantity:    in.Quantity,
		Unit:        entity.Unit(in.Unit),
		Price:       in.Price,
		Location:    strings.TrimSpace(in.Location),
		Supplier:    strings.TrimSpace(in.Supplier),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		LastUpdated: now,
	}
	if err := validateProduct(product); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, product.ID)
}

// Update aplica los campos presentes y actualiza last_updated.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	p := current.Product
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = entity.Category(*in.Category)
	}
	if in.Quantity != nil {
		p.Quantity = *in.Quantity
	}
	if in.Unit != nil {
		p.Unit = entity.Unit(*in.Unit)
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Supplier != nil {
		p.Supplier = strings.TrimSpace(*in.Supplier)
	}
	if err := validateProduct(&p); err != nil {
		return nil, err
	}
	p.LastUpdated = uc.now()
	if err := uc.repo.Update(ctx, &p); err != nil {
		return nil, err
	}
	current.Product = p
	return ToProductResponse(current), nil
}

// Delete elimina un producto por ID. domain.ErrNotFound si no existe.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

// Límites de las columnas NUMERIC(18, 4) de quantity y price.
const amountScale = 4

var maxAmount = decimal.New(1, 14)

func validateAmount(field string, d decimal.Decimal) error {
	switch {
	case d.IsNegative():
		return fmt.Errorf("%w: %s no puede ser negativo", domain.ErrValidation, field)
	case d.GreaterThanOrEqual(maxAmount):
		return fmt.Errorf("%w: %s debe ser menor que %s", domain.ErrValidation, field, maxAmount)
	case !d.Equal(d.Truncate(amountScale)):
		return fmt.Errorf("%w: %s admite máximo %d decimales", domain.ErrValidation, field, amountScale)
	}
	return nil
}

func validateProduct(p *entity.Product) error {
	switch {
	case p.Name == "":
		return fmt.Errorf("%w: name es requerido", domain.ErrValidation)
	case !p.Category.Valid():
		return fmt.Errorf("%w: categoría inválida", domain.ErrValidation)
	case !p.Unit.Valid():
		return fmt.Errorf("%w: unidad inválida", domain.ErrValidation)
	case p.Location == "":
		return fmt.Errorf("%w: location es requerido", domain.ErrValidation)
	}
	if err := validateAmount("quantity", p.Quantity); err != nil {
		return err
	}
	return validateAmount("price", p.Price)
}

// ToProductResponse convierte un producto (con creador) en su DTO.
func ToProductResponse(p *entity.ProductWithCreator) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	out := &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Category:    string(p.Category),
		Quantity:    p.Quantity,
		Unit:        string(p.Unit),
		Price:       p.Price,
		Location:    p.Location,
		Supplier:    p.Supplier,
		CreatedAt:   p.CreatedAt,
		LastUpdated: p.LastUpdated,
	}
	if p.CreatedBy != "" {
		out.CreatedBy = &dto.CreatorResponse{ID: p.CreatedBy, Name: p.CreatorName, Email: p.CreatorEmail}
	}
	return out
}
