package http_test

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/domain/repository"
)

// memUsers repositorio de usuarios en memoria (email ya normalizado por el CredentialStore).
type memUsers struct {
	mu    sync.Mutex
	byID  map[string]entity.User
	email map[string]string
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]entity.User{}, email: map[string]string{}}
}

func (r *memUsers) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.email[u.Email]; ok {
		return domain.ErrDuplicateIdentity
	}
	r.byID[u.ID] = *u
	r.email[u.Email] = u.ID
	return nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *memUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	id, ok := r.email[email]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *memUsers) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.email, u.Email)
		delete(r.byID, id)
	}
}

// memProducts implementa ProductRepository e InventoryStatsRepository sobre un map.
type memProducts struct {
	mu    sync.Mutex
	items map[string]entity.Product
	users *memUsers
}

var (
	_ repository.ProductRepository        = (*memProducts)(nil)
	_ repository.InventoryStatsRepository = (*memProducts)(nil)
)

func newMemProducts(users *memUsers) *memProducts {
	return &memProducts{items: map[string]entity.Product{}, users: users}
}

func (r *memProducts) withCreator(p entity.Product) *entity.ProductWithCreator {
	out := &entity.ProductWithCreator{Product: p}
	if u, _ := r.users.GetByID(context.Background(), p.CreatedBy); u != nil {
		out.CreatorName, out.CreatorEmail = u.Name, u.Email
	}
	return out
}

func (r *memProducts) snapshot() []entity.Product {
	r.mu.Lock()
	defer r.mu.Unlock()
	list := make([]entity.Product, 0, len(r.items))
	for _, p := range r.items {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list
}

func (r *memProducts) Create(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[p.ID] = *p
	return nil
}

func (r *memProducts) GetByID(_ context.Context, id string) (*entity.ProductWithCreator, error) {
	r.mu.Lock()
	p, ok := r.items[id]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.withCreator(p), nil
}

func (r *memProducts) Update(_ context.Context, p *entity.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	r.items[p.ID] = *p
	return nil
}

func (r *memProducts) List(context.Context) ([]*entity.ProductWithCreator, error) {
	list := r.snapshot()
	out := make([]*entity.ProductWithCreator, 0, len(list))
	for _, p := range list {
		out = append(out, r.withCreator(p))
	}
	return out, nil
}

func (r *memProducts) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memProducts) CountProducts(context.Context) (int64, error) {
	return int64(len(r.snapshot())), nil
}

func (r *memProducts) TotalValue(context.Context) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.snapshot() {
		sum = sum.Add(p.Value())
	}
	return sum, nil
}

func (r *memProducts) StatsByCategory(context.Context) ([]repository.CategoryStats, error) {
	acc := map[entity.Category]*repository.CategoryStats{}
	for _, p := range r.snapshot() {
		s, ok := acc[p.Category]
		if !ok {
			s = &repository.CategoryStats{Category: p.Category}
			acc[p.Category] = s
		}
		s.Count++
		s.TotalQuantity = s.TotalQuantity.Add(p.Quantity)
	}
	out := make([]repository.CategoryStats, 0, len(acc))
	for _, s := range acc {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (r *memProducts) CountBelow(_ context.Context, threshold decimal.Decimal) (int64, error) {
	var n int64
	for _, p := range r.snapshot() {
		if p.Quantity.LessThan(threshold) {
			n++
		}
	}
	return n, nil
}

func (r *memProducts) CountOutOfStock(context.Context) (int64, error) {
	var n int64
	for _, p := range r.snapshot() {
		if p.Quantity.IsZero() {
			n++
		}
	}
	return n, nil
}

func (r *memProducts) RecentProducts(_ context.Context, limit int) ([]*entity.ProductWithCreator, error) {
	list := r.snapshot()
	sort.SliceStable(list, func(i, j int) bool { return list[i].LastUpdated.After(list[j].LastUpdated) })
	if len(list) > limit {
		list = list[:limit]
	}
	out := make([]*entity.ProductWithCreator, 0, len(list))
	for _, p := range list {
		out = append(out, r.withCreator(p))
	}
	return out, nil
}
