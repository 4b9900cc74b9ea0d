package auth_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
)

// memUserRepo repositorio en memoria con la misma semántica de unicidad que el índice de PostgreSQL.
type memUserRepo struct {
	mu    sync.Mutex
	byID  map[string]*entity.User
	email map[string]string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byID: map[string]*entity.User{}, email: map[string]string{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.email[u.Email]; ok {
		return domain.ErrDuplicateIdentity
	}
	cp := *u
	r.byID[u.ID] = &cp
	r.email[u.Email] = u.ID
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	id, ok := r.email[email]
	r.mu.Unlock()
	if !ok {
		return nil, nil
	}
	return r.GetByID(context.Background(), id)
}

func (r *memUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byID[id]; ok {
		delete(r.email, u.Email)
		delete(r.byID, id)
	}
}

// userRepoMock mock de UserRepository para simular fallos de infraestructura.
type userRepoMock struct {
	mock.Mock
}

func (m *userRepoMock) Create(ctx context.Context, u *entity.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *userRepoMock) GetByID(ctx context.Context, id string) (*entity.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *userRepoMock) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}
