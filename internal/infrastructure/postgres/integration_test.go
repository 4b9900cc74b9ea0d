//go:build integration

package postgres_test

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/commodities-api/internal/domain"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	repo "github.com/jhoicas/commodities-api/internal/infrastructure/postgres"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

var dsn string

func TestMain(m *testing.M) {
	ctx := context.Background()
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        "postgres:15-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "postgres",
				"POSTGRES_PASSWORD": "password",
				"POSTGRES_DB":       "commodities_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		panic(err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		panic(err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		panic(err)
	}
	dsn = fmt.Sprintf("postgres://postgres:password@%s:%s/commodities_test?sslmode=disable", host, port.Port())

	code := m.Run()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

func openPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool, err := repo.NewPoolFromDSN(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, repo.Migrate(pool, logger.Nop()))
	return pool
}

func newUser(email string, role entity.Role) *entity.User {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.User{
		ID:           uuid.NewString(),
		Name:         "Usuario " + email,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func newProduct(name string, cat entity.Category, qty, price string, updated time.Time, createdBy string) *entity.Product {
	return &entity.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    cat,
		Quantity:    decimal.RequireFromString(qty),
		Unit:        entity.UnitTon,
		Price:       decimal.RequireFromString(price),
		Location:    "Bodega 1",
		CreatedBy:   createdBy,
		CreatedAt:   updated,
		LastUpdated: updated,
	}
}

func TestRepositories(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)

	users := repo.NewUserRepository(pool)
	products := repo.NewProductRepository(pool)
	stats := repo.NewInventoryStatsRepository(pool)

	manager := newUser("manager@example.com", entity.RoleManager)
	require.NoError(t, users.Create(ctx, manager))

	t.Run("user_repository", func(t *testing.T) {
		byEmail, err := users.GetByEmail(ctx, "MANAGER@example.com")
		require.NoError(t, err)
		require.NotNil(t, byEmail)
		assert.Equal(t, manager.ID, byEmail.ID)
		assert.Equal(t, entity.RoleManager, byEmail.Role)

		byID, err := users.GetByID(ctx, manager.ID)
		require.NoError(t, err)
		require.NotNil(t, byID)
		assert.Equal(t, manager.Email, byID.Email)

		missing, err := users.GetByEmail(ctx, "nadie@example.com")
		require.NoError(t, err)
		assert.Nil(t, missing)

		dup := newUser("Manager@Example.com", entity.RoleStoreKeeper)
		assert.ErrorIs(t, users.Create(ctx, dup), domain.ErrDuplicateIdentity)
	})

	t.Run("product_repository", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Microsecond)
		p := newProduct("Wheat", entity.CategoryAgriculture, "120.5", "250", now, manager.ID)
		require.NoError(t, products.Create(ctx, p))

		got, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, p.Quantity.Equal(got.Quantity))
		assert.Equal(t, manager.Name, got.CreatorName)
		assert.Equal(t, manager.Email, got.CreatorEmail)

		p.Quantity = decimal.NewFromInt(7)
		p.LastUpdated = now.Add(time.Minute)
		require.NoError(t, products.Update(ctx, p))
		got, err = products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(7).Equal(got.Quantity))

		list, err := products.List(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, list)

		require.NoError(t, products.Delete(ctx, p.ID))
		assert.ErrorIs(t, products.Delete(ctx, p.ID), domain.ErrNotFound)
		missing, err := products.GetByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Nil(t, missing)

		ghost := newProduct("Ghost", entity.CategoryOther, "1", "1", now, "")
		assert.ErrorIs(t, products.Update(ctx, ghost), domain.ErrNotFound)
	})

	t.Run("stats_repository", func(t *testing.T) {
		_, err := pool.Exec(ctx, `TRUNCATE products`)
		require.NoError(t, err)

		base := time.Now().UTC().Truncate(time.Microsecond)
		require.NoError(t, products.Create(ctx, newProduct("Copper", entity.CategoryMetals, "0", "10", base.Add(-2*time.Hour), manager.ID)))
		require.NoError(t, products.Create(ctx, newProduct("Crude Oil", entity.CategoryEnergy, "5", "20", base.Add(-time.Hour), manager.ID)))
		require.NoError(t, products.Create(ctx, newProduct("Coffee", entity.CategoryAgriculture, "50", "5.8", base, "")))

		n, err := stats.CountProducts(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, n)

		total, err := stats.TotalValue(ctx)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(390).Equal(total), "total=%s", total)

		low, err := stats.CountBelow(ctx, decimal.NewFromInt(10))
		require.NoError(t, err)
		assert.EqualValues(t, 2, low)

		out, err := stats.CountOutOfStock(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, out)

		byCat, err := stats.StatsByCategory(ctx)
		require.NoError(t, err)
		require.Len(t, byCat, 3)
		assert.Equal(t, entity.CategoryAgriculture, byCat[0].Category)
		assert.True(t, decimal.NewFromInt(50).Equal(byCat[0].TotalQuantity))

		recent, err := stats.RecentProducts(ctx, 5)
		require.NoError(t, err)
		require.Len(t, recent, 3)
		assert.Equal(t, "Coffee", recent[0].Name)
		assert.Equal(t, "", recent[0].CreatorName)
		assert.Equal(t, "Crude Oil", recent[1].Name)
		assert.Equal(t, manager.Name, recent[1].CreatorName)
	})
}

func TestStatsRepository_ColeccionVacia(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	_, err := pool.Exec(ctx, `TRUNCATE products`)
	require.NoError(t, err)

	stats := repo.NewInventoryStatsRepository(pool)
	total, err := stats.TotalValue(ctx)
	require.NoError(t, err)
	assert.True(t, total.IsZero())

	byCat, err := stats.StatsByCategory(ctx)
	require.NoError(t, err)
	assert.Empty(t, byCat)

	recent, err := stats.RecentProducts(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, recent)
}

func TestTxRunner_RollbackAnteError(t *testing.T) {
	ctx := context.Background()
	pool := openPool(t)
	runner := repo.NewTxRunner(pool)

	u := newUser("tx@example.com", entity.RoleStoreKeeper)
	errAbort := fmt.Errorf("abortar")
	err := runner.Run(ctx, func(r repo.TxRepos) error {
		require.NoError(t, r.Users.Create(ctx, u))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	got, err := repo.NewUserRepository(pool).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "el usuario no debe persistir tras el rollback")

	require.NoError(t, runner.Run(ctx, func(r repo.TxRepos) error {
		return r.Users.Create(ctx, u)
	}))
	got, err = repo.NewUserRepository(pool).GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}
