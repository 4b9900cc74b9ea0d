// seed borra los datos existentes y carga los usuarios demo y productos de ejemplo.
//
// Uso: go run ./cmd/seed
// Usa la misma configuración que la API (DATABASE_URL / DB_*, JWT_SECRET, BCRYPT_COST).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/commodities-api/internal/application/auth"
	"github.com/jhoicas/commodities-api/internal/application/dto"
	"github.com/jhoicas/commodities-api/internal/application/usecase"
	"github.com/jhoicas/commodities-api/internal/domain/entity"
	"github.com/jhoicas/commodities-api/internal/infrastructure/postgres"
	"github.com/jhoicas/commodities-api/pkg/config"
	"github.com/jhoicas/commodities-api/pkg/logger"
)

const demoPassword = "password123"

type demoProduct struct {
	creator int // índice en demoUsers
	in      dto.CreateProductRequest
}

var demoUsers = []auth.RegisterInput{
	{Name: "John Manager", Email: "manager@example.com", Password: demoPassword, Role: string(entity.RoleManager)},
	{Name: "Jane Storekeeper", Email: "keeper@example.com", Password: demoPassword, Role: string(entity.RoleStoreKeeper)},
}

var demoProducts = []demoProduct{
	{0, product("Wheat", entity.CategoryAgriculture, "1000", entity.UnitKg, "0.25", "Warehouse A", "Farmers Co-op")},
	{0, product("Crude Oil", entity.CategoryEnergy, "500", entity.UnitBarrel, "75.50", "Storage Tank 3", "Oil Corp")},
	{1, product("Copper", entity.CategoryMetals, "2000", entity.UnitKg, "8.75", "Metals Storage", "Mining Inc")},
	{0, product("Live Cattle", entity.CategoryLivestock, "150", entity.UnitEach, "1200", "Farm Site B", "Cattle Ranch")},
	{1, product("Coffee Beans", entity.CategoryAgriculture, "800", entity.UnitKg, "4.20", "Warehouse B", "Coffee Importers")},
}

func product(name string, cat entity.Category, qty string, unit entity.Unit, price, location, supplier string) dto.CreateProductRequest {
	return dto.CreateProductRequest{
		Name:     name,
		Category: string(cat),
		Quantity: decimal.RequireFromString(qty),
		Unit:     string(unit),
		Price:    decimal.RequireFromString(price),
		Location: location,
		Supplier: supplier,
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.Migrate(pool, log); err != nil {
		return err
	}

	err = postgres.NewTxRunner(pool).Run(ctx, func(repos postgres.TxRepos) error {
		if _, err := repos.Exec.Exec(ctx, `TRUNCATE products, users`); err != nil {
			return fmt.Errorf("limpiar datos: %w", err)
		}
		log.Info().Msg("datos existentes eliminados")

		creds, err := auth.NewCredentialStore(repos.Users, auth.NewBcryptHasher(cfg.Auth.BcryptCost))
		if err != nil {
			return err
		}
		userIDs := make([]string, 0, len(demoUsers))
		for _, in := range demoUsers {
			u, err := creds.Register(ctx, in)
			if err != nil {
				return fmt.Errorf("crear usuario %s: %w", in.Email, err)
			}
			userIDs = append(userIDs, u.ID)
		}
		log.Info().Int("count", len(userIDs)).Msg("usuarios demo creados")

		products := usecase.NewProductUseCase(repos.Products)
		for _, p := range demoProducts {
			if _, err := products.Create(ctx, userIDs[p.creator], p.in); err != nil {
				return fmt.Errorf("crear producto %s: %w", p.in.Name, err)
			}
		}
		log.Info().Int("count", len(demoProducts)).Msg("productos de ejemplo creados")
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println("Credenciales demo:")
	for _, u := range demoUsers {
		fmt.Printf("  %-13s %s / %s\n", u.Role+":", u.Email, u.Password)
	}
	return nil
}
