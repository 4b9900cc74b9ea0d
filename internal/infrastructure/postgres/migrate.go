package postgres

import (
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/commodities-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// gooseLogger adapta el logger de la app a goose.Logger.
type gooseLogger struct {
	log *logger.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Fatal().Msgf(format, v...)
}

// Migrate aplica las migraciones embebidas (goose) usando el pool de la aplicación.
func Migrate(pool *pgxpool.Pool, log *logger.Logger) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log.Component("migrations")})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}
