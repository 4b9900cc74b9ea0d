package config_test

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-api/pkg/config"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "s3cr3t"}))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 480, cfg.JWT.Expiration, "8 horas por defecto")
	assert.Equal(t, 5000, cfg.HTTP.Port)
	assert.Equal(t, 10, cfg.Dashboard.LowStockThreshold)
	assert.Equal(t, 5, cfg.Dashboard.RecentLimit)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestFromViper_SinSecretNoArranca(t *testing.T) {
	_, err := config.FromViper(newViper(nil))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")

	_, err = config.FromViper(newViper(map[string]any{"JWT_SECRET": "   "}))
	assert.Error(t, err)
}

func TestFromViper_PortFallbackYOverrides(t *testing.T) {
	cfg, err := config.FromViper(newViper(map[string]any{
		"JWT_SECRET":                    "x",
		"PORT":                          "7000",
		"JWT_EXPIRATION_MINUTES":        "60",
		"DASHBOARD_LOW_STOCK_THRESHOLD": 25,
	}))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.Equal(t, 25, cfg.Dashboard.LowStockThreshold)

	cfg, err = config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", "PORT": "7000", "HTTP_PORT": "8081"}))
	require.NoError(t, err)
	assert.Equal(t, 8081, cfg.HTTP.Port, "HTTP_PORT tiene prioridad sobre PORT")
}

func TestFromViper_ValoresInvalidos(t *testing.T) {
	_, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", "JWT_EXPIRATION_MINUTES": 0}))
	assert.Error(t, err)

	_, err = config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", "BCRYPT_COST": 99}))
	assert.Error(t, err)

	_, err = config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", "HTTP_PORT": 70000}))
	assert.Error(t, err)
}

func TestFromViper_ValoresNoNumericosNoUsanElDefault(t *testing.T) {
	for key, val := range map[string]string{
		"JWT_EXPIRATION_MINUTES":        "8h",
		"BCRYPT_COST":                   "twelve",
		"DASHBOARD_LOW_STOCK_THRESHOLD": "ten",
		"HTTP_PORT":                     "80a",
		"DB_AUTO_MIGRATE":               "quizas",
	} {
		cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", key: val}))
		require.Error(t, err, key)
		assert.Nil(t, cfg, key)
		assert.Contains(t, err.Error(), key)
	}

	cfg, err := config.FromViper(newViper(map[string]any{"JWT_SECRET": "x", "BCRYPT_COST": " 12 ", "DB_AUTO_MIGRATE": "false"}))
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "commodities", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/commodities?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgres://u:p@h:1/d"
	assert.Equal(t, "postgres://u:p@h:1/d", db.ConnectionString())
}
