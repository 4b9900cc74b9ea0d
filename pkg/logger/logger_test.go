package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-api/pkg/logger"
)

func TestNew_JSONConNivel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	l.Info().Msg("descartado")
	l.Component("auth").Warn().Str("email", "a@b.c").Msg("login fallido")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1, "info queda por debajo del nivel warn")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "auth", entry["component"])
	assert.Equal(t, "login fallido", entry["message"])
}

func TestNew_NivelInvalidoUsaInfo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "ruido", Output: &buf})
	l.Debug().Msg("no")
	l.Info().Msg("si")
	assert.Contains(t, buf.String(), `"si"`)
	assert.NotContains(t, buf.String(), `"no"`)
}
