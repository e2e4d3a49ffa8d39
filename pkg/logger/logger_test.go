package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" warn "))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel(""), "vacío cae en info")
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"), "desconocido cae en info")
}

func TestNew_JSONConAppYCliente(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Env: "production", Level: "info", App: "fedrita", Out: &buf})

	cl := l.ForClient("cid-1")
	cl.Info().Msg("hola")
	l.Debug().Msg("no debe salir")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line), "una sola línea JSON")
	assert.Equal(t, "fedrita", line["app"])
	assert.Equal(t, "cid-1", line["client_id"])
	assert.Equal(t, "hola", line["message"])
}
