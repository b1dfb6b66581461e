package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("info", &buf)
	require.NoError(t, err)

	log.Info().Str("kind", "Event").Msg("stored")

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"kind":"Event"`)
	assert.Contains(t, out, `"message":"stored"`)
	assert.Contains(t, out, `"time":`)
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer

	log, err := New("warn", &buf)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Debug().Msg("hidden")
	assert.Empty(t, buf.String())

	log.Warn().Msg("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", &bytes.Buffer{})
	assert.Error(t, err)
}
