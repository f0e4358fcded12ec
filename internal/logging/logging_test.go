package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "adaptiquiz.log")
	log, flush, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	log.Infow("tier changed", "from", "easy", "to", "medium")
	flush()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"tier changed"`)
	assert.Contains(t, string(raw), `"to":"medium"`)
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.log")
	log, flush, err := New(Config{Level: "warn", File: path})
	require.NoError(t, err)

	log.Infow("hidden")
	log.Warnw("shown")
	flush()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hidden")
	assert.Contains(t, string(raw), "shown")
}

func TestNew_BadConfig(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)
	_, _, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestRedact(t *testing.T) {
	assert.Equal(t, "", Redact(""))
	assert.Equal(t, "[REDACTED]", Redact("abc"))
	assert.Equal(t, "…wxyz", Redact("sk-123456wxyz"))
}
