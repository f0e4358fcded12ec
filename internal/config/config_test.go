package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	for _, k := range []string{
		"ADAPTIQUIZ_DB", "ADAPTIQUIZ_DATA_DIR", "ADAPTIQUIZ_PROGRESS_BACKEND",
		"ADAPTIQUIZ_LLM_PROVIDER", "ADAPTIQUIZ_DIFFICULTY_WINDOW_SIZE",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Chdir(home)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	dataDir := filepath.Join(home, "data", "adaptiquiz")
	assert.Equal(t, dataDir, cfg.DataDir)
	assert.Equal(t, filepath.Join(dataDir, "adaptiquiz.db"), cfg.DB)
	assert.Equal(t, filepath.Join(dataDir, "questions"), cfg.QuestionsDir())
	assert.Equal(t, BackendSQLite, cfg.Progress.Backend)
	assert.Equal(t, 5, cfg.Difficulty.WindowSize)
	assert.InDelta(t, 0.8, cfg.Difficulty.PromotionThreshold, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Empty(t, cfg.File)

	_, ok := cfg.LLMConfig()
	assert.False(t, ok)
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	home := isolate(t)
	file := filepath.Join(home, "quiz.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
progress:
  backend: json
difficulty:
  window_size: 3
llm:
  provider: mock
  timeout: 5s
`), 0o644))

	t.Setenv("ADAPTIQUIZ_DIFFICULTY_WINDOW_SIZE", "7")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("db", "", "")
	flags.String("data-dir", "", "")
	require.NoError(t, flags.Parse([]string{"--data-dir", filepath.Join(home, "elsewhere")}))

	cfg, err := Load(file, flags)
	require.NoError(t, err)

	assert.Equal(t, file, cfg.File)
	assert.Equal(t, BackendJSON, cfg.Progress.Backend)
	assert.Equal(t, 7, cfg.Difficulty.WindowSize, "env beats file")
	assert.Equal(t, filepath.Join(home, "elsewhere"), cfg.DataDir)
	assert.Equal(t, filepath.Join(home, "elsewhere", "adaptiquiz.db"), cfg.DB, "db follows data dir")
	assert.Equal(t, filepath.Join(home, "elsewhere", "progress.json"), cfg.ProgressFile())

	llmCfg, ok := cfg.LLMConfig()
	require.True(t, ok)
	assert.Equal(t, "mock", llmCfg.Provider)
	assert.Equal(t, 5*time.Second, llmCfg.Timeout)
}

func TestLoad_EnvDB(t *testing.T) {
	home := isolate(t)
	t.Setenv("ADAPTIQUIZ_DB", filepath.Join(home, "x.db"))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "x.db"), cfg.DB)
}

func TestLoad_Invalid(t *testing.T) {
	isolate(t)

	t.Setenv("ADAPTIQUIZ_PROGRESS_BACKEND", "postgres")
	_, err := Load("", nil)
	assert.ErrorContains(t, err, "progress.backend")

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err, "an explicit config file must exist")
}

func TestLLMConfig_Discovery(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "a")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	llmCfg, ok := cfg.LLMConfig()
	require.True(t, ok)
	assert.Equal(t, "anthropic", llmCfg.Provider)
	assert.Equal(t, 30*time.Second, llmCfg.Timeout)
}
