// Package config loads adaptiquiz settings from defaults, an optional
// config file, ADAPTIQUIZ_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/adaptiquiz/internal/difficulty"
	"github.com/abhisek/adaptiquiz/internal/llm"
	"github.com/abhisek/adaptiquiz/internal/logging"
	"github.com/abhisek/adaptiquiz/internal/store"
)

// EnvPrefix prefixes every environment variable, e.g. ADAPTIQUIZ_DB.
const EnvPrefix = "ADAPTIQUIZ"

// Progress backends.
const (
	BackendSQLite = "sqlite"
	BackendJSON   = "json"
)

// Config is the resolved application configuration.
type Config struct {
	DataDir    string            `mapstructure:"data_dir"`
	DB         string            `mapstructure:"db"`
	Progress   ProgressConfig    `mapstructure:"progress"`
	Difficulty difficulty.Config `mapstructure:"difficulty"`
	Log        logging.Config    `mapstructure:"log"`
	LLM        llm.Config        `mapstructure:"llm"`
	UI         UIConfig          `mapstructure:"ui"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// ProgressConfig selects where the progress record lives.
type ProgressConfig struct {
	Backend string `mapstructure:"backend"`
}

// UIConfig tunes the terminal interface.
type UIConfig struct {
	Splash bool `mapstructure:"splash"`
}

// QuestionsDir is where the per-tier question banks are kept.
func (c *Config) QuestionsDir() string {
	return filepath.Join(c.DataDir, "questions")
}

// ProgressFile is the JSON progress path used by the json backend.
func (c *Config) ProgressFile() string {
	return filepath.Join(c.DataDir, "progress.json")
}

// LogFile is the default log path when the TUI owns the terminal.
func (c *Config) LogFile() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(c.DataDir, "adaptiquiz.log")
}

// LLMConfig returns the configured provider, falling back to discovery from
// the vendors' standard API key variables.
func (c *Config) LLMConfig() (llm.Config, bool) {
	if c.LLM.Provider != "" {
		return c.LLM, true
	}
	found, ok := llm.DiscoverConfig()
	if !ok {
		return llm.Config{}, false
	}
	found.Timeout = c.LLM.Timeout
	found.Retry = c.LLM.Retry
	return found, true
}

func setDefaults(v *viper.Viper, dataDir string) {
	d := difficulty.DefaultConfig()
	l := llm.DefaultConfig()

	v.SetDefault("data_dir", dataDir)
	v.SetDefault("db", "")
	v.SetDefault("progress.backend", BackendSQLite)
	v.SetDefault("difficulty.window_size", d.WindowSize)
	v.SetDefault("difficulty.promotion_threshold", d.PromotionThreshold)
	v.SetDefault("difficulty.demotion_threshold", d.DemotionThreshold)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.file", "")
	v.SetDefault("ui.splash", true)
	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", l.Timeout)
	v.SetDefault("llm.retry.max_attempts", l.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", l.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", l.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", l.Retry.Multiplier)
}

// flagKeys maps command-line flags to config keys.
var flagKeys = map[string]string{
	"db":        "db",
	"data-dir":  "data_dir",
	"log-level": "log.level",
}

// Load resolves the configuration. path names an explicit config file;
// when empty, config.{yaml,toml,json} is looked up in
// $XDG_CONFIG_HOME/adaptiquiz and the working directory. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	dataDir, err := store.DataDir()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v, dataDir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "adaptiquiz"))
		}
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.DB == "" {
		cfg.DB = filepath.Join(cfg.DataDir, "adaptiquiz.db")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values Load cannot coerce.
func (c *Config) Validate() error {
	switch c.Progress.Backend {
	case BackendSQLite, BackendJSON:
	default:
		return fmt.Errorf("progress.backend must be %q or %q, got %q", BackendSQLite, BackendJSON, c.Progress.Backend)
	}
	if err := c.Difficulty.Validate(); err != nil {
		return fmt.Errorf("difficulty: %w", err)
	}
	return nil
}
