package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/adaptiquiz/internal/config"
	"github.com/abhisek/adaptiquiz/internal/fileutil"
	"github.com/abhisek/adaptiquiz/internal/game"
	"github.com/abhisek/adaptiquiz/internal/logging"
	"github.com/abhisek/adaptiquiz/internal/progress"
	"github.com/abhisek/adaptiquiz/internal/questions"
	"github.com/abhisek/adaptiquiz/internal/store"
)

// env holds everything a command needs, built from the resolved config.
type env struct {
	cfg      *config.Config
	log      *zap.SugaredLogger
	store    *store.Store
	progress progress.Store
	closers  []func()
}

// setup loads config, builds the logger and opens the database. When the
// TUI owns the terminal, logs go to the data directory instead of stderr.
func setup(cmd *cobra.Command, tui bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Log
	if tui {
		logCfg.File = cfg.LogFile()
	}
	log, flush, err := logging.New(logCfg)
	if err != nil {
		return nil, err
	}
	e := &env{cfg: cfg, log: log, closers: []func(){flush}}
	if cfg.File != "" {
		log.Debugw("loaded config", "file", cfg.File)
	}

	if err := fileutil.EnsureDir(cfg.DB); err != nil {
		e.Close()
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	st, err := store.Open(cfg.DB)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	e.store = st
	e.closers = append(e.closers, func() {
		if err := st.Close(); err != nil {
			log.Warnw("close store", "error", err)
		}
	})

	switch cfg.Progress.Backend {
	case config.BackendJSON:
		e.progress = progress.NewFileStore(cfg.ProgressFile(), log)
	default:
		e.progress = st.ProgressRepo().WithLogger(log)
	}
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}

func (e *env) events() store.EventRepo {
	return e.store.EventRepo()
}

func (e *env) bank() (*questions.Bank, error) {
	return questions.Load(e.cfg.QuestionsDir(), questions.WithLogger(e.log))
}

func (e *env) game(ctx context.Context, src questions.Source) (*game.Game, error) {
	return game.New(ctx, game.Deps{
		Questions:  src,
		Progress:   e.progress,
		Events:     e.events(),
		Difficulty: e.cfg.Difficulty,
		Log:        e.log,
	})
}
