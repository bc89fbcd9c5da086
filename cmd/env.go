package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kasambhusal/sajha-gyan/internal/config"
	"github.com/kasambhusal/sajha-gyan/internal/logger"
	"github.com/kasambhusal/sajha-gyan/internal/progress"
	"github.com/kasambhusal/sajha-gyan/internal/questionbank"
	"github.com/kasambhusal/sajha-gyan/internal/screens/deps"
	"github.com/kasambhusal/sajha-gyan/internal/session"
	"github.com/kasambhusal/sajha-gyan/internal/store"
	"github.com/kasambhusal/sajha-gyan/internal/studyplan"
)

// annotationTUI marks commands that take over the terminal.
const annotationTUI = "sajha/tui"

// env is everything a command needs, built from config and flags.
type env struct {
	cfg *config.Config
	log *logger.Logger
	kv  store.KV
	svc *deps.Services
}

// openEnv loads config, opens the store and catalog, and wires the
// services. Callers must Close the env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.Store.Driver = store.DriverSQLite
		cfg.Store.Path = p
	}
	if b, _ := cmd.Flags().GetString("bank"); b != "" {
		cfg.Bank.Path = b
	}

	if cfg.Log.File == "" && cmd.Annotations[annotationTUI] != "" {
		// The terminal belongs to the UI; keep log lines out of it.
		if dbPath, err := store.DefaultDBPath(); err == nil {
			cfg.Log.File = filepath.Join(filepath.Dir(dbPath), "sajha.log")
		}
	}

	log, err := logger.New(cfg.Env, cfg.Log.File)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	opts, err := cfg.StoreOptions()
	if err != nil {
		return nil, fmt.Errorf("resolve store: %w", err)
	}
	kv, err := store.OpenKV(cmd.Context(), opts)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	bank, err := loadBank(cfg.Bank.Path)
	if err != nil {
		kv.Close()
		return nil, err
	}

	repo := progress.NewRepo(kv, cfg.Namespace, log, progress.WithHistoryLimit(cfg.History.Limit))
	planner := session.NewPlanner(bank, cfg.Session.MaxQuestions, nil)

	return &env{
		cfg: cfg,
		log: log,
		kv:  kv,
		svc: &deps.Services{
			Repo:     repo,
			Bank:     bank,
			Sessions: session.NewService(repo, planner, log),
			Plans:    studyplan.NewEngine(repo, log),
			Log:      log,
		},
	}, nil
}

func loadBank(path string) (*questionbank.Bank, error) {
	if path == "" {
		bank, err := questionbank.Default()
		if err != nil {
			return nil, fmt.Errorf("load built-in catalog: %w", err)
		}
		return bank, nil
	}
	bank, err := questionbank.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", path, err)
	}
	return bank, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() error {
	defer e.log.Sync()
	return e.kv.Close()
}

// withEnv adapts a command body that needs an env into a cobra RunE.
func withEnv(fn func(cmd *cobra.Command, args []string, e *env) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return fn(cmd, args, e)
	}
}

// requireProfile returns the signed-in learner or a hint to log in.
func requireProfile(cmd *cobra.Command, e *env) (*progress.Profile, error) {
	p := e.svc.Repo.Profile(cmd.Context())
	if p == nil {
		return nil, fmt.Errorf("%w: run `sajha login --id ID --name NAME` first", progress.ErrNotLoggedIn)
	}
	return p, nil
}
