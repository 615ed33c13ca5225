package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lexicon-builder/internal/adapter/postgres"
	pglexicon "github.com/heartmarshall/lexicon-builder/internal/adapter/postgres/lexicon"
	"github.com/heartmarshall/lexicon-builder/internal/adapter/provider/anthropic"
	"github.com/heartmarshall/lexicon-builder/internal/adapter/provider/openai"
	"github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite"
	sqlitelexicon "github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/lexicon-builder/internal/app/lexbatch"
	"github.com/heartmarshall/lexicon-builder/internal/app/prompt"
	"github.com/heartmarshall/lexicon-builder/internal/config"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
	"github.com/heartmarshall/lexicon-builder/internal/service/lexicon"
)

// ErrBatchProvider is returned when a batch mode is requested for a provider
// that has no batch API wired.
var ErrBatchProvider = errors.New("batch modes require the openai provider")

// App holds the components shared by every command mode.
type App struct {
	cfg     *config.Config
	log     *slog.Logger
	lexicon *lexicon.Service
	closers []func()
}

// New creates an App. The lexicon store is opened on first use, so modes
// that never write (submit) leave the local database untouched. The caller
// must call Close.
func New(cfg *config.Config, log *slog.Logger) *App {
	return &App{cfg: cfg, log: log}
}

// Lexicon opens the configured store on first call, makes sure its schema
// exists and returns the store service.
func (a *App) Lexicon(ctx context.Context) (*lexicon.Service, error) {
	if a.lexicon != nil {
		return a.lexicon, nil
	}

	svc, err := a.openStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	if err := svc.EnsureSchema(ctx); err != nil {
		a.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	a.log.Info("lexicon store ready",
		slog.String("version", BuildVersion()),
		slog.String("driver", a.cfg.Database.Driver),
	)

	a.lexicon = svc
	return svc, nil
}

func (a *App) openStore(ctx context.Context) (*lexicon.Service, error) {
	switch strings.ToLower(a.cfg.Database.Driver) {
	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, a.cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return lexicon.NewService(a.log, pglexicon.New(pool), postgres.NewTxManager(pool)), nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, a.cfg.Database.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		return lexicon.NewService(a.log, sqlitelexicon.New(db), sqlite.NewTxManager(db)), nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", a.cfg.Database.Driver)
	}
}

// Close releases the store connections.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	a.lexicon = nil
}

// ReadInput reads the lemma pairs from path, or from the configured input
// path when path is empty.
func (a *App) ReadInput(path string) ([]domain.LemmaPair, error) {
	if path == "" {
		path = a.cfg.Batch.InputPath
	}
	return lexbatch.ReadPairs(path)
}

// Submit builds the task file for pairs and starts a batch job. The lexicon
// store is not opened.
func (a *App) Submit(ctx context.Context, pairs []domain.LemmaPair) (lexbatch.JobHandle, error) {
	client, err := a.batchClient()
	if err != nil {
		return lexbatch.JobHandle{}, err
	}

	sub := lexbatch.NewSubmitter(a.log, client, lexbatch.SubmitterConfig{
		TasksPath:    a.cfg.Batch.TasksPath,
		JobStatePath: a.cfg.Batch.JobStatePath,
		Prompt:       a.promptOptions(),
	})
	return sub.Submit(ctx, pairs)
}

// Process reconciles the saved batch job against pairs. When resultsFile is
// set, the job is not contacted and the file is read instead.
func (a *App) Process(ctx context.Context, pairs []domain.LemmaPair, resultsFile string) (lexbatch.Summary, error) {
	if resultsFile != "" {
		store, err := a.Lexicon(ctx)
		if err != nil {
			return lexbatch.Summary{}, err
		}
		rec := lexbatch.NewReconciler(a.log, nil, store, "")
		return rec.ReconcileFile(ctx, resultsFile, pairs)
	}

	client, err := a.batchClient()
	if err != nil {
		return lexbatch.Summary{}, err
	}

	jobID, err := lexbatch.LoadJobID(a.cfg.Batch.JobStatePath)
	if err != nil {
		return lexbatch.Summary{}, err
	}

	store, err := a.Lexicon(ctx)
	if err != nil {
		return lexbatch.Summary{}, err
	}

	rec := lexbatch.NewReconciler(a.log, client, store, a.cfg.Batch.ResultsPath)
	return rec.Reconcile(ctx, lexbatch.JobHandle{ID: jobID, Tasks: len(pairs)}, pairs)
}

// Direct generates pairs one synchronous request at a time with the
// configured provider.
func (a *App) Direct(ctx context.Context, pairs []domain.LemmaPair) (lexbatch.Summary, error) {
	gen := a.cfg.Generation
	if err := gen.RequireAPIKey(); err != nil {
		return lexbatch.Summary{}, err
	}

	store, err := a.Lexicon(ctx)
	if err != nil {
		return lexbatch.Summary{}, err
	}

	var d *lexbatch.Direct
	switch strings.ToLower(gen.Provider) {
	case config.ProviderAnthropic:
		d = lexbatch.NewDirect(a.log, anthropic.New(a.log, gen), store)
	default:
		d = lexbatch.NewDirect(a.log, openai.New(a.log, gen), store)
	}
	return d.Run(ctx, pairs)
}

func (a *App) batchClient() (*openai.Client, error) {
	gen := a.cfg.Generation
	if !strings.EqualFold(gen.Provider, config.ProviderOpenAI) {
		return nil, fmt.Errorf("%w, got %q", ErrBatchProvider, gen.Provider)
	}
	if err := gen.RequireAPIKey(); err != nil {
		return nil, err
	}
	return openai.New(a.log, gen), nil
}

func (a *App) promptOptions() prompt.Options {
	return prompt.Options{
		Model:     a.cfg.Generation.Model,
		MaxTokens: a.cfg.Generation.MaxTokens,
	}
}
