// Package lexicon groups the primitive lexical store writes into one
// transaction per lemma and exposes the read side used by the CLI.
package lexicon

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

type lexiconRepo interface {
	EnsureSchema(ctx context.Context) error

	UpsertLemma(ctx context.Context, text, pos string) (int64, bool, error)
	AttachWordForms(ctx context.Context, lemmaID int64, forms []string) (int, error)
	HasEntries(ctx context.Context, lemmaID int64) (bool, error)
	RecordEntries(ctx context.Context, lemmaID int64, entries []domain.Entry) error

	GetLemmaTree(ctx context.Context, text string) (*domain.LemmaRecord, error)
	Stats(ctx context.Context) (domain.LexiconStats, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides lexicon persistence on top of either store backend.
type Service struct {
	repo lexiconRepo
	tx   txManager
	log  *slog.Logger
}

// NewService creates a new lexicon service.
func NewService(log *slog.Logger, repo lexiconRepo, tx txManager) *Service {
	return &Service{
		repo: repo,
		tx:   tx,
		log:  log.With("service", "lexicon"),
	}
}

// EnsureSchema creates the lexicon tables if they do not exist yet.
func (s *Service) EnsureSchema(ctx context.Context) error {
	return s.repo.EnsureSchema(ctx)
}
