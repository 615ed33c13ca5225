package lexicon

import (
	"context"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// Lookup returns the stored tree of a lemma. The text is normalized the same
// way input lemmas are before the search.
func (s *Service) Lookup(ctx context.Context, text string) (*domain.LemmaRecord, error) {
	normalized := domain.NormalizeText(text)
	if normalized == "" {
		return nil, domain.NewValidationError("lemma", "required")
	}
	return s.repo.GetLemmaTree(ctx, normalized)
}

// Stats returns row counts for every lexicon table.
func (s *Service) Stats(ctx context.Context) (domain.LexiconStats, error) {
	return s.repo.Stats(ctx)
}
