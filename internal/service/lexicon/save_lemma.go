package lexicon

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// SaveLemma persists one lemma with its word forms and entries in a single
// transaction. Any failure rolls back every row written for the lemma.
//
// A lemma that already owns entries keeps them: the new entries are not
// recorded and SaveResult.EntriesSkipped is set. Word forms are still
// attached, duplicates being ignored by the store.
func (s *Service) SaveLemma(ctx context.Context, rec domain.LemmaRecord) (domain.SaveResult, error) {
	if err := validateRecord(rec); err != nil {
		return domain.SaveResult{}, err
	}

	var result domain.SaveResult
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		result = domain.SaveResult{}

		id, created, err := s.repo.UpsertLemma(ctx, rec.Lemma, rec.InputPOS)
		if err != nil {
			return fmt.Errorf("upsert lemma: %w", err)
		}
		result.LemmaID = id
		result.LemmaCreated = created

		attached, err := s.repo.AttachWordForms(ctx, id, rec.WordForms)
		if err != nil {
			return fmt.Errorf("attach word forms: %w", err)
		}
		result.WordsAttached = attached

		if !created {
			has, err := s.repo.HasEntries(ctx, id)
			if err != nil {
				return fmt.Errorf("check entries: %w", err)
			}
			if has {
				result.EntriesSkipped = true
				return nil
			}
		}

		if err := s.repo.RecordEntries(ctx, id, rec.Entries); err != nil {
			return fmt.Errorf("record entries: %w", err)
		}
		result.EntriesWritten = len(rec.Entries)
		return nil
	})
	if err != nil {
		return domain.SaveResult{}, fmt.Errorf("save lemma %q: %w", rec.Lemma, err)
	}

	s.log.DebugContext(ctx, "lemma saved",
		slog.String("lemma", rec.Lemma),
		slog.Int64("lemma_id", result.LemmaID),
		slog.Bool("created", result.LemmaCreated),
		slog.Int("words", result.WordsAttached),
		slog.Int("entries", result.EntriesWritten),
		slog.Bool("entries_skipped", result.EntriesSkipped),
	)

	return result, nil
}

func validateRecord(rec domain.LemmaRecord) error {
	var errs []domain.FieldError

	if rec.Lemma == "" {
		errs = append(errs, domain.FieldError{Field: "lemma", Message: "required"})
	}
	for i, e := range rec.Entries {
		if !e.POS.IsCode() {
			errs = append(errs, domain.FieldError{
				Field:   fmt.Sprintf("entries[%d].part_of_speech", i),
				Message: fmt.Sprintf("code %q is not a single character", e.POS),
			})
		}
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}
