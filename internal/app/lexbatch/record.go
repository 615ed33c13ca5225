package lexbatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// FailureKind classifies why one record was not persisted.
type FailureKind string

const (
	// FailureMismatch: the generated lemma differs from the input lemma.
	FailureMismatch FailureKind = "mismatch"
	// FailureMalformed: the record could not be read, correlated or validated.
	FailureMalformed FailureKind = "malformed"
	// FailureUpstream: the generation service reported an error for the task.
	FailureUpstream FailureKind = "upstream"
	// FailureStore: the per-lemma write failed and was rolled back.
	FailureStore FailureKind = "store"
)

// RecordFailure describes one record that was skipped. Index is -1 when the
// record could not be correlated with an input pair.
type RecordFailure struct {
	Index    int
	CustomID string
	Lemma    string
	Kind     FailureKind
	Err      error
}

func (f RecordFailure) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", f.Kind, f.CustomID, f.Lemma, f.Err)
}

func (f RecordFailure) Unwrap() error { return f.Err }

// Summary is the outcome of a reconciliation or direct run.
type Summary struct {
	State          domain.BatchJobState
	Total          int
	Persisted      int
	EntriesSkipped int
	Failures       []RecordFailure
}

// recordWriter validates generated content for one input pair and persists it.
type recordWriter struct {
	store lexiconStore
	log   *slog.Logger
}

// write decodes content, checks it against pair and saves it. Any problem is
// added to sum as a RecordFailure; the run continues either way.
func (w *recordWriter) write(ctx context.Context, sum *Summary, index int, customID string, pair domain.LemmaPair, content string) {
	result, err := DecodeLexeme(content)
	if err != nil {
		w.fail(ctx, sum, RecordFailure{Index: index, CustomID: customID, Lemma: pair.Lemma, Kind: FailureMalformed, Err: err})
		return
	}

	if !domain.SameLemma(result.Lemma, pair.Lemma) {
		w.fail(ctx, sum, RecordFailure{
			Index: index, CustomID: customID, Lemma: pair.Lemma, Kind: FailureMismatch,
			Err: fmt.Errorf("generated lemma %q does not match input %q", result.Lemma, pair.Lemma),
		})
		return
	}

	saved, err := w.store.SaveLemma(ctx, ToRecord(pair, result))
	if err != nil {
		w.fail(ctx, sum, RecordFailure{Index: index, CustomID: customID, Lemma: pair.Lemma, Kind: FailureStore, Err: err})
		return
	}

	sum.Persisted++
	if saved.EntriesSkipped {
		sum.EntriesSkipped++
	}
	w.log.InfoContext(ctx, "lemma persisted",
		slog.String("lemma", pair.Lemma),
		slog.String("pos", pair.POS),
		slog.Int("words", saved.WordsAttached),
		slog.Int("entries", saved.EntriesWritten),
	)
}

func (w *recordWriter) fail(ctx context.Context, sum *Summary, f RecordFailure) {
	sum.Failures = append(sum.Failures, f)
	w.log.WarnContext(ctx, "record skipped",
		slog.String("kind", string(f.Kind)),
		slog.Int("index", f.Index),
		slog.String("custom_id", f.CustomID),
		slog.String("lemma", f.Lemma),
		slog.String("error", f.Err.Error()),
	)
}

// classify maps a completionContent error to its failure kind.
func classify(err error) FailureKind {
	if errors.Is(err, errUpstream) {
		return FailureUpstream
	}
	return FailureMalformed
}
