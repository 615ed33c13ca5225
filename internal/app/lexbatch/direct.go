package lexbatch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// Direct generates and persists lemmas one request at a time.
type Direct struct {
	gen    generator
	writer *recordWriter
	log    *slog.Logger
}

// NewDirect creates a new Direct runner.
func NewDirect(log *slog.Logger, gen generator, store lexiconStore) *Direct {
	log = log.With("component", "direct")
	return &Direct{
		gen:    gen,
		writer: &recordWriter{store: store, log: log},
		log:    log,
	}
}

// Run generates every pair in order. A generation error for one lemma is
// recorded as an upstream failure and the run moves on; only cancellation
// stops it early.
func (d *Direct) Run(ctx context.Context, pairs []domain.LemmaPair) (Summary, error) {
	if len(pairs) == 0 {
		return Summary{}, domain.ErrInputEmpty
	}

	sum := Summary{State: domain.BatchJobCompleted}
	d.log.InfoContext(ctx, "processing lemmas", slog.Int("count", len(pairs)))

	for i, pair := range pairs {
		sum.Total++
		id := TaskID(i)

		content, err := d.gen.Generate(ctx, pair.Lemma, pair.POS)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return sum, ctxErr
			}
			d.writer.fail(ctx, &sum, RecordFailure{
				Index: i, CustomID: id, Lemma: pair.Lemma, Kind: FailureUpstream,
				Err: fmt.Errorf("generate: %w", err),
			})
			continue
		}

		d.writer.write(ctx, &sum, i, id, pair, content)
	}

	return sum, nil
}
