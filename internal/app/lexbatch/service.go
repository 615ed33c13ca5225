package lexbatch

import (
	"context"
	"io"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

type batchService interface {
	SubmitBatch(ctx context.Context, sub domain.BatchSubmission) (string, error)
	JobStatus(ctx context.Context, jobID string) (domain.BatchJob, error)
	Results(ctx context.Context, jobID string) (io.ReadCloser, error)
}

type lexiconStore interface {
	SaveLemma(ctx context.Context, rec domain.LemmaRecord) (domain.SaveResult, error)
}

type generator interface {
	Generate(ctx context.Context, lemma, pos string) (string, error)
}
