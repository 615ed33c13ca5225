package lexbatch

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// maxResultLine bounds a single line of the result artifact.
const maxResultLine = 16 << 20

// Reconciler applies the results of a batch job to the lexical store.
type Reconciler struct {
	batches     batchService
	writer      *recordWriter
	resultsPath string
	log         *slog.Logger
}

// NewReconciler creates a new Reconciler. When resultsPath is not empty the
// downloaded result artifact is also copied there.
func NewReconciler(log *slog.Logger, batches batchService, store lexiconStore, resultsPath string) *Reconciler {
	log = log.With("component", "reconciler")
	return &Reconciler{
		batches:     batches,
		writer:      &recordWriter{store: store, log: log},
		resultsPath: resultsPath,
		log:         log,
	}
}

// Reconcile checks the job and, once it has completed, persists every valid
// result. pairs must be the input the job was submitted with: a result is
// matched to its pair by the index in its task id, never by position in the
// artifact.
//
// A pending job returns a Summary with State pending and causes no download
// and no writes. A failed job returns domain.ErrJobFailed.
func (r *Reconciler) Reconcile(ctx context.Context, handle JobHandle, pairs []domain.LemmaPair) (Summary, error) {
	job, err := r.batches.JobStatus(ctx, handle.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("job status %s: %w", handle.ID, err)
	}

	r.log.InfoContext(ctx, "batch job status",
		slog.String("job_id", handle.ID),
		slog.String("status", job.Status),
		slog.Int("completed", job.Completed),
		slog.Int("failed", job.Failed),
		slog.Int("total", job.Total),
	)

	switch job.State {
	case domain.BatchJobPending:
		return Summary{State: domain.BatchJobPending}, nil
	case domain.BatchJobFailed:
		return Summary{State: domain.BatchJobFailed}, fmt.Errorf("job %s is %s: %w", handle.ID, job.Status, domain.ErrJobFailed)
	}

	results, err := r.batches.Results(ctx, handle.ID)
	if err != nil {
		return Summary{}, fmt.Errorf("fetch results of %s: %w", handle.ID, err)
	}
	defer results.Close()

	var src io.Reader = results
	if r.resultsPath != "" {
		f, err := os.Create(r.resultsPath)
		if err != nil {
			return Summary{}, fmt.Errorf("create results copy: %w", err)
		}
		defer f.Close()
		src = io.TeeReader(results, f)
	}

	return r.apply(ctx, src, pairs)
}

// ReconcileFile persists the results of an artifact already on disk.
func (r *Reconciler) ReconcileFile(ctx context.Context, path string, pairs []domain.LemmaPair) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("open results: %w", err)
	}
	defer f.Close()

	return r.apply(ctx, f, pairs)
}

// apply reads the artifact line by line. Per-record problems are collected
// in the Summary; only read errors and cancellation abort the run.
func (r *Reconciler) apply(ctx context.Context, src io.Reader, pairs []domain.LemmaPair) (Summary, error) {
	sum := Summary{State: domain.BatchJobCompleted}

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxResultLine)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		sum.Total++
		r.applyLine(ctx, &sum, raw, pairs)
	}
	if err := scanner.Err(); err != nil {
		return sum, fmt.Errorf("read results: %w", err)
	}

	r.log.InfoContext(ctx, "reconciliation finished",
		slog.Int("total", sum.Total),
		slog.Int("persisted", sum.Persisted),
		slog.Int("entries_skipped", sum.EntriesSkipped),
		slog.Int("failures", len(sum.Failures)),
	)
	return sum, nil
}

func (r *Reconciler) applyLine(ctx context.Context, sum *Summary, raw []byte, pairs []domain.LemmaPair) {
	var line ResultLine
	if err := json.Unmarshal(raw, &line); err != nil {
		r.writer.fail(ctx, sum, RecordFailure{Index: -1, Kind: FailureMalformed, Err: fmt.Errorf("decode result line: %w", err)})
		return
	}

	index, err := ParseTaskID(line.CustomID)
	if err != nil {
		r.writer.fail(ctx, sum, RecordFailure{Index: -1, CustomID: line.CustomID, Kind: FailureMalformed, Err: err})
		return
	}
	if index >= len(pairs) {
		r.writer.fail(ctx, sum, RecordFailure{
			Index: -1, CustomID: line.CustomID, Kind: FailureMalformed,
			Err: fmt.Errorf("task index %d out of range for %d input pairs", index, len(pairs)),
		})
		return
	}
	pair := pairs[index]

	content, err := completionContent(line)
	if err != nil {
		r.writer.fail(ctx, sum, RecordFailure{Index: index, CustomID: line.CustomID, Lemma: pair.Lemma, Kind: classify(err), Err: err})
		return
	}

	r.writer.write(ctx, sum, index, line.CustomID, pair, content)
}
