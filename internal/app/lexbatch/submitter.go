package lexbatch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexicon-builder/internal/app/prompt"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// JobHandle identifies a submitted batch job.
type JobHandle struct {
	ID           string
	SubmissionID uuid.UUID
	Tasks        int
}

// SubmitterConfig holds the artifact paths and model settings of a submission.
type SubmitterConfig struct {
	TasksPath    string
	JobStatePath string
	Prompt       prompt.Options
}

// Submitter turns input pairs into one batch job.
type Submitter struct {
	batches batchService
	cfg     SubmitterConfig
	log     *slog.Logger
}

// NewSubmitter creates a new Submitter.
func NewSubmitter(log *slog.Logger, batches batchService, cfg SubmitterConfig) *Submitter {
	return &Submitter{
		batches: batches,
		cfg:     cfg,
		log:     log.With("component", "submitter"),
	}
}

// Submit builds one task per pair, starts a batch job for them and stores the
// job id at the configured job state path. The local database is not touched.
func (s *Submitter) Submit(ctx context.Context, pairs []domain.LemmaPair) (JobHandle, error) {
	if len(pairs) == 0 {
		return JobHandle{}, domain.ErrInputEmpty
	}

	var buf bytes.Buffer
	if err := WriteTasks(&buf, BuildTasks(pairs, s.cfg.Prompt)); err != nil {
		return JobHandle{}, fmt.Errorf("build tasks: %w", err)
	}

	name := "batch_tasks.jsonl"
	if s.cfg.TasksPath != "" {
		if err := os.WriteFile(s.cfg.TasksPath, buf.Bytes(), 0o644); err != nil {
			return JobHandle{}, fmt.Errorf("write tasks: %w", err)
		}
		name = filepath.Base(s.cfg.TasksPath)
	}

	handle := JobHandle{SubmissionID: uuid.New(), Tasks: len(pairs)}

	jobID, err := s.batches.SubmitBatch(ctx, domain.BatchSubmission{
		Name:  name,
		Tasks: buf.Bytes(),
		Metadata: map[string]string{
			"submission_id": handle.SubmissionID.String(),
			"lemmas":        strconv.Itoa(len(pairs)),
		},
	})
	if err != nil {
		return JobHandle{}, fmt.Errorf("submit batch: %w", err)
	}
	handle.ID = jobID

	if prev, err := LoadJobID(s.cfg.JobStatePath); err == nil && prev != jobID {
		s.log.WarnContext(ctx, "replacing previously submitted job id",
			slog.String("previous_job_id", prev),
			slog.String("job_id", jobID),
		)
	} else if err != nil && !errors.Is(err, domain.ErrNoJob) {
		s.log.WarnContext(ctx, "could not read previous job id", slog.String("error", err.Error()))
	}

	if err := SaveJobID(s.cfg.JobStatePath, jobID); err != nil {
		return handle, fmt.Errorf("job %s started but its id was not saved: %w", jobID, err)
	}

	s.log.InfoContext(ctx, "batch submitted",
		slog.String("job_id", jobID),
		slog.String("submission_id", handle.SubmissionID.String()),
		slog.Int("tasks", handle.Tasks),
	)
	return handle, nil
}
