package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// Provider batch statuses.
const (
	statusValidating = "validating"
	statusInProgress = "in_progress"
	statusFinalizing = "finalizing"
	statusCompleted  = "completed"
	statusExpired    = "expired"
	statusCancelling = "cancelling"
	statusCancelled  = "cancelled"
	statusFailed     = "failed"
)

// jobState maps a provider status onto the reconciler's three states. An
// expired or cancelled job that still produced a result file is treated as
// completed so its finished tasks are not lost.
func jobState(status string, outputFileID, errorFileID *string) domain.BatchJobState {
	hasFile := nonEmpty(outputFileID) || nonEmpty(errorFileID)

	switch status {
	case statusValidating, statusInProgress, statusFinalizing, statusCancelling:
		return domain.BatchJobPending
	case statusCompleted:
		return domain.BatchJobCompleted
	case statusExpired, statusCancelled:
		if hasFile {
			return domain.BatchJobCompleted
		}
		return domain.BatchJobFailed
	case statusFailed:
		return domain.BatchJobFailed
	default:
		return domain.BatchJobPending
	}
}

// Results streams the job's result artifact. Succeeded tasks are in the
// output file and failed ones only in the error file; both have the same
// line shape, so the output file is streamed first, then the error file.
func (c *Client) Results(ctx context.Context, jobID string) (io.ReadCloser, error) {
	resp, err := c.api.RetrieveBatch(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("retrieve batch %s: %w", jobID, err)
	}

	if jobState(resp.Status, resp.OutputFileID, resp.ErrorFileID) == domain.BatchJobPending {
		return nil, fmt.Errorf("batch %s is %s: %w", jobID, resp.Status, domain.ErrJobPending)
	}

	var files []string
	for _, id := range []*string{resp.OutputFileID, resp.ErrorFileID} {
		if nonEmpty(id) {
			files = append(files, *id)
		}
	}

	out := &multiReadCloser{}
	readers := make([]io.Reader, 0, 2*len(files))
	for i, fileID := range files {
		content, err := c.api.GetFileContent(ctx, fileID)
		if err != nil {
			_ = out.Close()
			return nil, fmt.Errorf("download results file %s: %w", fileID, err)
		}
		out.closers = append(out.closers, content)
		if i > 0 {
			// A file need not end with a newline.
			readers = append(readers, strings.NewReader("\n"))
		}
		readers = append(readers, content)
	}
	out.Reader = io.MultiReader(readers...)

	c.log.DebugContext(ctx, "streaming batch results",
		slog.String("job_id", jobID),
		slog.Any("files", files),
	)
	return out, nil
}

// multiReadCloser reads the concatenated result files and closes every one.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var errs []error
	for _, c := range m.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.closers = nil
	return errors.Join(errs...)
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}
