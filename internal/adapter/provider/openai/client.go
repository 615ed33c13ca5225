// Package openai adapts the OpenAI API to the lexicon builder: the Batch API
// for asynchronous jobs and chat completions for direct generation.
package openai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/lexicon-builder/internal/app/prompt"
	"github.com/heartmarshall/lexicon-builder/internal/config"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// Client talks to the OpenAI API.
type Client struct {
	api              *goopenai.Client
	prompt           prompt.Options
	completionWindow string
	timeout          time.Duration
	log              *slog.Logger
}

// New creates a Client from the generation config. BaseURL overrides the
// default endpoint (proxies, compatible servers, tests).
func New(log *slog.Logger, cfg config.GenerationConfig) *Client {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	}

	return &Client{
		api:              goopenai.NewClientWithConfig(apiCfg),
		prompt:           prompt.Options{Model: cfg.Model, MaxTokens: cfg.MaxTokens},
		completionWindow: cfg.CompletionWindow,
		timeout:          cfg.RequestTimeout,
		log:              log.With("adapter", "openai"),
	}
}

// ---------------------------------------------------------------------------
// Synchronous generation
// ---------------------------------------------------------------------------

// Generate requests the lexeme JSON for one lemma and returns the raw
// generated content.
func (c *Client) Generate(ctx context.Context, lemma, pos string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.api.CreateChatCompletion(ctx, prompt.ChatRequest(c.prompt, lemma, pos))
	if err != nil {
		return "", fmt.Errorf("chat completion for %q: %w", lemma, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion for %q: no choices", lemma)
	}

	c.log.DebugContext(ctx, "completion received",
		slog.String("lemma", lemma),
		slog.Int("prompt_tokens", resp.Usage.PromptTokens),
		slog.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return resp.Choices[0].Message.Content, nil
}

// ---------------------------------------------------------------------------
// Batch API
// ---------------------------------------------------------------------------

// SubmitBatch uploads the task artifact and starts a batch job on it.
func (c *Client) SubmitBatch(ctx context.Context, sub domain.BatchSubmission) (string, error) {
	file, err := c.api.CreateFileBytes(ctx, goopenai.FileBytesRequest{
		Name:    sub.Name,
		Bytes:   sub.Tasks,
		Purpose: goopenai.PurposeBatch,
	})
	if err != nil {
		return "", fmt.Errorf("upload batch input: %w", err)
	}

	metadata := make(map[string]any, len(sub.Metadata))
	for k, v := range sub.Metadata {
		metadata[k] = v
	}

	batch, err := c.api.CreateBatch(ctx, goopenai.CreateBatchRequest{
		InputFileID:      file.ID,
		Endpoint:         goopenai.BatchEndpointChatCompletions,
		CompletionWindow: c.completionWindow,
		Metadata:         metadata,
	})
	if err != nil {
		return "", fmt.Errorf("create batch for file %s: %w", file.ID, err)
	}

	c.log.InfoContext(ctx, "batch created",
		slog.String("job_id", batch.ID),
		slog.String("input_file_id", file.ID),
		slog.String("status", batch.Status),
	)
	return batch.ID, nil
}

// JobStatus returns a snapshot of the batch job.
func (c *Client) JobStatus(ctx context.Context, jobID string) (domain.BatchJob, error) {
	resp, err := c.api.RetrieveBatch(ctx, jobID)
	if err != nil {
		return domain.BatchJob{}, fmt.Errorf("retrieve batch %s: %w", jobID, err)
	}

	return domain.BatchJob{
		ID:        resp.ID,
		State:     jobState(resp.Status, resp.OutputFileID, resp.ErrorFileID),
		Status:    resp.Status,
		Total:     resp.RequestCounts.Total,
		Completed: resp.RequestCounts.Completed,
		Failed:    resp.RequestCounts.Failed,
	}, nil
}
