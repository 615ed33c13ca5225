// Package anthropic generates lexeme JSON with the Anthropic Messages API.
// It serves the direct mode only; batch jobs go through the OpenAI adapter.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/heartmarshall/lexicon-builder/internal/app/prompt"
	"github.com/heartmarshall/lexicon-builder/internal/config"
)

// Client generates lexemes with Claude models.
type Client struct {
	api       anthropic.Client
	model     string
	maxTokens int64
	log       *slog.Logger
}

// New creates a Client from the generation config. Retries are disabled:
// a failed lemma is reported and the run moves on.
func New(log *slog.Logger, cfg config.GenerationConfig) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &Client{
		api:       anthropic.NewClient(opts...),
		model:     cfg.Model,
		maxTokens: int64(cfg.MaxTokens),
		log:       log.With("adapter", "anthropic"),
	}
}

// Generate requests the lexeme JSON for one lemma. The model cannot be forced
// into a schema, so the JSON object is cut out of the reply text.
func (c *Client) Generate(ctx context.Context, lemma, pos string) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: prompt.SystemMessage + " Output ONLY the JSON object, no markdown, no explanations."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt.Build(lemma, pos))),
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm api call for %q: %w", lemma, err)
	}

	var text strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response for %q", lemma)
	}

	jsonStr, err := extractJSON(text.String())
	if err != nil {
		return "", fmt.Errorf("extract json from response for %q: %w", lemma, err)
	}
	if !json.Valid([]byte(jsonStr)) {
		return "", fmt.Errorf("response for %q does not contain valid JSON", lemma)
	}

	c.log.DebugContext(ctx, "message received",
		slog.String("lemma", lemma),
		slog.Int64("input_tokens", msg.Usage.InputTokens),
		slog.Int64("output_tokens", msg.Usage.OutputTokens),
	)
	return jsonStr, nil
}

// extractJSON finds the outermost JSON object in a string.
func extractJSON(s string) (string, error) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end <= start {
		return "", fmt.Errorf("no JSON object found in response")
	}
	return s[start : end+1], nil
}
