package prompt

import (
	openai "github.com/sashabaranov/go-openai"
)

// Options carries the model settings shared by batch tasks and direct calls.
type Options struct {
	Model     string
	MaxTokens int
}

// ChatRequest returns the chat completion request for one lemma: the fixed
// system message, the built prompt and the strict response schema.
func ChatRequest(opts Options, lemma, pos string) openai.ChatCompletionRequest {
	schema := ResponseSchema()

	return openai.ChatCompletionRequest{
		Model: opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: SystemMessage},
			{Role: openai.ChatMessageRoleUser, Content: Build(lemma, pos)},
		},
		MaxCompletionTokens: opts.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   SchemaName,
				Schema: &schema,
				Strict: true,
			},
		},
	}
}
