package lexbatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

var (
	errUpstream  = errors.New("upstream error")
	errMalformed = errors.New("malformed record")
)

// completionContent extracts the generated text from a result line.
// Failures of the service are wrapped with errUpstream, unreadable
// lines with errMalformed.
func completionContent(line ResultLine) (string, error) {
	if line.Error != nil {
		return "", fmt.Errorf("%w: %s: %s", errUpstream, line.Error.Code, line.Error.Message)
	}
	if line.Response == nil {
		return "", fmt.Errorf("%w: no response", errMalformed)
	}
	if line.Response.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: status %d", errUpstream, line.Response.StatusCode)
	}

	var body openai.ChatCompletionResponse
	if err := json.Unmarshal(line.Response.Body, &body); err != nil {
		return "", fmt.Errorf("%w: decode completion: %v", errMalformed, err)
	}
	if len(body.Choices) == 0 {
		return "", fmt.Errorf("%w: completion has no choices", errMalformed)
	}
	content := body.Choices[0].Message.Content
	if content == "" {
		return "", fmt.Errorf("%w: completion content is empty", errMalformed)
	}
	return content, nil
}

// DecodeLexeme parses generated JSON and validates it. Missing arrays
// default to empty; a missing lemma or an entry whose part of speech is not
// a single character makes the record malformed.
func DecodeLexeme(content string) (LexemeResult, error) {
	var r LexemeResult
	if err := json.Unmarshal([]byte(content), &r); err != nil {
		return LexemeResult{}, fmt.Errorf("decode lexeme: %w", err)
	}

	if r.WordForms == nil {
		r.WordForms = []string{}
	}
	if r.Entries == nil {
		r.Entries = []LexemeEntry{}
	}
	for i := range r.Entries {
		e := &r.Entries[i]
		if e.Definitions == nil {
			e.Definitions = []string{}
		}
		if e.Synonyms == nil {
			e.Synonyms = []string{}
		}
		if e.Antonyms == nil {
			e.Antonyms = []string{}
		}
	}

	if err := Validate(r); err != nil {
		return LexemeResult{}, err
	}
	return r, nil
}

// Validate checks that a LexemeResult has the fields required for storage.
func Validate(r LexemeResult) error {
	if r.Lemma == "" {
		return fmt.Errorf("lemma is empty")
	}
	for i, e := range r.Entries {
		if e.PartOfSpeech == "" {
			return fmt.Errorf("entry %d of %q has no part_of_speech", i, r.Lemma)
		}
		if pos, _ := domain.ParsePartOfSpeech(e.PartOfSpeech); !pos.IsCode() {
			return fmt.Errorf("entry %d of %q has invalid part_of_speech %q", i, r.Lemma, e.PartOfSpeech)
		}
	}
	return nil
}
