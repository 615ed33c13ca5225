// Package prompt renders the generation request for one lemma. Every function
// is pure: the same input always yields the same text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// SystemMessage is sent as the system role of every request.
const SystemMessage = "You are a helpful assistant that provides word forms, definitions, synonyms, and antonyms in JSON format."

// SchemaName names the structured output schema in requests.
const SchemaName = "lexeme"

// Build returns the user prompt for a lemma and the caller's part-of-speech
// code. pos is embedded as given, even when it is not a known code.
func Build(lemma, pos string) string {
	return fmt.Sprintf(`Provide the word forms, definitions, synonyms, and antonyms for the lemma "%[1]s" with its primary part of speech code "%[2]s". Use these one-letter codes for parts of speech:
%[3]s
Format the response as a JSON object with the following schema:
{
  "lemma": "string",
  "word_forms": ["string", ...],
  "entries": [
    {
      "part_of_speech": "single-letter-code",
      "definitions": ["string", ...],
      "synonyms": ["string", ...],
      "antonyms": ["string", ...]
    },
    ...
  ]
}
Include all inflected forms of the lemma in "word_forms" (e.g., for "run": "run", "runs", "running", "ran"). Ensure parts of speech are ordered by common usage, prioritizing "%[2]s" if applicable, and within each part of speech, definitions, synonyms, and antonyms are ordered by common usage.`,
		lemma, pos, codeTable())
}

func codeTable() string {
	var b strings.Builder
	for _, p := range domain.PartsOfSpeech {
		fmt.Fprintf(&b, "%s: %s\n", p, p.Label())
	}
	return b.String()
}

// ResponseSchema returns the strict JSON schema of a generated lexeme.
func ResponseSchema() jsonschema.Definition {
	codes := make([]string, len(domain.PartsOfSpeech))
	for i, p := range domain.PartsOfSpeech {
		codes[i] = p.String()
	}

	stringList := jsonschema.Definition{
		Type:  jsonschema.Array,
		Items: &jsonschema.Definition{Type: jsonschema.String},
	}

	entry := jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"part_of_speech": {Type: jsonschema.String, Enum: codes},
			"definitions":    stringList,
			"synonyms":       stringList,
			"antonyms":       stringList,
		},
		Required:             []string{"part_of_speech", "definitions", "synonyms", "antonyms"},
		AdditionalProperties: false,
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"lemma":      {Type: jsonschema.String},
			"word_forms": stringList,
			"entries": {
				Type:  jsonschema.Array,
				Items: &entry,
			},
		},
		Required:             []string{"lemma", "word_forms", "entries"},
		AdditionalProperties: false,
	}
}
