package lexbatch

import "encoding/json"

// LexemeResult is the JSON object generated for one lemma.
type LexemeResult struct {
	Lemma     string        `json:"lemma"`
	WordForms []string      `json:"word_forms"`
	Entries   []LexemeEntry `json:"entries"`
}

// LexemeEntry is one part-of-speech group of a LexemeResult.
type LexemeEntry struct {
	PartOfSpeech string   `json:"part_of_speech"`
	Definitions  []string `json:"definitions"`
	Synonyms     []string `json:"synonyms"`
	Antonyms     []string `json:"antonyms"`
}

// ResultLine is one line of a batch result artifact.
type ResultLine struct {
	ID       string          `json:"id"`
	CustomID string          `json:"custom_id"`
	Response *ResultResponse `json:"response"`
	Error    *ResultError    `json:"error"`
}

// ResultResponse is the HTTP response recorded for one task. Body holds a
// chat completion object.
type ResultResponse struct {
	StatusCode int             `json:"status_code"`
	RequestID  string          `json:"request_id"`
	Body       json.RawMessage `json:"body"`
}

// ResultError is set when the service could not run a task at all.
type ResultError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
