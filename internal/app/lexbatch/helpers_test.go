package lexbatch_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite"
	sqlitelexicon "github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite/lexicon"
	"github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite/testhelper"
	"github.com/heartmarshall/lexicon-builder/internal/app/lexbatch"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
	"github.com/heartmarshall/lexicon-builder/internal/service/lexicon"
)

// fakeBatchService is an in-memory batch job boundary.
type fakeBatchService struct {
	mu          sync.Mutex
	submissions []domain.BatchSubmission
	job         domain.BatchJob
	results     string
	statusErr   error
	fetches     int
}

func (f *fakeBatchService) SubmitBatch(_ context.Context, sub domain.BatchSubmission) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submissions = append(f.submissions, sub)
	return fmt.Sprintf("batch_%d", len(f.submissions)), nil
}

func (f *fakeBatchService) JobStatus(_ context.Context, jobID string) (domain.BatchJob, error) {
	if f.statusErr != nil {
		return domain.BatchJob{}, f.statusErr
	}
	job := f.job
	job.ID = jobID
	return job, nil
}

func (f *fakeBatchService) Results(_ context.Context, _ string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.fetches++
	f.mu.Unlock()
	return io.NopCloser(strings.NewReader(f.results)), nil
}

// newStore returns a lexicon service over a fresh in-memory database and a
// row counter for it.
func newStore(t *testing.T) (*lexicon.Service, func() domain.LexiconStats) {
	t.Helper()
	db := testhelper.SetupTestDB(t)
	svc := lexicon.NewService(slog.Default(), sqlitelexicon.New(db), sqlite.NewTxManager(db))
	return svc, func() domain.LexiconStats {
		s, err := svc.Stats(context.Background())
		if err != nil {
			t.Fatalf("stats: %v", err)
		}
		return s
	}
}

// lexemeJSON renders a generated lexeme with one entry of the given code.
func lexemeJSON(lemma, pos string, forms ...string) string {
	b, _ := json.Marshal(lexbatch.LexemeResult{
		Lemma:     lemma,
		WordForms: forms,
		Entries: []lexbatch.LexemeEntry{{
			PartOfSpeech: pos,
			Definitions:  []string{"definition of " + lemma},
			Synonyms:     []string{"synonym of " + lemma},
			Antonyms:     []string{},
		}},
	})
	return string(b)
}

// okLine renders one successful result line.
func okLine(t *testing.T, customID, content string) string {
	t.Helper()
	body, err := json.Marshal(openai.ChatCompletionResponse{
		ID:    "chatcmpl-" + customID,
		Model: "gpt-4o-mini",
		Choices: []openai.ChatCompletionChoice{{
			Index:   0,
			Message: openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	line, err := json.Marshal(lexbatch.ResultLine{
		ID:       "batch_req_" + customID,
		CustomID: customID,
		Response: &lexbatch.ResultResponse{StatusCode: 200, RequestID: "req_" + customID, Body: body},
	})
	if err != nil {
		t.Fatal(err)
	}
	return string(line)
}

func joinLines(lines ...string) string {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(l)
		buf.WriteByte('\n')
	}
	return buf.String()
}

func failureKinds(sum lexbatch.Summary) []lexbatch.FailureKind {
	kinds := make([]lexbatch.FailureKind, len(sum.Failures))
	for i, f := range sum.Failures {
		kinds[i] = f.Kind
	}
	return kinds
}
