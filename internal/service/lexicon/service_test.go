package lexicon

//go:generate moq -out lexicon_repo_mock_test.go -pkg lexicon . lexiconRepo
//go:generate moq -out tx_manager_mock_test.go -pkg lexicon . txManager

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) },
	}
}

func okRepo() *lexiconRepoMock {
	return &lexiconRepoMock{
		UpsertLemmaFunc: func(_ context.Context, _, _ string) (int64, bool, error) {
			return 7, true, nil
		},
		AttachWordFormsFunc: func(_ context.Context, _ int64, forms []string) (int, error) {
			return len(forms), nil
		},
		HasEntriesFunc: func(_ context.Context, _ int64) (bool, error) {
			return false, nil
		},
		RecordEntriesFunc: func(_ context.Context, _ int64, _ []domain.Entry) error {
			return nil
		},
	}
}

func sampleRecord() domain.LemmaRecord {
	return domain.LemmaRecord{
		Lemma:     "run",
		InputPOS:  "v",
		WordForms: []string{"run", "runs", "ran"},
		Entries: []domain.Entry{
			{POS: domain.PartOfSpeechVerb, Definitions: []string{"move fast"}},
			{POS: domain.PartOfSpeechNoun, Definitions: []string{"a jog"}},
		},
	}
}

// --- SaveLemma tests ---

func TestSaveLemma_NewLemma(t *testing.T) {
	t.Parallel()

	repo := okRepo()
	tx := passthroughTx()
	svc := NewService(slog.Default(), repo, tx)

	got, err := svc.SaveLemma(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	want := domain.SaveResult{LemmaID: 7, LemmaCreated: true, WordsAttached: 3, EntriesWritten: 2}
	if got != want {
		t.Fatalf("SaveResult = %+v, want %+v", got, want)
	}
	if len(tx.RunInTxCalls()) != 1 {
		t.Fatalf("expected 1 RunInTx call, got %d", len(tx.RunInTxCalls()))
	}
	if len(repo.HasEntriesCalls()) != 0 {
		t.Fatalf("a freshly created lemma must not be checked for entries")
	}
	calls := repo.RecordEntriesCalls()
	if len(calls) != 1 || calls[0].LemmaID != 7 || len(calls[0].Entries) != 2 {
		t.Fatalf("unexpected RecordEntries calls: %+v", calls)
	}
}

func TestSaveLemma_ExistingLemmaWithEntriesIsSkipped(t *testing.T) {
	t.Parallel()

	repo := okRepo()
	repo.UpsertLemmaFunc = func(_ context.Context, _, _ string) (int64, bool, error) {
		return 3, false, nil
	}
	repo.HasEntriesFunc = func(_ context.Context, _ int64) (bool, error) { return true, nil }
	repo.AttachWordFormsFunc = func(_ context.Context, _ int64, _ []string) (int, error) { return 0, nil }

	svc := NewService(slog.Default(), repo, passthroughTx())

	got, err := svc.SaveLemma(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.EntriesSkipped || got.EntriesWritten != 0 || got.LemmaCreated {
		t.Fatalf("unexpected result %+v", got)
	}
	if len(repo.RecordEntriesCalls()) != 0 {
		t.Fatalf("expected no RecordEntries call, got %d", len(repo.RecordEntriesCalls()))
	}
}

func TestSaveLemma_ExistingLemmaWithoutEntries(t *testing.T) {
	t.Parallel()

	repo := okRepo()
	repo.UpsertLemmaFunc = func(_ context.Context, _, _ string) (int64, bool, error) {
		return 3, false, nil
	}
	svc := NewService(slog.Default(), repo, passthroughTx())

	got, err := svc.SaveLemma(context.Background(), sampleRecord())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.EntriesSkipped || got.EntriesWritten != 2 {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestSaveLemma_RepoErrorPropagates(t *testing.T) {
	t.Parallel()

	sentinel := errors.New("disk full")
	repo := okRepo()
	repo.RecordEntriesFunc = func(_ context.Context, _ int64, _ []domain.Entry) error { return sentinel }

	var txErr error
	tx := &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			txErr = fn(ctx)
			return txErr
		},
	}
	svc := NewService(slog.Default(), repo, tx)

	_, err := svc.SaveLemma(context.Background(), sampleRecord())
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got %v", err)
	}
	if !errors.Is(txErr, sentinel) {
		t.Fatalf("transaction body must fail so the tx rolls back, got %v", txErr)
	}
}

func TestSaveLemma_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rec  domain.LemmaRecord
	}{
		{"empty lemma", domain.LemmaRecord{InputPOS: "n"}},
		{"entry code too long", domain.LemmaRecord{
			Lemma:   "cat",
			Entries: []domain.Entry{{POS: "noun"}},
		}},
		{"entry without code", domain.LemmaRecord{
			Lemma:   "cat",
			Entries: []domain.Entry{{POS: domain.PartOfSpeechNoun}, {}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &lexiconRepoMock{}
			tx := passthroughTx()
			svc := NewService(slog.Default(), repo, tx)

			_, err := svc.SaveLemma(context.Background(), tt.rec)
			if !errors.Is(err, domain.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if len(tx.RunInTxCalls()) != 0 {
				t.Fatalf("invalid record must not open a transaction")
			}
		})
	}
}

// --- Lookup tests ---

func TestLookup_NormalizesText(t *testing.T) {
	t.Parallel()

	repo := &lexiconRepoMock{
		GetLemmaTreeFunc: func(_ context.Context, text string) (*domain.LemmaRecord, error) {
			return &domain.LemmaRecord{Lemma: text}, nil
		},
	}
	svc := NewService(slog.Default(), repo, passthroughTx())

	got, err := svc.Lookup(context.Background(), "  Run  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.Lemma != "run" {
		t.Fatalf("expected normalized lemma %q, got %q", "run", got.Lemma)
	}
}

func TestLookup_Empty(t *testing.T) {
	t.Parallel()

	svc := NewService(slog.Default(), &lexiconRepoMock{}, passthroughTx())

	_, err := svc.Lookup(context.Background(), "   ")
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
