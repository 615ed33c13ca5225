package lexicon

import (
	"context"
	"sync"

	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

var _ lexiconRepo = &lexiconRepoMock{}

type lexiconRepoMock struct {
	EnsureSchemaFunc    func(ctx context.Context) error
	UpsertLemmaFunc     func(ctx context.Context, text string, pos string) (int64, bool, error)
	AttachWordFormsFunc func(ctx context.Context, lemmaID int64, forms []string) (int, error)
	HasEntriesFunc      func(ctx context.Context, lemmaID int64) (bool, error)
	RecordEntriesFunc   func(ctx context.Context, lemmaID int64, entries []domain.Entry) error
	GetLemmaTreeFunc    func(ctx context.Context, text string) (*domain.LemmaRecord, error)
	StatsFunc           func(ctx context.Context) (domain.LexiconStats, error)

	calls struct {
		EnsureSchema []struct {
			Ctx context.Context
		}
		UpsertLemma []struct {
			Ctx  context.Context
			Text string
			Pos  string
		}
		AttachWordForms []struct {
			Ctx     context.Context
			LemmaID int64
			Forms   []string
		}
		HasEntries []struct {
			Ctx     context.Context
			LemmaID int64
		}
		RecordEntries []struct {
			Ctx     context.Context
			LemmaID int64
			Entries []domain.Entry
		}
		GetLemmaTree []struct {
			Ctx  context.Context
			Text string
		}
		Stats []struct {
			Ctx context.Context
		}
	}
	lockEnsureSchema    sync.RWMutex
	lockUpsertLemma     sync.RWMutex
	lockAttachWordForms sync.RWMutex
	lockHasEntries      sync.RWMutex
	lockRecordEntries   sync.RWMutex
	lockGetLemmaTree    sync.RWMutex
	lockStats           sync.RWMutex
}

func (mock *lexiconRepoMock) EnsureSchema(ctx context.Context) error {
	if mock.EnsureSchemaFunc == nil {
		panic("lexiconRepoMock.EnsureSchemaFunc: method is nil but lexiconRepo.EnsureSchema was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockEnsureSchema.Lock()
	mock.calls.EnsureSchema = append(mock.calls.EnsureSchema, callInfo)
	mock.lockEnsureSchema.Unlock()
	return mock.EnsureSchemaFunc(ctx)
}

func (mock *lexiconRepoMock) EnsureSchemaCalls() []struct {
		Ctx context.Context
} {
	mock.lockEnsureSchema.RLock()
	calls := mock.calls.EnsureSchema
	mock.lockEnsureSchema.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) UpsertLemma(ctx context.Context, text string, pos string) (int64, bool, error) {
	if mock.UpsertLemmaFunc == nil {
		panic("lexiconRepoMock.UpsertLemmaFunc: method is nil but lexiconRepo.UpsertLemma was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
		Pos  string
	}{Ctx: ctx, Text: text, Pos: pos}
	mock.lockUpsertLemma.Lock()
	mock.calls.UpsertLemma = append(mock.calls.UpsertLemma, callInfo)
	mock.lockUpsertLemma.Unlock()
	return mock.UpsertLemmaFunc(ctx, text, pos)
}

func (mock *lexiconRepoMock) UpsertLemmaCalls() []struct {
		Ctx  context.Context
		Text string
		Pos  string
} {
	mock.lockUpsertLemma.RLock()
	calls := mock.calls.UpsertLemma
	mock.lockUpsertLemma.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) AttachWordForms(ctx context.Context, lemmaID int64, forms []string) (int, error) {
	if mock.AttachWordFormsFunc == nil {
		panic("lexiconRepoMock.AttachWordFormsFunc: method is nil but lexiconRepo.AttachWordForms was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		LemmaID int64
		Forms   []string
	}{Ctx: ctx, LemmaID: lemmaID, Forms: forms}
	mock.lockAttachWordForms.Lock()
	mock.calls.AttachWordForms = append(mock.calls.AttachWordForms, callInfo)
	mock.lockAttachWordForms.Unlock()
	return mock.AttachWordFormsFunc(ctx, lemmaID, forms)
}

func (mock *lexiconRepoMock) AttachWordFormsCalls() []struct {
		Ctx     context.Context
		LemmaID int64
		Forms   []string
} {
	mock.lockAttachWordForms.RLock()
	calls := mock.calls.AttachWordForms
	mock.lockAttachWordForms.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) HasEntries(ctx context.Context, lemmaID int64) (bool, error) {
	if mock.HasEntriesFunc == nil {
		panic("lexiconRepoMock.HasEntriesFunc: method is nil but lexiconRepo.HasEntries was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		LemmaID int64
	}{Ctx: ctx, LemmaID: lemmaID}
	mock.lockHasEntries.Lock()
	mock.calls.HasEntries = append(mock.calls.HasEntries, callInfo)
	mock.lockHasEntries.Unlock()
	return mock.HasEntriesFunc(ctx, lemmaID)
}

func (mock *lexiconRepoMock) HasEntriesCalls() []struct {
		Ctx     context.Context
		LemmaID int64
} {
	mock.lockHasEntries.RLock()
	calls := mock.calls.HasEntries
	mock.lockHasEntries.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) RecordEntries(ctx context.Context, lemmaID int64, entries []domain.Entry) error {
	if mock.RecordEntriesFunc == nil {
		panic("lexiconRepoMock.RecordEntriesFunc: method is nil but lexiconRepo.RecordEntries was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		LemmaID int64
		Entries []domain.Entry
	}{Ctx: ctx, LemmaID: lemmaID, Entries: entries}
	mock.lockRecordEntries.Lock()
	mock.calls.RecordEntries = append(mock.calls.RecordEntries, callInfo)
	mock.lockRecordEntries.Unlock()
	return mock.RecordEntriesFunc(ctx, lemmaID, entries)
}

func (mock *lexiconRepoMock) RecordEntriesCalls() []struct {
		Ctx     context.Context
		LemmaID int64
		Entries []domain.Entry
} {
	mock.lockRecordEntries.RLock()
	calls := mock.calls.RecordEntries
	mock.lockRecordEntries.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) GetLemmaTree(ctx context.Context, text string) (*domain.LemmaRecord, error) {
	if mock.GetLemmaTreeFunc == nil {
		panic("lexiconRepoMock.GetLemmaTreeFunc: method is nil but lexiconRepo.GetLemmaTree was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Text string
	}{Ctx: ctx, Text: text}
	mock.lockGetLemmaTree.Lock()
	mock.calls.GetLemmaTree = append(mock.calls.GetLemmaTree, callInfo)
	mock.lockGetLemmaTree.Unlock()
	return mock.GetLemmaTreeFunc(ctx, text)
}

func (mock *lexiconRepoMock) GetLemmaTreeCalls() []struct {
		Ctx  context.Context
		Text string
} {
	mock.lockGetLemmaTree.RLock()
	calls := mock.calls.GetLemmaTree
	mock.lockGetLemmaTree.RUnlock()
	return calls
}

func (mock *lexiconRepoMock) Stats(ctx context.Context) (domain.LexiconStats, error) {
	if mock.StatsFunc == nil {
		panic("lexiconRepoMock.StatsFunc: method is nil but lexiconRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx)
}

func (mock *lexiconRepoMock) StatsCalls() []struct {
		Ctx context.Context
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}
