// Package lexicon implements the lexical store on PostgreSQL. Writes are
// append-only and idempotent: duplicate lemmas and word forms are ignored via
// ON CONFLICT DO NOTHING. Callers group the writes of one lemma with
// postgres.TxManager; every method picks up the transaction from ctx.
package lexicon

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/lexicon-builder/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// Repo provides lexicon persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new lexicon repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// EnsureSchema applies the embedded migrations. Existing tables are left as is.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := postgres.Migrate(ctx, r.pool); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

const insertLemmaSQL = `
INSERT INTO lemmas (lemma, input_part_of_speech)
VALUES ($1, $2)
ON CONFLICT (lemma) DO NOTHING
RETURNING lemma_id`

const selectLemmaIDSQL = `SELECT lemma_id FROM lemmas WHERE lemma = $1`

// UpsertLemma inserts the lemma if absent and returns its id. created reports
// whether this call inserted the row. The part of speech of an existing lemma
// is never changed.
func (r *Repo) UpsertLemma(ctx context.Context, text, pos string) (int64, bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var id int64
	err := q.QueryRow(ctx, insertLemmaSQL, text, pos).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, postgres.MapError(err, "lemma", text)
	}

	if err := q.QueryRow(ctx, selectLemmaIDSQL, text).Scan(&id); err != nil {
		return 0, false, postgres.MapError(err, "lemma", text)
	}
	return id, false, nil
}

// AttachWordForms links surface forms to a lemma. A form already claimed by
// any lemma is skipped. Returns the number of forms actually inserted.
func (r *Repo) AttachWordForms(ctx context.Context, lemmaID int64, forms []string) (int, error) {
	if len(forms) == 0 {
		return 0, nil
	}

	batch := &pgx.Batch{}
	for _, form := range forms {
		batch.Queue(
			`INSERT INTO words (word, lemma_id) VALUES ($1, $2)
			 ON CONFLICT (word) DO NOTHING`,
			form, lemmaID,
		)
	}

	n, err := r.sendBatchExec(ctx, batch)
	if err != nil {
		return n, postgres.MapError(err, "word forms of lemma", lemmaID)
	}
	return n, nil
}

// HasEntries reports whether the lemma already owns at least one entry.
func (r *Repo) HasEntries(ctx context.Context, lemmaID int64) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM entries WHERE lemma_id = $1)`, lemmaID,
	).Scan(&exists)
	if err != nil {
		return false, postgres.MapError(err, "entries of lemma", lemmaID)
	}
	return exists, nil
}

// RecordEntries writes the entries of a lemma with all of their definitions,
// synonyms and antonyms. The order_index of an entry is its position in
// entries; the order_index of a child is its position within its list.
func (r *Repo) RecordEntries(ctx context.Context, lemmaID int64, entries []domain.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	q := postgres.QuerierFromCtx(ctx, r.pool)
	children := &pgx.Batch{}

	for i, e := range entries {
		var entryID int64
		err := q.QueryRow(ctx,
			`INSERT INTO entries (lemma_id, part_of_speech, order_index)
			 VALUES ($1, $2, $3) RETURNING entry_id`,
			lemmaID, string(e.POS), i,
		).Scan(&entryID)
		if err != nil {
			return postgres.MapError(err, "entry of lemma", lemmaID)
		}

		queueChildren(children, `INSERT INTO definitions (entry_id, definition, order_index) VALUES ($1, $2, $3)`, entryID, e.Definitions)
		queueChildren(children, `INSERT INTO synonyms (entry_id, synonym, order_index) VALUES ($1, $2, $3)`, entryID, e.Synonyms)
		queueChildren(children, `INSERT INTO antonyms (entry_id, antonym, order_index) VALUES ($1, $2, $3)`, entryID, e.Antonyms)
	}

	if children.Len() == 0 {
		return nil
	}
	if _, err := r.sendBatchExec(ctx, children); err != nil {
		return postgres.MapError(err, "entry children of lemma", lemmaID)
	}
	return nil
}

func queueChildren(batch *pgx.Batch, sql string, entryID int64, texts []string) {
	for i, text := range texts {
		batch.Queue(sql, entryID, text, i)
	}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetLemmaTree returns a lemma with its word forms and ordered entries.
// Returns domain.ErrNotFound when the lemma is not stored.
func (r *Repo) GetLemmaTree(ctx context.Context, text string) (*domain.LemmaRecord, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rec := &domain.LemmaRecord{}
	err := q.QueryRow(ctx,
		`SELECT lemma_id, lemma, input_part_of_speech FROM lemmas WHERE lemma = $1`, text,
	).Scan(&rec.ID, &rec.Lemma, &rec.InputPOS)
	if err != nil {
		return nil, postgres.MapError(err, "lemma", text)
	}

	rec.WordForms, err = collectStrings(ctx, q,
		`SELECT word FROM words WHERE lemma_id = $1 ORDER BY word_id`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("get word forms: %w", err)
	}

	rows, err := q.Query(ctx,
		`SELECT entry_id, part_of_speech, order_index FROM entries
		 WHERE lemma_id = $1 ORDER BY order_index, entry_id`, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var (
			e   domain.Entry
			pos string
		)
		err := row.Scan(&e.ID, &pos, &e.Position)
		e.POS = domain.PartOfSpeech(pos)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		if e.Definitions, err = collectStrings(ctx, q,
			`SELECT definition FROM definitions WHERE entry_id = $1 ORDER BY order_index, definition_id`, e.ID); err != nil {
			return nil, fmt.Errorf("get definitions: %w", err)
		}
		if e.Synonyms, err = collectStrings(ctx, q,
			`SELECT synonym FROM synonyms WHERE entry_id = $1 ORDER BY order_index, synonym_id`, e.ID); err != nil {
			return nil, fmt.Errorf("get synonyms: %w", err)
		}
		if e.Antonyms, err = collectStrings(ctx, q,
			`SELECT antonym FROM antonyms WHERE entry_id = $1 ORDER BY order_index, antonym_id`, e.ID); err != nil {
			return nil, fmt.Errorf("get antonyms: %w", err)
		}
	}
	rec.Entries = entries

	return rec, nil
}

const statsSQL = `
SELECT
    (SELECT count(*) FROM lemmas),
    (SELECT count(*) FROM words),
    (SELECT count(*) FROM entries),
    (SELECT count(*) FROM definitions),
    (SELECT count(*) FROM synonyms),
    (SELECT count(*) FROM antonyms)`

// Stats returns the row count of every lexicon table.
func (r *Repo) Stats(ctx context.Context) (domain.LexiconStats, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var s domain.LexiconStats
	err := q.QueryRow(ctx, statsSQL).Scan(
		&s.Lemmas, &s.Words, &s.Entries, &s.Definitions, &s.Synonyms, &s.Antonyms,
	)
	if err != nil {
		return domain.LexiconStats{}, fmt.Errorf("lexicon stats: %w", err)
	}
	return s, nil
}

// ---------------------------------------------------------------------------
// Internal helpers
// ---------------------------------------------------------------------------

func collectStrings(ctx context.Context, q postgres.Querier, sql string, arg int64) ([]string, error) {
	rows, err := q.Query(ctx, sql, arg)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// sendBatchExec sends a pgx.Batch and counts affected rows from Exec results.
func (r *Repo) sendBatchExec(ctx context.Context, batch *pgx.Batch) (int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	results := q.SendBatch(ctx, batch)
	defer results.Close()

	var inserted int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return inserted, fmt.Errorf("batch exec: %w", err)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}
