// Package lexicon implements the lexical store on SQLite. Statements are built
// with squirrel; duplicate lemmas and word forms are skipped with
// INSERT OR IGNORE. Callers group the writes of one lemma with
// sqlite.TxManager; every method picks up the transaction from ctx.
package lexicon

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/heartmarshall/lexicon-builder/internal/adapter/sqlite"
	"github.com/heartmarshall/lexicon-builder/internal/domain"
)

// childTables maps each entry child list to its table and text column.
var childTables = [...]struct{ table, column string }{
	{"definitions", "definition"},
	{"synonyms", "synonym"},
	{"antonyms", "antonym"},
}

// Repo provides lexicon persistence backed by SQLite.
type Repo struct {
	db *sql.DB
}

// New creates a new lexicon repository.
func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// EnsureSchema applies the embedded migrations. Existing tables are left as is.
func (r *Repo) EnsureSchema(ctx context.Context) error {
	if _, err := sqlite.Migrate(ctx, r.db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// UpsertLemma inserts the lemma if absent and returns its id. created reports
// whether this call inserted the row.
func (r *Repo) UpsertLemma(ctx context.Context, text, pos string) (int64, bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Insert("lemmas").
		Options("OR IGNORE").
		Columns("lemma", "input_part_of_speech").
		Values(text, pos).
		ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build upsert lemma: %w", err)
	}

	res, err := q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, false, sqlite.MapError(err, "lemma", text)
	}
	if n, _ := res.RowsAffected(); n == 1 {
		id, err := res.LastInsertId()
		if err != nil {
			return 0, false, fmt.Errorf("lemma %s: last insert id: %w", text, err)
		}
		return id, true, nil
	}

	query, args, err = sq.Select("lemma_id").From("lemmas").Where(sq.Eq{"lemma": text}).ToSql()
	if err != nil {
		return 0, false, fmt.Errorf("build select lemma: %w", err)
	}

	var id int64
	if err := q.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return 0, false, sqlite.MapError(err, "lemma", text)
	}
	return id, false, nil
}

// AttachWordForms links surface forms to a lemma. A form already claimed by
// any lemma is skipped. Returns the number of forms actually inserted.
func (r *Repo) AttachWordForms(ctx context.Context, lemmaID int64, forms []string) (int, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var attached int
	for _, form := range forms {
		query, args, err := sq.Insert("words").
			Options("OR IGNORE").
			Columns("word", "lemma_id").
			Values(form, lemmaID).
			ToSql()
		if err != nil {
			return attached, fmt.Errorf("build insert word: %w", err)
		}

		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return attached, sqlite.MapError(err, "word form", form)
		}
		n, _ := res.RowsAffected()
		attached += int(n)
	}
	return attached, nil
}

// HasEntries reports whether the lemma already owns at least one entry.
func (r *Repo) HasEntries(ctx context.Context, lemmaID int64) (bool, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select("1").From("entries").
		Where(sq.Eq{"lemma_id": lemmaID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build has entries: %w", err)
	}

	var one int
	err = q.QueryRowContext(ctx, query, args...).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, sqlite.MapError(err, "entries of lemma", lemmaID)
	}
	return true, nil
}

// RecordEntries writes the entries of a lemma with all of their definitions,
// synonyms and antonyms. The order_index of an entry is its position in
// entries; the order_index of a child is its position within its list.
func (r *Repo) RecordEntries(ctx context.Context, lemmaID int64, entries []domain.Entry) error {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	for i, e := range entries {
		query, args, err := sq.Insert("entries").
			Columns("lemma_id", "part_of_speech", "order_index").
			Values(lemmaID, string(e.POS), i).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert entry: %w", err)
		}

		res, err := q.ExecContext(ctx, query, args...)
		if err != nil {
			return sqlite.MapError(err, "entry of lemma", lemmaID)
		}
		entryID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("entry of lemma %d: last insert id: %w", lemmaID, err)
		}

		lists := [len(childTables)][]string{e.Definitions, e.Synonyms, e.Antonyms}
		for k, texts := range lists {
			if err := insertChildren(ctx, q, childTables[k].table, childTables[k].column, entryID, texts); err != nil {
				return err
			}
		}
	}
	return nil
}

// insertChildren writes one child list as a single multi-row INSERT.
func insertChildren(ctx context.Context, q sqlite.Querier, table, column string, entryID int64, texts []string) error {
	if len(texts) == 0 {
		return nil
	}

	ins := sq.Insert(table).Columns("entry_id", column, "order_index")
	for i, text := range texts {
		ins = ins.Values(entryID, text, i)
	}

	query, args, err := ins.ToSql()
	if err != nil {
		return fmt.Errorf("build insert %s: %w", table, err)
	}
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return sqlite.MapError(err, table+" of entry", entryID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetLemmaTree returns a lemma with its word forms and ordered entries.
// Returns domain.ErrNotFound when the lemma is not stored.
func (r *Repo) GetLemmaTree(ctx context.Context, text string) (*domain.LemmaRecord, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	query, args, err := sq.Select("lemma_id", "lemma", "input_part_of_speech").
		From("lemmas").
		Where(sq.Eq{"lemma": text}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get lemma: %w", err)
	}

	rec := &domain.LemmaRecord{}
	if err := q.QueryRowContext(ctx, query, args...).Scan(&rec.ID, &rec.Lemma, &rec.InputPOS); err != nil {
		return nil, sqlite.MapError(err, "lemma", text)
	}

	rec.WordForms, err = selectStrings(ctx, q, sq.Select("word").From("words").
		Where(sq.Eq{"lemma_id": rec.ID}).OrderBy("word_id"))
	if err != nil {
		return nil, fmt.Errorf("get word forms: %w", err)
	}

	rec.Entries, err = r.selectEntries(ctx, q, rec.ID)
	if err != nil {
		return nil, fmt.Errorf("get entries: %w", err)
	}

	for i := range rec.Entries {
		e := &rec.Entries[i]
		lists := [len(childTables)]*[]string{&e.Definitions, &e.Synonyms, &e.Antonyms}
		for k, dst := range lists {
			t := childTables[k]
			*dst, err = selectStrings(ctx, q, sq.Select(t.column).From(t.table).
				Where(sq.Eq{"entry_id": e.ID}).OrderBy("order_index", "rowid"))
			if err != nil {
				return nil, fmt.Errorf("get %s: %w", t.table, err)
			}
		}
	}

	return rec, nil
}

func (r *Repo) selectEntries(ctx context.Context, q sqlite.Querier, lemmaID int64) ([]domain.Entry, error) {
	query, args, err := sq.Select("entry_id", "part_of_speech", "order_index").
		From("entries").
		Where(sq.Eq{"lemma_id": lemmaID}).
		OrderBy("order_index", "entry_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var (
			e   domain.Entry
			pos string
		)
		if err := rows.Scan(&e.ID, &pos, &e.Position); err != nil {
			return nil, err
		}
		e.POS = domain.PartOfSpeech(pos)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Stats returns the row count of every lexicon table.
func (r *Repo) Stats(ctx context.Context) (domain.LexiconStats, error) {
	q := sqlite.QuerierFromCtx(ctx, r.db)

	var s domain.LexiconStats
	counts := []struct {
		table string
		dst   *int
	}{
		{"lemmas", &s.Lemmas},
		{"words", &s.Words},
		{"entries", &s.Entries},
		{"definitions", &s.Definitions},
		{"synonyms", &s.Synonyms},
		{"antonyms", &s.Antonyms},
	}

	for _, c := range counts {
		query, args, err := sq.Select("count(*)").From(c.table).ToSql()
		if err != nil {
			return domain.LexiconStats{}, fmt.Errorf("build count %s: %w", c.table, err)
		}
		if err := q.QueryRowContext(ctx, query, args...).Scan(c.dst); err != nil {
			return domain.LexiconStats{}, fmt.Errorf("lexicon stats %s: %w", c.table, err)
		}
	}
	return s, nil
}

func selectStrings(ctx context.Context, q sqlite.Querier, b sq.SelectBuilder) ([]string, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
