package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueLemma returns a lemma text that will not collide with other tests
// sharing the same container.
func UniqueLemma(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedLemma inserts a bare lemma row and returns its id.
func SeedLemma(t *testing.T, pool *pgxpool.Pool, lemma, pos string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO lemmas (lemma, input_part_of_speech) VALUES ($1, $2) RETURNING lemma_id`,
		lemma, pos,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedLemma: %v", err)
	}
	return id
}

// SeedEntry inserts an entry with one definition under lemmaID and returns
// the entry id.
func SeedEntry(t *testing.T, pool *pgxpool.Pool, lemmaID int64, pos string, order int, definition string) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := pool.QueryRow(ctx,
		`INSERT INTO entries (lemma_id, part_of_speech, order_index) VALUES ($1, $2, $3) RETURNING entry_id`,
		lemmaID, pos, order,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert entry: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO definitions (entry_id, definition, order_index) VALUES ($1, $2, 0)`,
		id, definition,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedEntry insert definition: %v", err)
	}
	return id
}

// CountRows returns the number of rows in table matching lemmaID through the
// lemma_id column (lemmas, words, entries).
func CountRows(t *testing.T, pool *pgxpool.Pool, table string, lemmaID int64) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE lemma_id = $1`, lemmaID,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
