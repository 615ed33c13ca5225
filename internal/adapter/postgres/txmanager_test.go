package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/lexicon-builder/internal/adapter/postgres"
	"github.com/heartmarshall/lexicon-builder/internal/adapter/postgres/testhelper"
)

// lemmaExists checks whether a lemma row with the given text exists in the database.
func lemmaExists(t *testing.T, pool *pgxpool.Pool, lemma string) bool {
	t.Helper()
	var exists bool
	err := pool.QueryRow(
		context.Background(),
		`SELECT EXISTS(SELECT 1 FROM lemmas WHERE lemma = $1)`,
		lemma,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("lemmaExists query: %v", err)
	}
	return exists
}

func insertLemma(ctx context.Context, pool *pgxpool.Pool, lemma string) error {
	q := postgres.QuerierFromCtx(ctx, pool)
	_, err := q.Exec(ctx,
		`INSERT INTO lemmas (lemma, input_part_of_speech) VALUES ($1, 'n')`,
		lemma,
	)
	return err
}


func TestRunInTx_Commit(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	lemma := testhelper.UniqueLemma("commit")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return insertLemma(ctx, pool, lemma)
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !lemmaExists(t, pool, lemma) {
		t.Fatal("expected lemma to exist after committed transaction")
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	lemma := testhelper.UniqueLemma("rollback")
	sentinel := errors.New("business logic error")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertLemma(ctx, pool, lemma); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if lemmaExists(t, pool, lemma) {
		t.Fatal("expected lemma NOT to exist after rolled-back transaction")
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	lemma := testhelper.UniqueLemma("panic")

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic to be re-raised")
		}
		if r != "test panic" {
			t.Fatalf("expected panic value %q, got %v", "test panic", r)
		}
		if lemmaExists(t, pool, lemma) {
			t.Fatal("expected lemma NOT to exist after panic-rolled-back transaction")
		}
	}()

	_ = tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertLemma(ctx, pool, lemma); err != nil {
			t.Fatalf("insert inside tx failed: %v", err)
		}
		panic("test panic")
	})
}

func TestRunInTx_NestedCallJoinsOuterTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	inner := testhelper.UniqueLemma("inner")
	sentinel := errors.New("outer failure")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := tm.RunInTx(ctx, func(ctx context.Context) error {
			return insertLemma(ctx, pool, inner)
		}); err != nil {
			return err
		}
		return sentinel
	})

	if !errors.Is(err, sentinel) {
		t.Fatalf("expected sentinel error, got: %v", err)
	}
	if lemmaExists(t, pool, inner) {
		t.Fatal("inner write should roll back with the outer transaction")
	}
}

func TestRunInTx_QuerierFromCtx_UsesTx(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	tm := postgres.NewTxManager(pool)
	lemma := testhelper.UniqueLemma("ctx")

	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := insertLemma(ctx, pool, lemma); err != nil {
			return err
		}

		var exists bool
		q := postgres.QuerierFromCtx(ctx, pool)
		err := q.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM lemmas WHERE lemma = $1)`, lemma).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			t.Fatal("expected lemma to be visible within the transaction")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunInTx returned error: %v", err)
	}

	if !lemmaExists(t, pool, lemma) {
		t.Fatal("expected lemma to exist after committed transaction")
	}
}
