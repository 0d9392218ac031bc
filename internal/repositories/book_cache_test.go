package repositories

import (
	"database/sql"
	"reflect"
	"testing"

	"booktrack/internal/models"
	"booktrack/internal/shared"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testRecord() *models.BookRecord {
	return &models.BookRecord{
		Title:         "Dune",
		Authors:       []string{"Frank Herbert"},
		Summary:       "Desert planet politics.",
		CoverImageURL: "http://img/dune.jpg",
	}
}

func TestBookRepository(t *testing.T) {
	t.Run("Put Then Get", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))

		key := shared.NormalizeLookupKey("Dune", "Frank Herbert")
		if err := repo.Put(key, testRecord()); err != nil {
			t.Fatalf("failed to put: %v", err)
		}

		got, ok := repo.Get(key)
		if !ok {
			t.Fatal("expected cache hit")
		}

		if !reflect.DeepEqual(got, testRecord()) {
			t.Errorf("unexpected record: %+v", got)
		}
	})

	t.Run("Miss On Unknown Key", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))

		if _, ok := repo.Get("missing|key"); ok {
			t.Error("expected cache miss")
		}
	})

	t.Run("Put Replaces Existing Entry", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))
		key := "dune|frank herbert"

		if err := repo.Put(key, testRecord()); err != nil {
			t.Fatalf("first put failed: %v", err)
		}

		updated := testRecord()
		updated.Summary = "Revised summary."
		if err := repo.Put(key, updated); err != nil {
			t.Fatalf("second put failed: %v", err)
		}

		got, ok := repo.Get(key)
		if !ok {
			t.Fatal("expected cache hit")
		}
		if got.Summary != "Revised summary." {
			t.Errorf("expected updated summary, got %q", got.Summary)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("failed to count: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 entry after replace, got %d", count)
		}
	})

	t.Run("Put Nil Record", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))

		if err := repo.Put("key", nil); err == nil {
			t.Error("expected error for nil record")
		}
	})

	t.Run("List", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))

		if err := repo.Put("a|x", testRecord()); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		other := testRecord()
		other.Title = "Dune Messiah"
		if err := repo.Put("b|y", other); err != nil {
			t.Fatalf("put failed: %v", err)
		}

		records, err := repo.List()
		if err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if len(records) != 2 {
			t.Errorf("expected 2 records, got %d", len(records))
		}
	})

	t.Run("Clear", func(t *testing.T) {
		repo := NewBookRepository(testDB(t))

		if err := repo.Put("a|x", testRecord()); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		if err := repo.Clear(); err != nil {
			t.Fatalf("clear failed: %v", err)
		}

		count, err := repo.Count()
		if err != nil {
			t.Fatalf("count failed: %v", err)
		}
		if count != 0 {
			t.Errorf("expected empty cache, got %d entries", count)
		}
	})
}
