package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"booktrack/internal/models"
	"booktrack/internal/shared"
)

// BookRepository caches resolved book metadata in SQLite.
//
// Implements the cache interface accepted by the books client. Cache misses
// and read errors are both reported as a miss so a damaged cache never blocks
// a lookup.
type BookRepository struct {
	db *sql.DB
}

// NewBookRepository creates a new BookRepository with the given database connection
func NewBookRepository(db *sql.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Get retrieves a cached book record by its normalized lookup key.
func (r *BookRepository) Get(key string) (*models.BookRecord, bool) {
	query := `
		SELECT title, authors, summary, cover_image_url
		FROM book_cache
		WHERE lookup_key = ?
	`

	var record models.BookRecord
	var authorsJSON string

	err := r.db.QueryRow(query, key).Scan(&record.Title, &authorsJSON, &record.Summary, &record.CoverImageURL)
	if err != nil {
		return nil, false
	}

	if err := json.Unmarshal([]byte(authorsJSON), &record.Authors); err != nil {
		return nil, false
	}

	return &record, true
}

// Put stores a book record under its lookup key, replacing any previous entry.
func (r *BookRepository) Put(key string, record *models.BookRecord) error {
	if record == nil {
		return errors.New("nil book record")
	}

	authorsJSON, err := json.Marshal(record.Authors)
	if err != nil {
		return fmt.Errorf("failed to encode authors: %w", err)
	}

	query := `
		INSERT INTO book_cache (id, lookup_key, title, authors, summary, cover_image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(lookup_key) DO UPDATE SET
			title = excluded.title,
			authors = excluded.authors,
			summary = excluded.summary,
			cover_image_url = excluded.cover_image_url
	`

	_, err = r.db.Exec(query,
		shared.GenerateID(),
		key,
		record.Title,
		string(authorsJSON),
		record.Summary,
		record.CoverImageURL,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to cache book: %w", err)
	}

	return nil
}

// Count returns the number of cached book records.
func (r *BookRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM book_cache`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cached books: %w", err)
	}
	return count, nil
}

// List returns all cached book records in insertion order.
func (r *BookRepository) List() ([]models.BookRecord, error) {
	rows, err := r.db.Query(`
		SELECT title, authors, summary, cover_image_url
		FROM book_cache
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list cached books: %w", err)
	}
	defer rows.Close()

	var records []models.BookRecord
	for rows.Next() {
		var record models.BookRecord
		var authorsJSON string
		if err := rows.Scan(&record.Title, &authorsJSON, &record.Summary, &record.CoverImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan cached book: %w", err)
		}
		if err := json.Unmarshal([]byte(authorsJSON), &record.Authors); err != nil {
			return nil, fmt.Errorf("failed to decode authors: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// Clear removes every cached book record.
func (r *BookRepository) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM book_cache`); err != nil {
		return fmt.Errorf("failed to clear book cache: %w", err)
	}
	return nil
}
