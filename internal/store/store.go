// Package store persists generated articles and per-run statistics in
// SQLite, so repeated runs skip already-published items and cost history
// survives between invocations.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store handles all database operations.
type Store struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		link TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		source TEXT,
		appeal INTEGER NOT NULL,
		slug TEXT NOT NULL,
		published_at DATETIME,
		generated_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		finished_at DATETIME NOT NULL,
		fetched INTEGER,
		selected INTEGER,
		generated INTEGER,
		failed INTEGER,
		input_tokens INTEGER,
		output_tokens INTEGER,
		cost_usd REAL
	);

	CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles(published_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// HasArticle reports whether the link was already generated in an earlier run.
func (s *Store) HasArticle(link string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM articles WHERE link = ?)`, link).Scan(&exists)
	return exists, err
}

// SaveArticle inserts or refreshes one generated article.
func (s *Store) SaveArticle(a Article) error {
	_, err := s.db.Exec(`
		INSERT INTO articles (link, title, source, appeal, slug, published_at, generated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(link) DO UPDATE SET
			title = excluded.title,
			appeal = excluded.appeal,
			slug = excluded.slug,
			generated_at = excluded.generated_at
	`, a.Link, a.Title, a.Source, a.Appeal, a.Slug, a.PublishedAt, a.GeneratedAt)
	return err
}

// Articles returns every stored article, newest published first.
func (s *Store) Articles() ([]Article, error) {
	rows, err := s.db.Query(`
		SELECT link, title, source, appeal, slug, published_at, generated_at
		FROM articles
		ORDER BY published_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []Article
	for rows.Next() {
		var a Article
		if err := rows.Scan(&a.Link, &a.Title, &a.Source, &a.Appeal, &a.Slug, &a.PublishedAt, &a.GeneratedAt); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// SaveRun records the statistics of one completed run.
func (s *Store) SaveRun(r Run) error {
	_, err := s.db.Exec(`
		INSERT INTO runs (started_at, finished_at, fetched, selected, generated, failed,
			input_tokens, output_tokens, cost_usd)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.StartedAt, r.FinishedAt, r.Fetched, r.Selected, r.Generated, r.Failed,
		r.InputTokens, r.OutputTokens, r.CostUSD)
	return err
}
