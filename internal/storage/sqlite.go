package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/glabrego/feedr/internal/feed"
)

// SQLiteStore keeps the same collections in a single SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS bookmarks (
  position INTEGER NOT NULL,
  url TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS categories (
  position INTEGER NOT NULL,
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  expanded INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS category_feeds (
  category_id TEXT NOT NULL,
  feed_url TEXT NOT NULL,
  PRIMARY KEY (category_id, feed_url)
);
CREATE TABLE IF NOT EXISTS read_items (
  position INTEGER NOT NULL,
  item_key TEXT PRIMARY KEY
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadBookmarks(ctx context.Context) ([]string, error) {
	return s.loadStrings(ctx, `SELECT url FROM bookmarks ORDER BY position`)
}

func (s *SQLiteStore) SaveBookmarks(ctx context.Context, urls []string) error {
	return s.replaceStrings(ctx, "bookmarks", "url", urls)
}

func (s *SQLiteStore) LoadReadItems(ctx context.Context) ([]string, error) {
	return s.loadStrings(ctx, `SELECT item_key FROM read_items ORDER BY position`)
}

func (s *SQLiteStore) SaveReadItems(ctx context.Context, keys []string) error {
	return s.replaceStrings(ctx, "read_items", "item_key", keys)
}

func (s *SQLiteStore) LoadCategories(ctx context.Context) ([]feed.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, expanded FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	var categories []feed.Category
	index := map[string]int{}
	for rows.Next() {
		var c feed.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Expanded); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan category: %w", err)
		}
		c.Feeds = feed.NewFeedSet()
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	rows.Close()

	members, err := s.db.QueryContext(ctx, `SELECT category_id, feed_url FROM category_feeds`)
	if err != nil {
		return nil, fmt.Errorf("query category feeds: %w", err)
	}
	defer members.Close()
	for members.Next() {
		var id, url string
		if err := members.Scan(&id, &url); err != nil {
			return nil, fmt.Errorf("scan category feed: %w", err)
		}
		if i, ok := index[id]; ok {
			categories[i].Feeds[url] = struct{}{}
		}
	}
	if err := members.Err(); err != nil {
		return nil, fmt.Errorf("iterate category feeds: %w", err)
	}
	return categories, nil
}

// SaveCategories replaces every stored category and membership row.
func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []feed.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM category_feeds`); err != nil {
		return fmt.Errorf("clear category feeds: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM categories`); err != nil {
		return fmt.Errorf("clear categories: %w", err)
	}

	catStmt, err := tx.PrepareContext(ctx, `INSERT INTO categories (position, id, name, expanded) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare category statement: %w", err)
	}
	defer catStmt.Close()
	feedStmt, err := tx.PrepareContext(ctx, `INSERT INTO category_feeds (category_id, feed_url) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare category feed statement: %w", err)
	}
	defer feedStmt.Close()

	for i, c := range categories {
		if _, err := catStmt.ExecContext(ctx, i, c.ID, c.Name, c.Expanded); err != nil {
			return fmt.Errorf("save category %q: %w", c.Name, err)
		}
		for _, url := range c.Feeds.Sorted() {
			if _, err := feedStmt.ExecContext(ctx, c.ID, url); err != nil {
				return fmt.Errorf("save category %q feed %s: %w", c.Name, url, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadStrings(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}

// replaceStrings swaps the contents of an ordered single-column table.
func (s *SQLiteStore) replaceStrings(ctx context.Context, table, column string, values []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO `+table+` (position, `+column+`) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare %s statement: %w", table, err)
	}
	defer stmt.Close()

	for i, v := range values {
		if _, err := stmt.ExecContext(ctx, i, v); err != nil {
			return fmt.Errorf("save %s row: %w", table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
