package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/glbter/capstone/entities"
)

const bookNotFoundMessage = "Book not found"

const bookColumns = `id, title, author, isbn, rating, date_read, notes, created_at`

// orderBy is the ORDER BY clause of each sort key.
var orderBy = map[entities.BookSort]string{
	entities.SortByDateRead: "date_read DESC NULLS LAST, id DESC",
	entities.SortByRating:   "rating DESC NULLS LAST, id DESC",
	entities.SortByTitle:    "title ASC, id ASC",
	entities.SortByCreated:  "created_at DESC, id DESC",
}

type BookRepo struct {
	db *sql.DB
}

func Open(dbPath string) (*BookRepo, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("db path is required")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=3000;",
		"PRAGMA synchronous=NORMAL;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set pragma %s: %w", p, err)
		}
	}

	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &BookRepo{db: db}, nil
}

func (r *BookRepo) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

func initSchema(db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS books (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    author TEXT NOT NULL,
    isbn TEXT,
    rating INTEGER,
    date_read TEXT,
    notes TEXT,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func (r *BookRepo) List(ctx context.Context, sort entities.BookSort) ([]entities.Book, error) {
	order, ok := orderBy[sort]
	if !ok {
		order = orderBy[entities.SortByDateRead]
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+bookColumns+` FROM books ORDER BY `+order)
	if err != nil {
		return nil, fmt.Errorf("query books: %w", err)
	}
	defer rows.Close()

	books := make([]entities.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate books: %w", err)
	}

	return books, nil
}

func (r *BookRepo) Get(ctx context.Context, id int64) (entities.Book, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+bookColumns+` FROM books WHERE id = ?`, id)
	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Book{}, &entities.NotFoundError{Message: bookNotFoundMessage}
	}
	return b, err
}

func (r *BookRepo) Create(ctx context.Context, in entities.BookInput) (entities.Book, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO books (title, author, isbn, rating, date_read, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		in.Title, in.Author, in.ISBN, in.Rating, in.DateRead, in.Notes,
	)
	if err != nil {
		return entities.Book{}, fmt.Errorf("insert book: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return entities.Book{}, fmt.Errorf("read inserted id: %w", err)
	}

	return r.Get(ctx, id)
}

func (r *BookRepo) Update(ctx context.Context, id int64, in entities.BookInput) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE books SET title = ?, author = ?, isbn = ?, rating = ?, date_read = ?, notes = ? WHERE id = ?`,
		in.Title, in.Author, in.ISBN, in.Rating, in.DateRead, in.Notes, id,
	)
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update book %d: %w", id, err)
	}
	if n == 0 {
		return &entities.NotFoundError{Message: bookNotFoundMessage}
	}
	return nil
}

// Delete removes the book; deleting an unknown id is not an error.
func (r *BookRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (entities.Book, error) {
	var b entities.Book
	err := s.Scan(&b.ID, &b.Title, &b.Author, &b.ISBN, &b.Rating, &b.DateRead, &b.Notes, &b.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Book{}, err
	}
	if err != nil {
		return entities.Book{}, fmt.Errorf("scan book: %w", err)
	}
	return b, nil
}
