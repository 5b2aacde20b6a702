package entities

import (
	"strconv"
	"strings"
	"time"

	"github.com/guregu/null/v6"
)

type Book struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Author    string      `json:"author"`
	ISBN      null.String `json:"isbn"`
	Rating    null.Int    `json:"rating"`
	DateRead  null.String `json:"date_read"`
	Notes     null.String `json:"notes"`
	CreatedAt time.Time   `json:"created_at"`

	// CoverURL is derived from ISBN on read and never stored.
	CoverURL string `json:"coverUrl,omitempty"`
}

// BookInput is the writable part of a book as submitted by the forms.
type BookInput struct {
	Title    string
	Author   string
	ISBN     null.String
	Rating   null.Int
	DateRead null.String
	Notes    null.String
}

const (
	MinRating = 1
	MaxRating = 5
)

// NewBookInput coerces raw form values: blank optional fields become NULL,
// a rating that is not an integer in MinRating..MaxRating becomes NULL and
// date_read keeps only its YYYY-MM-DD part.
func NewBookInput(title, author, isbn, rating, dateRead, notes string) BookInput {
	in := BookInput{
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		ISBN:     optionalString(isbn),
		DateRead: optionalString(DateOnly(dateRead)),
		Notes:    optionalString(notes),
	}
	if r, err := strconv.ParseInt(strings.TrimSpace(rating), 10, 64); err == nil && r >= MinRating && r <= MaxRating {
		in.Rating = null.IntFrom(r)
	}
	return in
}

func (in BookInput) Validate() error {
	if in.Title == "" || in.Author == "" {
		return &ValidationError{Message: "Title and author are required"}
	}
	return nil
}

func DateOnly(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}

func optionalString(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}

type BookSort string

const (
	SortByDateRead BookSort = "date_read"
	SortByRating   BookSort = "rating"
	SortByTitle    BookSort = "title"
	SortByCreated  BookSort = "date"
)

// ParseBookSort maps the sort query value to a known key, falling back to date_read.
func ParseBookSort(s string) BookSort {
	switch BookSort(s) {
	case SortByRating, SortByTitle, SortByCreated:
		return BookSort(s)
	default:
		return SortByDateRead
	}
}

type BookEventType string

const (
	BookCreated BookEventType = "book.created"
	BookUpdated BookEventType = "book.updated"
	BookDeleted BookEventType = "book.deleted"
)

type BookEvent struct {
	ID     string        `json:"id"`
	Type   BookEventType `json:"type"`
	BookID int64         `json:"book_id"`
	Title  string        `json:"title,omitempty"`
	At     time.Time     `json:"at"`
}
