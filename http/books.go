package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	coversHttp "github.com/glbter/capstone/covers/client/http"
	"github.com/glbter/capstone/entities"
)

var isbnPattern = regexp.MustCompile(`^[0-9Xx-]+$`)

type BookRepo interface {
	List(ctx context.Context, sort entities.BookSort) ([]entities.Book, error)
	Get(ctx context.Context, id int64) (entities.Book, error)
	Create(ctx context.Context, in entities.BookInput) (entities.Book, error)
	Update(ctx context.Context, id int64, in entities.BookInput) error
	Delete(ctx context.Context, id int64) error
}

type BookEventPublisher interface {
	Publish(ctx context.Context, event entities.BookEvent) error
}

type BooksHandler struct {
	Logger   *zap.Logger
	Books    BookRepo
	Covers   coversHttp.CoverClient
	Renderer *Renderer
	// Events is optional; book changes are not announced when it is nil.
	Events BookEventPublisher
}

type booksIndexPage struct {
	Books       []entities.Book
	TotalBooks  int
	CurrentSort string
}

type coverResponse struct {
	Success  bool   `json:"success"`
	CoverURL string `json:"coverUrl,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	Message  string `json:"message,omitempty"`
}

func (h BooksHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.NewForm)
	r.Post("/books", h.Create)
	r.Get("/edit/{id}", h.EditForm)
	r.Post("/books/{id}", h.Update)
	r.Post("/books/{id}/delete", h.Delete)
	r.Get("/api/cover/{isbn}", h.Cover)
}

func (h BooksHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "List"))

	sortBy := entities.ParseBookSort(r.URL.Query().Get("sort"))

	books, err := h.Books.List(r.Context(), sortBy)
	if err != nil {
		logger.Error(fmt.Errorf("list books: %w", err).Error())
		http.Error(w, "Error loading books", http.StatusInternalServerError)
		return
	}

	for i := range books {
		books[i].CoverURL = h.Covers.URL(books[i].ISBN.ValueOrZero(), coversHttp.SizeMedium)
	}

	h.render(w, logger, "books/index.html", booksIndexPage{
		Books:       books,
		TotalBooks:  len(books),
		CurrentSort: string(sortBy),
	})
}

func (h BooksHandler) NewForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.Logger.With(zap.String("method", "NewForm")), "books/new.html", nil)
}

func (h BooksHandler) Create(w http.ResponseWriter, r *http.Request) {
	cid := uuid.New().String()
	logger := h.Logger.With(zap.String("method", "Create"), zap.String("cid", cid))

	in := bookInput(r)
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	book, err := h.Books.Create(r.Context(), in)
	if err != nil {
		logger.Error(fmt.Errorf("create book: %w", err).Error())
		http.Error(w, "Error adding book", http.StatusInternalServerError)
		return
	}

	h.publish(r.Context(), logger, cid, entities.BookCreated, book.ID, book.Title)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h BooksHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "EditForm"))

	id, err := bookID(r)
	if err != nil {
		http.Error(w, "Book not found", http.StatusNotFound)
		return
	}

	book, err := h.Books.Get(r.Context(), id)
	if err != nil {
		var nf *entities.NotFoundError
		if errors.As(err, &nf) {
			http.Error(w, nf.Message, http.StatusNotFound)
			return
		}
		logger.Error(fmt.Errorf("get book %d: %w", id, err).Error())
		http.Error(w, "Error loading book", http.StatusInternalServerError)
		return
	}

	if book.DateRead.Valid {
		book.DateRead.String = entities.DateOnly(book.DateRead.String)
	}

	h.render(w, logger, "books/edit.html", book)
}

func (h BooksHandler) Update(w http.ResponseWriter, r *http.Request) {
	cid := uuid.New().String()
	logger := h.Logger.With(zap.String("method", "Update"), zap.String("cid", cid))

	id, err := bookID(r)
	if err != nil {
		http.Error(w, "Book not found", http.StatusNotFound)
		return
	}

	in := bookInput(r)
	if err := in.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.Books.Update(r.Context(), id, in); err != nil {
		var nf *entities.NotFoundError
		if errors.As(err, &nf) {
			http.Error(w, nf.Message, http.StatusNotFound)
			return
		}
		logger.Error(fmt.Errorf("update book %d: %w", id, err).Error())
		http.Error(w, "Error updating book", http.StatusInternalServerError)
		return
	}

	h.publish(r.Context(), logger, cid, entities.BookUpdated, id, in.Title)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h BooksHandler) Delete(w http.ResponseWriter, r *http.Request) {
	cid := uuid.New().String()
	logger := h.Logger.With(zap.String("method", "Delete"), zap.String("cid", cid))

	id, err := bookID(r)
	if err != nil {
		http.Error(w, "Book not found", http.StatusNotFound)
		return
	}

	if err := h.Books.Delete(r.Context(), id); err != nil {
		logger.Error(fmt.Errorf("delete book %d: %w", id, err).Error())
		http.Error(w, "Error deleting book", http.StatusInternalServerError)
		return
	}

	h.publish(r.Context(), logger, cid, entities.BookDeleted, id, "")
	http.Redirect(w, r, "/", http.StatusFound)
}

// Cover reports whether Open Library has a large cover for the isbn.
func (h BooksHandler) Cover(w http.ResponseWriter, r *http.Request) {
	logger := h.Logger.With(zap.String("method", "Cover"))

	isbn := chi.URLParam(r, "isbn")
	coverURL := ""
	if isbnPattern.MatchString(isbn) {
		coverURL = h.Covers.URL(isbn, coversHttp.SizeLarge)
	}

	resp := coverResponse{Success: false, Message: "Cover not available"}
	if coverURL != "" {
		ok, err := h.Covers.Exists(r.Context(), coverURL)
		switch {
		case err != nil:
			logger.Info(fmt.Errorf("probe cover %s: %w", isbn, err).Error())
		case ok:
			resp = coverResponse{Success: true, CoverURL: coverURL, ISBN: isbn}
		default:
			resp.Message = "Cover not found"
		}
	}

	if err := writeJSON(w, http.StatusOK, resp); err != nil {
		logger.Error(fmt.Errorf("encode response: %w", err).Error())
	}
}

func (h BooksHandler) publish(ctx context.Context, logger *zap.Logger, cid string, typ entities.BookEventType, id int64, title string) {
	if h.Events == nil {
		return
	}

	event := entities.BookEvent{
		ID:     cid,
		Type:   typ,
		BookID: id,
		Title:  title,
		At:     time.Now().UTC(),
	}
	if err := h.Events.Publish(ctx, event); err != nil {
		logger.Warn(fmt.Errorf("publish %s: %w", typ, err).Error())
	}
}

func (h BooksHandler) render(w http.ResponseWriter, logger *zap.Logger, page string, data any) {
	if err := h.Renderer.HTML(w, http.StatusOK, page, data); err != nil {
		logger.Error(fmt.Errorf("render %s: %w", page, err).Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func bookInput(r *http.Request) entities.BookInput {
	return entities.NewBookInput(
		r.FormValue("title"),
		r.FormValue("author"),
		r.FormValue("isbn"),
		r.FormValue("rating"),
		r.FormValue("date_read"),
		r.FormValue("notes"),
	)
}

func bookID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
