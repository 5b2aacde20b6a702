package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/glbter/capstone/entities"
)

func openTestRepo(t *testing.T) *BookRepo {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "books.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func mustCreate(t *testing.T, repo *BookRepo, title, rating, dateRead string) entities.Book {
	t.Helper()
	b, err := repo.Create(context.Background(), entities.NewBookInput(title, "Author", "", rating, dateRead, ""))
	if err != nil {
		t.Fatalf("Create %s: %v", title, err)
	}
	return b
}

func titles(books []entities.Book) []string {
	res := make([]string, len(books))
	for i, b := range books {
		res[i] = b.Title
	}
	return res
}

func assertOrder(t *testing.T, books []entities.Book, want ...string) {
	t.Helper()
	got := titles(books)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	in := entities.NewBookInput("Dune", "Frank Herbert", "9780441172719", "5", "2024-02-01T00:00:00Z", "Spice.")
	created, err := repo.Create(ctx, in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Dune" || got.Author != "Frank Herbert" {
		t.Errorf("unexpected book %+v", got)
	}
	if got.ISBN.ValueOrZero() != "9780441172719" {
		t.Errorf("unexpected isbn %v", got.ISBN)
	}
	if got.Rating.ValueOrZero() != 5 {
		t.Errorf("unexpected rating %v", got.Rating)
	}
	if got.DateRead.ValueOrZero() != "2024-02-01" {
		t.Errorf("unexpected date_read %v", got.DateRead)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestOptionalFieldsAreNull(t *testing.T) {
	repo := openTestRepo(t)

	created, err := repo.Create(context.Background(), entities.NewBookInput("Emma", "Jane Austen", "", "", "", ""))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ISBN.Valid || created.Rating.Valid || created.DateRead.Valid || created.Notes.Valid {
		t.Errorf("expected optional fields to be null, got %+v", created)
	}
}

func TestListSortedByRatingPutsNullLast(t *testing.T) {
	repo := openTestRepo(t)
	mustCreate(t, repo, "unrated", "", "")
	mustCreate(t, repo, "three", "3", "")
	mustCreate(t, repo, "five", "5", "")

	books, err := repo.List(context.Background(), entities.SortByRating)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertOrder(t, books, "five", "three", "unrated")
}

func TestListSortedByDateReadByDefault(t *testing.T) {
	repo := openTestRepo(t)
	mustCreate(t, repo, "never", "", "")
	mustCreate(t, repo, "old", "", "2020-05-01")
	mustCreate(t, repo, "recent", "", "2024-11-30")

	books, err := repo.List(context.Background(), entities.ParseBookSort(""))
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertOrder(t, books, "recent", "old", "never")
}

func TestListSortedByTitleAndCreation(t *testing.T) {
	repo := openTestRepo(t)
	mustCreate(t, repo, "Beta", "", "")
	mustCreate(t, repo, "Alpha", "", "")
	mustCreate(t, repo, "Gamma", "", "")

	books, err := repo.List(context.Background(), entities.SortByTitle)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertOrder(t, books, "Alpha", "Beta", "Gamma")

	// created_at has second precision, so ties fall back to the newest id.
	books, err = repo.List(context.Background(), entities.SortByCreated)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	assertOrder(t, books, "Gamma", "Alpha", "Beta")
}

func TestUpdate(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	b := mustCreate(t, repo, "Draft", "2", "")

	in := entities.NewBookInput("Final", "Someone", "123", "", "2023-01-01", "notes")
	if err := repo.Update(ctx, b.ID, in); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := repo.Get(ctx, b.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Final" || got.Rating.Valid || got.Notes.ValueOrZero() != "notes" {
		t.Errorf("unexpected book after update %+v", got)
	}
}

func TestMissingBookIsNotFound(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	var nf *entities.NotFoundError
	if _, err := repo.Get(ctx, 404); !errors.As(err, &nf) {
		t.Errorf("expected not found on Get, got %v", err)
	}
	if err := repo.Update(ctx, 404, entities.NewBookInput("a", "b", "", "", "", "")); !errors.As(err, &nf) {
		t.Errorf("expected not found on Update, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()
	b := mustCreate(t, repo, "Gone", "", "")

	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, b.ID); err != nil {
		t.Fatalf("second Delete: %v", err)
	}

	books, err := repo.List(ctx, entities.SortByTitle)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected no books, got %v", titles(books))
	}
}
