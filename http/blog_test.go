package http

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/glbter/capstone/blog/repo/memory"
)

func newBlogServer(t *testing.T) (*httptest.Server, *memory.PostRepo) {
	t.Helper()
	posts := memory.NewPostRepo(func() time.Time {
		return time.Date(2025, time.March, 7, 12, 0, 0, 0, time.UTC)
	})
	handler := BlogHandler{
		Logger:   zap.NewNop(),
		Posts:    posts,
		Renderer: newTestRenderer(t),
	}

	r := chi.NewRouter()
	handler.Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, posts
}

// noRedirect returns a client that reports redirects instead of following them.
func noRedirect() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func assertRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected redirect to %s, got %s", location, got)
	}
}

func TestBlogLifecycle(t *testing.T) {
	srv, posts := newBlogServer(t)
	client := noRedirect()

	resp, err := client.PostForm(srv.URL+"/new", url.Values{"title": {"Hello"}, "content": {"First post"}})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	assertRedirect(t, resp, "/")

	list := posts.List()
	if len(list) != 1 || list[0].ID != 1 {
		t.Fatalf("expected one post with id 1, got %+v", list)
	}

	resp, err = client.Get(srv.URL + "/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Hello") || !strings.Contains(body, "3/7/2025") {
		t.Error("expected the post title and date in the list")
	}

	resp, err = client.PostForm(srv.URL+"/edit/1", url.Values{"title": {"Hello again"}, "content": {"Edited"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	assertRedirect(t, resp, "/")

	resp, err = client.Get(srv.URL + "/post/1")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Hello again") || !strings.Contains(body, "Edited") {
		t.Error("expected the edited post")
	}

	resp, err = client.Get(srv.URL + "/delete/1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertRedirect(t, resp, "/")

	if len(posts.List()) != 0 {
		t.Error("expected the post to be gone")
	}
}

func TestBlogUnknownPost(t *testing.T) {
	srv, _ := newBlogServer(t)
	client := noRedirect()

	resp, err := client.Get(srv.URL + "/post/42")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	assertRedirect(t, resp, "/")

	resp, err = client.Get(srv.URL + "/edit/42")
	if err != nil {
		t.Fatalf("edit form: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on edit form, got %d", resp.StatusCode)
	}

	resp, err = client.PostForm(srv.URL+"/edit/42", url.Values{"title": {"x"}})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 on update, got %d", resp.StatusCode)
	}

	resp, err = client.Get(srv.URL + "/delete/42")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	assertRedirect(t, resp, "/")
}
