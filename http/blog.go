package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/glbter/capstone/blog/repo/memory"
	"github.com/glbter/capstone/entities"
)

type BlogHandler struct {
	Logger   *zap.Logger
	Posts    *memory.PostRepo
	Renderer *Renderer
}

type blogIndexPage struct {
	Posts []entities.Post
}

func (h BlogHandler) Register(r chi.Router) {
	r.Get("/", h.List)
	r.Get("/new", h.NewForm)
	r.Post("/new", h.Create)
	r.Get("/edit/{id}", h.EditForm)
	r.Post("/edit/{id}", h.Update)
	r.Get("/delete/{id}", h.Delete)
	r.Get("/post/{id}", h.Show)
}

func (h BlogHandler) List(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.Logger.With(zap.String("method", "List")), "blog/index.html", blogIndexPage{Posts: h.Posts.List()})
}

func (h BlogHandler) NewForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, h.Logger.With(zap.String("method", "NewForm")), "blog/new.html", nil)
}

func (h BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	post := h.Posts.Create(r.FormValue("title"), r.FormValue("content"))
	h.Logger.Info("post created", zap.String("method", "Create"), zap.Int("id", post.ID))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h BlogHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	post, ok := h.lookup(r)
	if !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	h.render(w, h.Logger.With(zap.String("method", "EditForm")), "blog/edit.html", post)
}

func (h BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}

	if _, ok := h.Posts.Update(id, r.FormValue("title"), r.FormValue("content")); !ok {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if id, err := postID(r); err == nil {
		h.Posts.Delete(id)
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h BlogHandler) Show(w http.ResponseWriter, r *http.Request) {
	post, ok := h.lookup(r)
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, h.Logger.With(zap.String("method", "Show")), "blog/post.html", post)
}

func (h BlogHandler) lookup(r *http.Request) (entities.Post, bool) {
	id, err := postID(r)
	if err != nil {
		return entities.Post{}, false
	}
	return h.Posts.Get(id)
}

func (h BlogHandler) render(w http.ResponseWriter, logger *zap.Logger, page string, data any) {
	if err := h.Renderer.HTML(w, http.StatusOK, page, data); err != nil {
		logger.Error(fmt.Errorf("render %s: %w", page, err).Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func postID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
