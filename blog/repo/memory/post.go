package memory

import (
	"sync"
	"time"

	"github.com/glbter/capstone/entities"
)

const dateLayout = "1/2/2006"

// PostRepo keeps blog posts in memory; they are lost on restart.
// Ids come from a counter owned by the repo and are never reused.
type PostRepo struct {
	mu     sync.RWMutex
	posts  []entities.Post
	nextID int
	now    func() time.Time
}

func NewPostRepo(now func() time.Time) *PostRepo {
	if now == nil {
		now = time.Now
	}
	return &PostRepo{nextID: 1, now: now}
}

// List returns posts in creation order.
func (r *PostRepo) List() []entities.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]entities.Post, len(r.posts))
	copy(res, r.posts)
	return res
}

func (r *PostRepo) Get(id int) (entities.Post, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		return r.posts[i], true
	}
	return entities.Post{}, false
}

func (r *PostRepo) Create(title, content string) entities.Post {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	post := entities.Post{
		ID:        r.nextID,
		Title:     title,
		Content:   content,
		Date:      now.Format(dateLayout),
		CreatedAt: now,
	}
	r.nextID++
	r.posts = append(r.posts, post)
	return post
}

// Update replaces title and content; it reports false when the post does not exist.
func (r *PostRepo) Update(id int, title, content string) (entities.Post, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return entities.Post{}, false
	}
	r.posts[i].Title = title
	r.posts[i].Content = content
	return r.posts[i], true
}

// Delete removes the post; deleting an unknown id is a no-op.
func (r *PostRepo) Delete(id int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i := r.index(id); i >= 0 {
		r.posts = append(r.posts[:i], r.posts[i+1:]...)
	}
}

func (r *PostRepo) index(id int) int {
	for i, p := range r.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}
