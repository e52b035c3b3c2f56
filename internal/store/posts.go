// Package store holds the in-memory post list the dashboard works on.
// The list is filled once from the posts API and only ever shrunk or
// edited in place afterwards; nothing is written back to the server.
package store

import "sync"

// Post is a title/body record keyed by the integer id assigned by the
// posts API. Ids are unique within a load and never reassigned locally.
type Post struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// PostStore owns the ordered post list plus the load-error flag the
// renderer turns into a single error row. All lookups are linear; the
// list tops out around a hundred entries.
type PostStore struct {
	mu      sync.RWMutex
	posts   []Post
	loadErr bool
}

// NewPostStore returns an empty store.
func NewPostStore() *PostStore {
	return &PostStore{}
}

// Replace swaps in a freshly loaded post list and clears any prior
// load error.
func (s *PostStore) Replace(posts []Post) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = make([]Post, len(posts))
	copy(s.posts, posts)
	s.loadErr = false
}

// SetLoadErr records that the initial load failed. The store keeps
// whatever it had (normally nothing).
func (s *PostStore) SetLoadErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = true
}

// LoadErr reports whether the last load attempt failed.
func (s *PostStore) LoadErr() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// All returns a copy of the current list in load order.
func (s *PostStore) All() []Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Len returns the number of posts currently held.
func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

// FindByID returns the post with the given id, or false if absent.
func (s *PostStore) FindByID(id int) (Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.ID == id {
			return p, true
		}
	}
	return Post{}, false
}

// UpdateByID replaces title and body of the matching post in place.
// A missing id is a silent no-op.
func (s *PostStore) UpdateByID(id int, title, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts[i].Title = title
			s.posts[i].Body = body
			return
		}
	}
}

// RemoveByID removes the matching post, shrinking the list by at most
// one. A missing id is a silent no-op.
func (s *PostStore) RemoveByID(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.posts {
		if s.posts[i].ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			return
		}
	}
}

// Truncate cuts s to at most max runes, appending "..." when a cut
// happened. Strings already within the limit come back unchanged.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
