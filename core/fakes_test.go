package core

import (
	"context"
	"errors"
	"sync"
	"time"
)

// errDBDown stands in for a store-level failure in tests.
var errDBDown = errors.New("connection refused")

// In-memory doubles used across the package tests. memUserRepo enforces
// username uniqueness under its mutex, mirroring the unique index the real
// store relies on.

type memUserRepo struct {
	mu     sync.Mutex
	nextID int64
	byName map[string]*UserRecord
	byID   map[int64]*UserRecord

	// failWith, when set, is returned by every call to simulate an
	// unreachable store.
	failWith error
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byName: map[string]*UserRecord{}, byID: map[int64]*UserRecord{}}
}

func (r *memUserRepo) Create(_ context.Context, username, passwordHash string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return 0, r.failWith
	}
	if _, exists := r.byName[username]; exists {
		return 0, ErrDuplicateUsername
	}
	r.nextID++
	u := &UserRecord{ID: r.nextID, Username: username, PasswordHash: passwordHash, CreatedAt: time.Now()}
	r.byName[username] = u
	r.byID[u.ID] = u
	return u.ID, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*UserRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byName[username]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &User{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}, nil
}

func (r *memUserRepo) UpdatePasswordHash(_ context.Context, id int64, passwordHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	u, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if u, ok := r.byID[id]; ok {
		delete(r.byName, u.Username)
		delete(r.byID, id)
	}
	return nil
}

func (r *memUserRepo) HasAny(_ context.Context) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return false, r.failWith
	}
	return len(r.byID) > 0, nil
}

type memHeaderRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []Header
}

func (r *memHeaderRepo) List(context.Context) ([]Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Header, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memHeaderRepo) Create(_ context.Context, h Header) (*Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	h.ID = r.nextID
	h.CreatedAt = time.Now()
	h.UpdatedAt = h.CreatedAt
	r.items = append(r.items, h)
	return &h, nil
}

func (r *memHeaderRepo) Update(_ context.Context, id int64, h Header) (*Header, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			h.ID = id
			h.CreatedAt = r.items[i].CreatedAt
			h.UpdatedAt = time.Now()
			r.items[i] = h
			return &h, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memHeaderRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memAboutRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []About
}

func (r *memAboutRepo) List(context.Context) ([]About, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]About, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memAboutRepo) Create(_ context.Context, a About) (*About, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.items = append(r.items, a)
	return &a, nil
}

func (r *memAboutRepo) Update(_ context.Context, id int64, a About) (*About, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			a.ID = id
			r.items[i] = a
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memAboutRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memFooterRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []Footer
}

func (r *memFooterRepo) List(context.Context) ([]Footer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Footer, len(r.items))
	copy(out, r.items)
	return out, nil
}

func (r *memFooterRepo) Create(_ context.Context, f Footer) (*Footer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = r.nextID
	r.items = append(r.items, f)
	return &f, nil
}

func (r *memFooterRepo) Update(_ context.Context, id int64, f Footer) (*Footer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			f.ID = id
			r.items[i] = f
			return &f, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memFooterRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memBlogRepo struct {
	mu     sync.Mutex
	nextID int64
	items  []BlogPost
}

func (r *memBlogRepo) List(_ context.Context, page, perPage int) ([]BlogPost, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	total := len(r.items)
	start := (page - 1) * perPage
	if start >= total {
		return []BlogPost{}, total, nil
	}
	end := start + perPage
	if end > total {
		end = total
	}
	out := make([]BlogPost, end-start)
	copy(out, r.items[start:end])
	return out, total, nil
}

func (r *memBlogRepo) Get(_ context.Context, id int64) (*BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			cp := r.items[i]
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memBlogRepo) Create(_ context.Context, p BlogPost) (*BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	p.ID = r.nextID
	p.PublishedAt = time.Now()
	r.items = append(r.items, p)
	return &p, nil
}

func (r *memBlogRepo) Update(_ context.Context, id int64, p BlogPost) (*BlogPost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			p.ID = id
			r.items[i] = p
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memBlogRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type memImageStore struct {
	mu    sync.Mutex
	items map[string]Image
}

func newMemImageStore() *memImageStore {
	return &memImageStore{items: map[string]Image{}}
}

func (s *memImageStore) Save(_ context.Context, contentType string, data []byte) (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img := Image{ID: "img-1", ContentType: contentType, Data: data, CreatedAt: time.Now()}
	for i := 2; ; i++ {
		if _, exists := s.items[img.ID]; !exists {
			break
		}
		img.ID = "img-" + string(rune('0'+i))
	}
	s.items[img.ID] = img
	return &img, nil
}

func (s *memImageStore) Get(_ context.Context, id string) (*Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	img, ok := s.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &img, nil
}

func (s *memImageStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}
