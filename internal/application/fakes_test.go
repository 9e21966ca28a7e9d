package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
)

type memPostRepo struct {
	mu     sync.Mutex
	posts  map[uint]entities.Post
	nextID uint
	marked []uint
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[uint]entities.Post{}}
}

func (r *memPostRepo) Create(_ context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Locale == post.Locale && p.Slug == post.Slug {
			return domain.ErrConflict
		}
	}
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	r.posts[post.ID] = *post
	return nil
}

func (r *memPostRepo) FindByID(_ context.Context, id uint) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *memPostRepo) FindBySlug(_ context.Context, locale entities.Locale, slug string) (*entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.Locale == locale && p.Slug == slug {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memPostRepo) ListAll(context.Context) ([]entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.Post{}
	for _, p := range r.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memPostRepo) ListPublished(_ context.Context, locale entities.Locale, now time.Time) ([]entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.Post{}
	for _, p := range r.posts {
		if p.Locale == locale && p.IsVisible(now) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (r *memPostRepo) FindDueForAnnouncement(_ context.Context, now time.Time) ([]entities.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []entities.Post{}
	for _, p := range r.posts {
		if p.IsVisible(now) && p.AnnouncedAt.IsZero() {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memPostRepo) MarkAnnounced(_ context.Context, id uint, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.AnnouncedAt = at
	r.posts[id] = p
	r.marked = append(r.marked, id)
	return nil
}

func (r *memPostRepo) Update(_ context.Context, post *entities.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[post.ID]; !ok {
		return domain.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	r.posts[post.ID] = *post
	return nil
}

func (r *memPostRepo) Delete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

type memAdminRepo struct {
	mu     sync.Mutex
	admins map[string]entities.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: map[string]entities.Admin{}}
}

func (r *memAdminRepo) FindByEmail(_ context.Context, email string) (*entities.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.admins[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (r *memAdminRepo) Upsert(_ context.Context, admin *entities.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.admins[admin.Email]; ok {
		admin.ID = existing.ID
	} else {
		admin.ID = uint(len(r.admins) + 1)
	}
	r.admins[admin.Email] = *admin
	return nil
}
