package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

var _ output.PostRepository = (*PostRepository)(nil)

// DB is the subset of pgxpool.Pool used by the repositories.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ DB = (*pgxpool.Pool)(nil)

type PostRepository struct {
	db DB
}

func NewPostRepository(db DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *entities.Post) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO posts (slug, locale, title, summary, body, cover_image_url, author, published, published_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+postColumns,
		post.Slug, string(post.Locale), post.Title, post.Summary, post.Body, post.CoverImageURL,
		post.Author, post.Published, timeToPgtype(post.PublishedAt))
	created, err := scanPost(row)
	if err != nil {
		return fmt.Errorf("create post: %w", translateError(err))
	}
	*post = created
	return nil
}

func (r *PostRepository) FindByID(ctx context.Context, id uint) (*entities.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, int64(id))
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("get post by id: %w", translateError(err))
	}
	return &p, nil
}

func (r *PostRepository) FindBySlug(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM posts WHERE locale = $1 AND slug = $2`,
		string(locale), slug)
	p, err := scanPost(row)
	if err != nil {
		return nil, fmt.Errorf("get post by slug: %w", translateError(err))
	}
	return &p, nil
}

func (r *PostRepository) ListAll(ctx context.Context) ([]entities.Post, error) {
	rows, err := r.db.Query(ctx, `SELECT `+postColumns+` FROM posts ORDER BY updated_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) ListPublished(ctx context.Context, locale entities.Locale, now time.Time) ([]entities.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE locale = $1 AND published AND published_at IS NOT NULL AND published_at <= $2
		ORDER BY published_at DESC, id DESC`,
		string(locale), now)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("list published posts: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) FindDueForAnnouncement(ctx context.Context, now time.Time) ([]entities.Post, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+postColumns+` FROM posts
		WHERE published AND announced_at IS NULL AND published_at IS NOT NULL AND published_at <= $1
		ORDER BY published_at ASC, id ASC`,
		now)
	if err != nil {
		return nil, fmt.Errorf("find posts due for announcement: %w", err)
	}
	posts, err := collectPosts(rows)
	if err != nil {
		return nil, fmt.Errorf("find posts due for announcement: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) MarkAnnounced(ctx context.Context, id uint, at time.Time) error {
	tag, err := r.db.Exec(ctx, `UPDATE posts SET announced_at = $2 WHERE id = $1`, int64(id), at)
	if err != nil {
		return fmt.Errorf("mark post announced: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("mark post announced: %w", domain.ErrNotFound)
	}
	return nil
}

func (r *PostRepository) Update(ctx context.Context, post *entities.Post) error {
	row := r.db.QueryRow(ctx, `
		UPDATE posts SET
			slug = $2, locale = $3, title = $4, summary = $5, body = $6,
			cover_image_url = $7, published = $8, published_at = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING `+postColumns,
		int64(post.ID), post.Slug, string(post.Locale), post.Title, post.Summary, post.Body,
		post.CoverImageURL, post.Published, timeToPgtype(post.PublishedAt))
	updated, err := scanPost(row)
	if err != nil {
		return fmt.Errorf("update post: %w", translateError(err))
	}
	*post = updated
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id uint) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, int64(id))
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete post: %w", domain.ErrNotFound)
	}
	return nil
}
