package database

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
)

const postColumns = `id, slug, locale, title, summary, body, cover_image_url, author,
	published, published_at, announced_at, created_at, updated_at`

// pgtypeTimestamptzToTime returns t.Time when Valid, else zero time.
func pgtypeTimestamptzToTime(t pgtype.Timestamptz) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time
}

// timeToPgtype stores the zero time as NULL.
func timeToPgtype(t time.Time) pgtype.Timestamptz {
	if t.IsZero() {
		return pgtype.Timestamptz{}
	}
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func scanPost(row pgx.Row) (entities.Post, error) {
	var (
		p                                               entities.Post
		id                                              int64
		locale                                          string
		publishedAt, announcedAt, createdAt, updatedAt pgtype.Timestamptz
	)
	err := row.Scan(&id, &p.Slug, &locale, &p.Title, &p.Summary, &p.Body, &p.CoverImageURL, &p.Author,
		&p.Published, &publishedAt, &announcedAt, &createdAt, &updatedAt)
	if err != nil {
		return entities.Post{}, err
	}
	p.ID = uint(id)
	p.Locale = entities.Locale(locale)
	p.PublishedAt = pgtypeTimestamptzToTime(publishedAt)
	p.AnnouncedAt = pgtypeTimestamptzToTime(announcedAt)
	p.CreatedAt = pgtypeTimestamptzToTime(createdAt)
	p.UpdatedAt = pgtypeTimestamptzToTime(updatedAt)
	return p, nil
}

func collectPosts(rows pgx.Rows) ([]entities.Post, error) {
	defer rows.Close()
	out := []entities.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// translateError maps driver errors onto domain errors.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}
