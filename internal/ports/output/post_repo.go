package output

import (
	"context"
	"time"

	"shikkha/internal/domain/entities"
)

type PostRepository interface {
	Create(ctx context.Context, post *entities.Post) error
	FindByID(ctx context.Context, id uint) (*entities.Post, error)
	FindBySlug(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error)
	ListAll(ctx context.Context) ([]entities.Post, error)
	ListPublished(ctx context.Context, locale entities.Locale, now time.Time) ([]entities.Post, error)
	FindDueForAnnouncement(ctx context.Context, now time.Time) ([]entities.Post, error)
	MarkAnnounced(ctx context.Context, id uint, at time.Time) error
	Update(ctx context.Context, post *entities.Post) error
	Delete(ctx context.Context, id uint) error
}
