package input

import (
	"context"

	"shikkha/internal/domain/entities"
)

type PostUseCase interface {
	ListPublished(ctx context.Context, locale entities.Locale) ([]entities.Post, error)
	GetPublished(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error)
	ListAll(ctx context.Context) ([]entities.Post, error)
	Get(ctx context.Context, id uint) (*entities.Post, error)
	Create(ctx context.Context, author string, in entities.PostInput) (*entities.Post, error)
	Update(ctx context.Context, id uint, in entities.PostInput) (*entities.Post, error)
	Delete(ctx context.Context, id uint) error
}
