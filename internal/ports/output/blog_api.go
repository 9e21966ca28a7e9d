package output

import (
	"context"

	"shikkha/internal/domain/entities"
)

// Authenticator performs the credential check for the admin session store.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (entities.AdminSession, error)
}

// BlogAPI is the REST backend as seen by the admin client. Admin calls take
// the bearer token of the current session; an expired or rejected token
// yields an error wrapping domain.ErrUnauthorized.
type BlogAPI interface {
	Authenticator
	ListPublished(ctx context.Context, locale entities.Locale) ([]entities.Post, error)
	GetPublished(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error)
	ListPosts(ctx context.Context, token string) ([]entities.Post, error)
	GetPost(ctx context.Context, token string, id uint) (*entities.Post, error)
	CreatePost(ctx context.Context, token string, in entities.PostInput) (*entities.Post, error)
	UpdatePost(ctx context.Context, token string, id uint, in entities.PostInput) (*entities.Post, error)
	DeletePost(ctx context.Context, token string, id uint) error
}
