package flows

import (
	"context"
	"errors"

	"shikkha/internal/application/store"
	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// Reader fetches published content in the active locale.
type Reader struct {
	scope *store.Scope
	api   output.BlogAPI
}

func NewReader(scope *store.Scope, api output.BlogAPI) *Reader {
	return &Reader{scope: scope, api: api}
}

// Latest lists published posts. Failures are toasted and yield an empty list.
func (r *Reader) Latest(ctx context.Context) []entities.Post {
	posts, err := r.api.ListPublished(ctx, r.scope.Locale.Get())
	if err != nil {
		r.scope.NotifyError(err)
		return nil
	}
	return posts
}

// Read returns one published post, or nil when it does not exist.
func (r *Reader) Read(ctx context.Context, slug string) *entities.Post {
	post, err := r.api.GetPublished(ctx, r.scope.Locale.Get(), slug)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.scope.NotifyError(err)
		}
		return nil
	}
	return post
}
