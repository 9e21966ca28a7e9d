package flows

import (
	"context"
	"errors"
	"strings"

	"shikkha/internal/application/store"
	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// PostEditor runs the admin CRUD calls against the backend. An unauthorized
// answer ends the session, which makes any mounted guard redirect to login.
type PostEditor struct {
	inflight
	scope *store.Scope
	api   output.BlogAPI
}

func NewPostEditor(scope *store.Scope, api output.BlogAPI) *PostEditor {
	return &PostEditor{scope: scope, api: api}
}

// List returns every post, drafts included.
func (e *PostEditor) List(ctx context.Context) ([]entities.Post, error) {
	var posts []entities.Post
	err := e.run(func(token string) error {
		var err error
		posts, err = e.api.ListPosts(ctx, token)
		return err
	})
	return posts, err
}

// Get loads one post. A missing post returns domain.ErrNotFound without a
// toast; the view renders an empty state for it.
func (e *PostEditor) Get(ctx context.Context, id uint) (*entities.Post, error) {
	var post *entities.Post
	err := e.run(func(token string) error {
		var err error
		post, err = e.api.GetPost(ctx, token, id)
		return err
	})
	return post, err
}

func (e *PostEditor) Create(ctx context.Context, in entities.PostInput) (*entities.Post, error) {
	if err := validateInput(in); err != nil {
		e.scope.NotifyError(err)
		return nil, err
	}
	var post *entities.Post
	err := e.run(func(token string) error {
		var err error
		post, err = e.api.CreatePost(ctx, token, in)
		return err
	})
	if err == nil {
		e.scope.Notify(entities.ToastSuccess, "editor.created", nil)
	}
	return post, err
}

func (e *PostEditor) Update(ctx context.Context, id uint, in entities.PostInput) (*entities.Post, error) {
	if err := validateInput(in); err != nil {
		e.scope.NotifyError(err)
		return nil, err
	}
	var post *entities.Post
	err := e.run(func(token string) error {
		var err error
		post, err = e.api.UpdatePost(ctx, token, id, in)
		return err
	})
	if err == nil {
		e.scope.Notify(entities.ToastSuccess, "editor.updated", nil)
	}
	return post, err
}

func (e *PostEditor) Delete(ctx context.Context, id uint) error {
	err := e.run(func(token string) error {
		return e.api.DeletePost(ctx, token, id)
	})
	if err == nil {
		e.scope.Notify(entities.ToastSuccess, "editor.deleted", nil)
	}
	return err
}

// SetPublished flips the published flag of an existing post.
func (e *PostEditor) SetPublished(ctx context.Context, id uint, published bool) (*entities.Post, error) {
	var post *entities.Post
	err := e.run(func(token string) error {
		current, err := e.api.GetPost(ctx, token, id)
		if err != nil {
			return err
		}
		in := InputFromPost(current)
		in.Published = published
		post, err = e.api.UpdatePost(ctx, token, id, in)
		return err
	})
	if err == nil {
		key := "editor.unpublished"
		if published {
			key = "editor.published"
		}
		e.scope.Notify(entities.ToastSuccess, key, nil)
	}
	return post, err
}

// InputFromPost returns the editable fields of p.
func InputFromPost(p *entities.Post) entities.PostInput {
	return entities.PostInput{
		Slug:          p.Slug,
		Locale:        p.Locale,
		Title:         p.Title,
		Summary:       p.Summary,
		Body:          p.Body,
		CoverImageURL: p.CoverImageURL,
		Published:     p.Published,
		PublishedAt:   p.PublishedAt,
	}
}

func (e *PostEditor) run(call func(token string) error) error {
	if err := e.acquire(); err != nil {
		e.scope.NotifyError(err)
		return err
	}
	defer e.release()

	sess, ok := e.scope.Session.Current()
	if !ok {
		e.scope.NotifyError(domain.ErrUnauthorized)
		return domain.ErrUnauthorized
	}
	err := call(sess.Token)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrNotFound):
		return err
	case errors.Is(err, domain.ErrUnauthorized):
		e.scope.NotifyError(err)
		e.scope.Session.Logout()
		return err
	default:
		e.scope.NotifyError(err)
		return err
	}
}

func validateInput(in entities.PostInput) error {
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Body) == "" {
		return domain.ErrInvalidInput
	}
	if in.Locale != "" && !in.Locale.Valid() {
		return domain.ErrUnsupportedLocale
	}
	return nil
}
