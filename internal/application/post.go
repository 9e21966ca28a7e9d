package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/input"
	"shikkha/internal/ports/output"
)

var _ input.PostUseCase = (*PostService)(nil)

const maxSlugLength = 96

type PostService struct {
	postRepo output.PostRepository
	now      func() time.Time
}

func NewPostService(postRepo output.PostRepository) *PostService {
	return &PostService{postRepo: postRepo, now: time.Now}
}

// ListPublished returns the posts of locale visible right now, newest first.
func (s *PostService) ListPublished(ctx context.Context, locale entities.Locale) ([]entities.Post, error) {
	if !locale.Valid() {
		return nil, domain.ErrUnsupportedLocale
	}
	return s.postRepo.ListPublished(ctx, locale, s.now())
}

// GetPublished returns a visible post; drafts and scheduled posts read as
// not found.
func (s *PostService) GetPublished(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error) {
	if !locale.Valid() {
		return nil, domain.ErrUnsupportedLocale
	}
	post, err := s.postRepo.FindBySlug(ctx, locale, strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if !post.IsVisible(s.now()) {
		return nil, domain.ErrNotFound
	}
	return post, nil
}

func (s *PostService) ListAll(ctx context.Context) ([]entities.Post, error) {
	return s.postRepo.ListAll(ctx)
}

func (s *PostService) Get(ctx context.Context, id uint) (*entities.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *PostService) Create(ctx context.Context, author string, in entities.PostInput) (*entities.Post, error) {
	post := &entities.Post{Author: strings.TrimSpace(author)}
	if err := s.apply(post, in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, post); err != nil {
		return nil, err
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, id uint, in entities.PostInput) (*entities.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(post, in); err != nil {
		return nil, err
	}
	if err := s.ensureUniqueSlug(ctx, post); err != nil {
		return nil, err
	}
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id uint) error {
	return s.postRepo.Delete(ctx, id)
}

// apply validates in and copies it onto post. Publishing without a date
// publishes now; unpublishing keeps the date for a later re-publish.
func (s *PostService) apply(post *entities.Post, in entities.PostInput) error {
	title := strings.TrimSpace(in.Title)
	body := strings.TrimSpace(in.Body)
	if title == "" || body == "" {
		return fmt.Errorf("%w: title and body are required", domain.ErrInvalidInput)
	}

	locale := in.Locale
	if locale == "" {
		locale = entities.DefaultLocale()
	}
	if !locale.Valid() {
		return domain.ErrUnsupportedLocale
	}

	slug := Slugify(in.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return fmt.Errorf("%w: slug is empty", domain.ErrInvalidInput)
	}

	post.Slug = slug
	post.Locale = locale
	post.Title = title
	post.Summary = strings.TrimSpace(in.Summary)
	post.Body = body
	post.CoverImageURL = strings.TrimSpace(in.CoverImageURL)
	post.Published = in.Published
	if !in.PublishedAt.IsZero() {
		post.PublishedAt = in.PublishedAt
	}
	if post.Published && post.PublishedAt.IsZero() {
		post.PublishedAt = s.now()
	}
	return nil
}

func (s *PostService) ensureUniqueSlug(ctx context.Context, post *entities.Post) error {
	existing, err := s.postRepo.FindBySlug(ctx, post.Locale, post.Slug)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return nil
	case err != nil:
		return err
	case existing.ID != post.ID:
		return fmt.Errorf("%w: slug %q is taken in %s", domain.ErrConflict, post.Slug, post.Locale)
	}
	return nil
}

// Slugify lowercases s and keeps letters, combining marks (Bengali vowel
// signs) and digits, joining every other run of characters with one hyphen.
func Slugify(s string) string {
	var b strings.Builder
	pendingHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			if pendingHyphen && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingHyphen = false
			b.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}
	out := b.String()
	if len(out) > maxSlugLength {
		out = truncateRunes(out, maxSlugLength)
	}
	return strings.Trim(out, "-")
}

// truncateRunes cuts s to at most n bytes without splitting a rune.
func truncateRunes(s string, n int) string {
	cut := 0
	for i := range s {
		if i > n {
			break
		}
		cut = i
	}
	if len(s) <= n {
		return s
	}
	return s[:cut]
}
