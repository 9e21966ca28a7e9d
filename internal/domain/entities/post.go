package entities

import "time"

// Post is a blog entry. The backend owns it; clients only hold copies.
type Post struct {
	ID            uint      `json:"id"`
	Slug          string    `json:"slug"`
	Locale        Locale    `json:"locale"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Body          string    `json:"body"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	Author        string    `json:"author"`
	Published     bool      `json:"published"`
	PublishedAt   time.Time `json:"published_at,omitzero"` // zero = not scheduled
	AnnouncedAt   time.Time `json:"announced_at,omitzero"`
	CreatedAt     time.Time `json:"created_at,omitzero"`
	UpdatedAt     time.Time `json:"updated_at,omitzero"`
}

// IsVisible reports whether the post is publicly readable at now.
func (p *Post) IsVisible(now time.Time) bool {
	return p.Published && !p.PublishedAt.IsZero() && !p.PublishedAt.After(now)
}

// PostInput is the editable subset of a Post submitted by the admin form.
type PostInput struct {
	Slug          string    `json:"slug"`
	Locale        Locale    `json:"locale"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	Body          string    `json:"body"`
	CoverImageURL string    `json:"cover_image_url,omitempty"`
	Published     bool      `json:"published"`
	PublishedAt   time.Time `json:"published_at,omitzero"`
}
