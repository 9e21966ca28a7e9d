package discord

import (
	"strings"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"

	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
	"shikkha/pkg/tz"
)

const (
	embedColor          = 0x1B7F5A
	maxEmbedDescription = 600
)

// PostURL is the public address of post under siteURL, or "" without one.
func PostURL(siteURL string, post *entities.Post) string {
	siteURL = strings.TrimRight(siteURL, "/")
	if siteURL == "" {
		return ""
	}
	return siteURL + "/" + string(post.Locale) + "/blog/" + post.Slug
}

// BuildPostEmbed builds the announcement embed for post, written in the
// post's own language.
func BuildPostEmbed(t output.T, siteURL string, post *entities.Post) *discordgo.MessageEmbed {
	locale := string(post.Locale)
	summary := post.Summary
	if summary == "" {
		summary = post.Body
	}

	var desc strings.Builder
	desc.WriteString(truncate(summary, maxEmbedDescription))
	if url := PostURL(siteURL, post); url != "" {
		desc.WriteString("\n\n[" + t.T(locale, "announce.read_more", nil) + "](" + url + ")")
	}

	embed := &discordgo.MessageEmbed{
		Title:       t.T(locale, "announce.title", map[string]any{"Title": post.Title}),
		URL:         PostURL(siteURL, post),
		Description: desc.String(),
		Color:       embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: t.T(locale, "announce.published", map[string]any{"Date": tz.FormatDateTime(post.PublishedAt)}),
		},
	}
	if !post.PublishedAt.IsZero() {
		embed.Timestamp = post.PublishedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	if post.Author != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: t.T(locale, "announce.by", map[string]any{"Author": post.Author})}
	}
	if post.CoverImageURL != "" {
		embed.Image = &discordgo.MessageEmbedImage{URL: post.CoverImageURL}
	}
	return embed
}

// truncate shortens s to at most n runes, ending with an ellipsis when cut.
func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n-1])) + "…"
}
