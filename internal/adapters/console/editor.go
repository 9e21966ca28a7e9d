package console

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shikkha/internal/application/flows"
	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
	"shikkha/pkg/tz"
)

func (a *App) createPost(ctx context.Context) {
	a.println(a.scope.T("editor.new_title", nil))
	in, ok := a.fillPost(entities.PostInput{Locale: a.scope.Locale.Get()}, false)
	if !ok {
		return
	}
	if _, err := a.editor.Create(ctx, in); err == nil {
		a.Navigate(output.ViewDashboard)
	}
}

func (a *App) editPost(ctx context.Context, id uint) {
	post, err := a.editor.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		a.println(a.scope.T("article.not_found", nil))
		return
	}
	if err != nil {
		return
	}
	a.println(a.scope.T("editor.edit_title", map[string]any{"ID": post.ID}))
	in, ok := a.fillPost(flows.InputFromPost(post), true)
	if !ok {
		return
	}
	if _, err := a.editor.Update(ctx, id, in); err == nil {
		a.Navigate(output.ViewDashboard)
	}
}

// fillPost prompts for every editable field. With keep set, a blank answer
// keeps the current value.
func (a *App) fillPost(in entities.PostInput, keep bool) (entities.PostInput, bool) {
	fields := []struct {
		key string
		dst *string
	}{
		{"editor.title_prompt", &in.Title},
		{"editor.summary_prompt", &in.Summary},
		{"editor.slug_prompt", &in.Slug},
		{"editor.cover_prompt", &in.CoverImageURL},
	}
	for _, f := range fields {
		v, ok := a.promptKeep(f.key, *f.dst, keep)
		if !ok {
			return in, false
		}
		*f.dst = v
	}

	locale, ok := a.promptKeep("editor.locale_prompt", string(in.Locale), true)
	if !ok {
		return in, false
	}
	in.Locale = entities.Locale(strings.ToLower(locale))

	schedule, ok := a.promptKeep("editor.schedule_prompt", tz.FormatInput(in.PublishedAt), keep)
	if !ok {
		return in, false
	}
	publishedAt, err := tz.ParseDateTime(schedule)
	if err != nil {
		a.scope.NotifyError(err)
		return in, false
	}
	in.PublishedAt = publishedAt

	body, ok := a.readBody(in.Body, keep)
	if !ok {
		return in, false
	}
	in.Body = body
	return in, true
}

// prompt prints the message for key and reads one answer.
func (a *App) prompt(key string) (string, bool) {
	fmt.Fprint(a.out, a.scope.T(key, nil))
	line, ok := a.readLine()
	return strings.TrimSpace(line), ok
}

func (a *App) promptKeep(key, current string, keep bool) (string, bool) {
	if keep && current != "" {
		a.println(a.scope.T("editor.keep_hint", map[string]any{"Value": current}))
	}
	v, ok := a.prompt(key)
	if !ok {
		return "", false
	}
	if v == "" && keep {
		return current, true
	}
	return v, true
}

// readBody reads lines until a line holding a single ".".
func (a *App) readBody(current string, keep bool) (string, bool) {
	if keep && current != "" {
		a.println(a.scope.T("editor.keep_hint", map[string]any{"Value": preview(current)}))
	}
	a.println(a.scope.T("editor.body_prompt", nil))
	var lines []string
	for {
		line, ok := a.readLine()
		if !ok {
			return "", false
		}
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}
	body := strings.Join(lines, "\n")
	if strings.TrimSpace(body) == "" && keep {
		return current, true
	}
	return body, true
}

func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > 40 {
		return string(r[:40]) + "…"
	}
	return s
}
