package console

import (
	"context"
	"strings"
	"time"

	"shikkha/internal/application/store"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
	"shikkha/pkg/tz"
)

func (a *App) render(ctx context.Context) {
	switch a.View() {
	case output.ViewHome:
		a.renderHome(ctx)
	case output.ViewLogin:
		a.println(a.scope.T("login.title", nil))
		a.println(a.scope.T("login.hint", nil))
	case output.ViewDashboard:
		if a.guard.State() != store.GuardAuthorized {
			a.println(a.scope.T("guard.checking", nil))
			return
		}
		a.renderDashboard(ctx)
	case output.ViewEditor:
		a.println(a.scope.T("nav.current", map[string]any{"View": a.viewName(output.ViewEditor)}))
	}
}

func (a *App) renderHome(ctx context.Context) {
	posts := a.reader.Latest(ctx)
	a.println("== " + a.scope.T("home.title", nil) + " ==")
	if len(posts) == 0 {
		a.println(a.scope.T("home.empty", nil))
		return
	}
	for _, p := range posts {
		a.println(a.scope.T("home.entry", map[string]any{
			"Slug":  p.Slug,
			"Title": p.Title,
			"Date":  tz.FormatDateTime(p.PublishedAt),
		}))
	}
	a.println(a.scope.T("home.read_hint", nil))
}

func (a *App) renderArticle(ctx context.Context, slug string) {
	post := a.reader.Read(ctx, slug)
	if post == nil {
		a.println(a.scope.T("article.not_found", nil))
		return
	}
	a.println("== " + post.Title + " ==")
	if post.Author != "" {
		a.println(a.scope.T("article.by", map[string]any{"Author": post.Author}) + " · " + tz.FormatDateTime(post.PublishedAt))
	}
	if post.Summary != "" {
		a.println("")
		a.println(post.Summary)
	}
	a.println("")
	a.println(post.Body)
}

func (a *App) renderDashboard(ctx context.Context) {
	posts, err := a.editor.List(ctx)
	if err != nil {
		return
	}
	a.println("== " + a.scope.T("dashboard.title", nil) + " (" + a.scope.Plural("dashboard.count", len(posts), nil) + ") ==")
	if len(posts) == 0 {
		a.println(a.scope.T("dashboard.empty", nil))
		return
	}
	now := time.Now()
	for _, p := range posts {
		a.println(a.scope.T("dashboard.row", map[string]any{
			"ID":     p.ID,
			"Locale": string(p.Locale),
			"Status": a.scope.T("dashboard."+postStatus(&p, now), nil),
			"Title":  p.Title,
		}))
	}
}

// postStatus names the lifecycle stage of p: draft, scheduled or live.
func postStatus(p *entities.Post, now time.Time) string {
	switch {
	case !p.Published:
		return "draft"
	case p.IsVisible(now):
		return "live"
	default:
		return "scheduled"
	}
}

func (a *App) renderNewToasts() {
	a.mu.Lock()
	last := a.lastShow
	a.mu.Unlock()

	for _, t := range a.scope.Toasts.List() {
		if t.ID <= last {
			continue
		}
		a.println(a.toastLine(t))
		last = t.ID
	}

	a.mu.Lock()
	a.lastShow = last
	a.mu.Unlock()
}

func (a *App) renderAllToasts() {
	toasts := a.scope.Toasts.List()
	a.println("== " + a.scope.T("toasts.heading", nil) + " ==")
	if len(toasts) == 0 {
		a.println(a.scope.T("toasts.empty", nil))
		return
	}
	for _, t := range toasts {
		a.println(a.toastLine(t))
	}
	a.mu.Lock()
	if last := toasts[len(toasts)-1].ID; last > a.lastShow {
		a.lastShow = last
	}
	a.mu.Unlock()
}

func (a *App) toastLine(t entities.Toast) string {
	return a.scope.T("toasts.entry", map[string]any{
		"ID":      uint64(t.ID),
		"Kind":    strings.ToUpper(string(t.Kind)),
		"Message": t.Message,
	})
}
