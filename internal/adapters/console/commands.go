package console

import (
	"context"
	"strconv"
	"strings"

	"shikkha/internal/application/flows"
	"shikkha/internal/application/store"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// execute runs one command line and reports whether the session should end.
func (a *App) execute(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "help", "?":
		a.println(a.scope.T("console.help", nil))
	case "quit", "exit":
		return true
	case "lang":
		a.switchLanguage(args)
	case "login":
		a.doLogin(ctx)
	case "logout":
		flows.Logout(a.scope, a)
	case "go":
		a.goTo(args)
	case "posts":
		a.renderHome(ctx)
	case "read":
		if len(args) == 0 {
			a.println(a.scope.T("home.read_hint", nil))
			break
		}
		a.renderArticle(ctx, args[0])
	case "new":
		if a.enterAdmin(output.ViewEditor) {
			a.createPost(ctx)
		}
	case "edit":
		if id, ok := a.parseID(cmd, args); ok && a.enterAdmin(output.ViewEditor) {
			a.editPost(ctx, id)
		}
	case "delete":
		if id, ok := a.parseID(cmd, args); ok && a.enterAdmin(output.ViewDashboard) {
			if err := a.editor.Delete(ctx, id); err == nil {
				a.markDirty()
			}
		}
	case "publish", "unpublish":
		if id, ok := a.parseID(cmd, args); ok && a.enterAdmin(output.ViewDashboard) {
			if _, err := a.editor.SetPublished(ctx, id, cmd == "publish"); err == nil {
				a.markDirty()
			}
		}
	case "toasts":
		a.renderAllToasts()
	case "dismiss":
		if id, ok := a.parseID(cmd, args); ok {
			a.scope.Toasts.Dismiss(entities.ToastID(id))
		}
	default:
		a.println(a.scope.T("console.unknown", map[string]any{"Command": cmd}))
	}
	return false
}

func (a *App) switchLanguage(args []string) {
	switch len(args) {
	case 0:
		a.scope.Locale.Toggle()
	case 1:
		locale, ok := entities.ParseLocale(args[0])
		if !ok {
			a.println(a.scope.T("lang.usage", nil))
			return
		}
		a.scope.Locale.Set(locale)
	default:
		a.println(a.scope.T("lang.usage", nil))
		return
	}
	locale := a.scope.Locale.Get()
	a.println(a.scope.T("lang.switched", map[string]any{"Name": a.scope.T("lang."+string(locale), nil)}))
}

func (a *App) doLogin(ctx context.Context) {
	if sess, ok := a.scope.Session.Current(); ok && store.IsAdmin(sess) {
		a.println(a.scope.T("login.already", map[string]any{"Name": sess.User.Name}))
		return
	}
	if a.View() != output.ViewLogin {
		a.Navigate(output.ViewLogin)
	}
	a.println(a.scope.T("login.title", nil))
	email, ok := a.prompt("login.email_prompt")
	if !ok {
		return
	}
	password, ok := a.prompt("login.password_prompt")
	if !ok {
		return
	}
	_ = a.login.Submit(ctx, email, password)
}

func (a *App) goTo(args []string) {
	if len(args) != 1 {
		a.println(a.scope.T("nav.current", map[string]any{"View": a.viewName(a.View())}))
		return
	}
	switch v := output.View(strings.ToLower(args[0])); v {
	case output.ViewHome, output.ViewLogin, output.ViewDashboard, output.ViewEditor:
		a.Navigate(v)
	default:
		a.println(a.scope.T("console.unknown_view", map[string]any{"View": args[0]}))
	}
}

// enterAdmin navigates to an admin view and reports whether the guard let
// the visitor through.
func (a *App) enterAdmin(v output.View) bool {
	a.Navigate(v)
	return a.View() == v && a.guard.State() == store.GuardAuthorized
}

func (a *App) parseID(cmd string, args []string) (uint, bool) {
	if len(args) == 1 {
		if id, err := strconv.ParseUint(args[0], 10, 32); err == nil && id > 0 {
			return uint(id), true
		}
	}
	a.println(a.scope.T("editor.usage_id", map[string]any{"Command": cmd}))
	return 0, false
}
