// Package flows holds the user-initiated operations of the admin client.
// Each flow reports its outcome as a toast and never lets an error escape
// unhandled; the returned error is for callers that need to branch.
package flows

import (
	"context"
	"strings"

	"shikkha/internal/application/store"
	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

// LoginForm submits admin credentials.
type LoginForm struct {
	inflight
	scope *store.Scope
	nav   output.Navigator
}

func NewLoginForm(scope *store.Scope, nav output.Navigator) *LoginForm {
	return &LoginForm{scope: scope, nav: nav}
}

// Submit validates the fields, logs in and navigates to the dashboard.
func (f *LoginForm) Submit(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		f.scope.NotifyError(domain.ErrEmptyCredentials)
		return domain.ErrEmptyCredentials
	}
	if err := f.acquire(); err != nil {
		f.scope.NotifyError(err)
		return err
	}
	defer f.release()

	sess, err := f.scope.Session.Login(ctx, email, password)
	if err != nil {
		f.scope.NotifyError(err)
		return err
	}
	f.scope.Notify(entities.ToastSuccess, "login.success", map[string]any{"Name": sess.User.Name})
	f.nav.Navigate(output.ViewDashboard)
	return nil
}

// Logout clears the session and confirms it with a toast.
func Logout(scope *store.Scope, nav output.Navigator) {
	scope.Session.Logout()
	scope.Notify(entities.ToastInfo, "logout.done", nil)
	nav.Navigate(output.ViewHome)
}
