// Package console is the line-oriented admin client. It owns the current
// view, mounts the auth guard on admin views and prints toasts after every
// command.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"shikkha/internal/application/flows"
	"shikkha/internal/application/store"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

var _ output.Navigator = (*App)(nil)

// App is one console session bound to a Scope.
type App struct {
	scope  *store.Scope
	in     *bufio.Scanner
	out    io.Writer
	guard  *store.AuthGuard
	login  *flows.LoginForm
	editor *flows.PostEditor
	reader *flows.Reader

	// Lines are scanned on a separate goroutine, one per request, so a
	// blocked read can be abandoned when the context ends.
	requests chan struct{}
	lines    chan lineResult
	done     <-chan struct{}
	eof      bool
	inErr    error

	mu       sync.Mutex
	view     output.View
	dirty    bool
	lastShow entities.ToastID
	unsubs   []func()
}

type lineResult struct {
	text string
	ok   bool
	err  error
}

// New builds an App reading commands from in and writing to out.
func New(scope *store.Scope, api output.BlogAPI, in io.Reader, out io.Writer) *App {
	a := &App{
		scope:  scope,
		in:       bufio.NewScanner(in),
		out:      out,
		requests: make(chan struct{}),
		lines:    make(chan lineResult, 1),
		reader: flows.NewReader(scope, api),
		editor: flows.NewPostEditor(scope, api),
		view:   output.ViewHome,
		dirty:  true,
	}
	a.guard = store.NewAuthGuard(scope.Session, a)
	a.login = flows.NewLoginForm(scope, a)
	a.unsubs = append(a.unsubs,
		scope.Locale.Subscribe(func(entities.Locale) { a.markDirty() }),
		a.guard.Subscribe(a.onGuard),
	)
	return a
}

// Navigate switches the current view. Admin views mount the guard, which
// may immediately navigate again to login or home.
func (a *App) Navigate(to output.View) {
	a.mu.Lock()
	a.view = to
	a.dirty = true
	a.mu.Unlock()

	if protected(to) {
		a.guard.Mount()
		return
	}
	a.guard.Unmount()
}

// View returns the current view.
func (a *App) View() output.View {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.view
}

func protected(v output.View) bool {
	return v == output.ViewDashboard || v == output.ViewEditor
}

func (a *App) markDirty() {
	a.mu.Lock()
	a.dirty = true
	a.mu.Unlock()
}

func (a *App) onGuard(state store.GuardState) {
	if state == store.GuardRedirecting && a.guard.Target() == output.ViewHome {
		a.println(a.scope.T("guard.denied", nil))
	}
}

// Run reads commands until quit, EOF or ctx cancellation.
func (a *App) Run(ctx context.Context) error {
	a.done = ctx.Done()
	go a.scan()
	defer a.close()

	// The persisted locale applies once the first view has been drawn.
	a.Navigate(output.ViewHome)
	a.flush(ctx)
	a.scope.Locale.Hydrate()
	a.println(a.scope.T("app.name", nil) + " · " + a.scope.T("app.tagline", nil))
	a.println(a.scope.T("console.help", nil))

	for {
		a.flush(ctx)
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(a.out, a.scope.T("console.prompt", map[string]any{"View": a.viewName(a.View())}))
		line, ok := a.readLine()
		if !ok {
			a.println("")
			a.println(a.scope.T("console.bye", nil))
			if ctx.Err() != nil {
				return nil
			}
			return a.inErr
		}
		if err := a.scope.Session.Reload(); err != nil {
			log.Printf("console: reload session: %v", err)
		}
		if quit := a.execute(ctx, line); quit {
			a.println(a.scope.T("console.bye", nil))
			return nil
		}
	}
}

// flush re-renders the view when needed and prints toasts not shown yet.
func (a *App) flush(ctx context.Context) {
	a.mu.Lock()
	dirty := a.dirty
	a.dirty = false
	a.mu.Unlock()
	if dirty {
		a.render(ctx)
	}
	a.renderNewToasts()
}

func (a *App) close() {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.guard.Unmount()
	close(a.requests)
}

// scan answers each read request with the next input line.
func (a *App) scan() {
	for range a.requests {
		if !a.in.Scan() {
			a.lines <- lineResult{err: a.in.Err()}
			return
		}
		a.lines <- lineResult{text: a.in.Text(), ok: true}
	}
}

// readLine returns the next input line, or false at end of input or when
// the context of Run is done.
func (a *App) readLine() (string, bool) {
	if a.eof {
		return "", false
	}
	select {
	case a.requests <- struct{}{}:
	case <-a.done:
		return "", false
	}
	select {
	case r := <-a.lines:
		if !r.ok {
			a.eof = true
			a.inErr = r.err
			return "", false
		}
		return strings.TrimRight(r.text, "\r"), true
	case <-a.done:
		return "", false
	}
}

func (a *App) println(s string) {
	fmt.Fprintln(a.out, s)
}

func (a *App) viewName(v output.View) string {
	return a.scope.T("nav."+string(v), nil)
}
