// Package blogapi is the HTTP client for the site's REST backend.
package blogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/output"
)

var _ output.BlogAPI = (*Client)(nil)

const defaultTimeout = 15 * time.Second

// envelope mirrors the backend's {success, data, error} response body.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Client talks to the backend over JSON. Error messages from the backend are
// kept on domain.RemoteError so they can be shown verbatim.
type Client struct {
	baseURL string
	http    *http.Client
	locale  func() entities.Locale
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithLocale makes every request carry the locale returned by fn in its
// Accept-Language header, so backend messages come back translated.
func WithLocale(fn func() entities.Locale) Option {
	return func(cl *Client) { cl.locale = fn }
}

// New returns a client for the backend at baseURL (e.g. http://localhost:8080).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("blogapi: parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("blogapi: base url %q must be http or https", baseURL)
	}
	c := &Client{
		baseURL: u.String(),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Login(ctx context.Context, email, password string) (entities.AdminSession, error) {
	var sess entities.AdminSession
	err := c.do(ctx, http.MethodPost, "/api/auth/login", "", loginRequest{Email: email, Password: password}, &sess)
	if err != nil {
		// A 401 on the login endpoint means bad credentials, not an expired session.
		var re *domain.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusUnauthorized {
			re.Err = domain.ErrInvalidLogin
		}
		return entities.AdminSession{}, err
	}
	return sess, nil
}

func (c *Client) ListPublished(ctx context.Context, locale entities.Locale) ([]entities.Post, error) {
	var posts []entities.Post
	path := "/api/posts?lang=" + url.QueryEscape(string(locale))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPublished(ctx context.Context, locale entities.Locale, slug string) (*entities.Post, error) {
	var post entities.Post
	path := "/api/posts/" + url.PathEscape(slug) + "?lang=" + url.QueryEscape(string(locale))
	if err := c.do(ctx, http.MethodGet, path, "", nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) ListPosts(ctx context.Context, token string) ([]entities.Post, error) {
	var posts []entities.Post
	if err := c.do(ctx, http.MethodGet, "/api/admin/posts", token, nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *Client) GetPost(ctx context.Context, token string, id uint) (*entities.Post, error) {
	var post entities.Post
	if err := c.do(ctx, http.MethodGet, postPath(id), token, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) CreatePost(ctx context.Context, token string, in entities.PostInput) (*entities.Post, error) {
	var post entities.Post
	if err := c.do(ctx, http.MethodPost, "/api/admin/posts", token, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) UpdatePost(ctx context.Context, token string, id uint, in entities.PostInput) (*entities.Post, error) {
	var post entities.Post
	if err := c.do(ctx, http.MethodPut, postPath(id), token, in, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(ctx context.Context, token string, id uint) error {
	return c.do(ctx, http.MethodDelete, postPath(id), token, nil, nil)
}

func postPath(id uint) string {
	return "/api/admin/posts/" + strconv.FormatUint(uint64(id), 10)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("blogapi: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("blogapi: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.locale != nil {
		req.Header.Set("Accept-Language", string(c.locale()))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RemoteError{Err: fmt.Errorf("%w: %s %s: %v", domain.ErrUnavailable, method, path, err)}
	}
	defer resp.Body.Close()

	var env envelope
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 4<<20)).Decode(&env)

	if resp.StatusCode >= 300 || (decodeErr == nil && !env.Success) {
		return &domain.RemoteError{
			Status:  resp.StatusCode,
			Message: env.Error,
			Err:     statusError(resp.StatusCode),
		}
	}
	if decodeErr != nil {
		return fmt.Errorf("blogapi: decode %s %s: %w", method, path, decodeErr)
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("blogapi: decode %s %s data: %w", method, path, err)
	}
	return nil
}

// statusError maps a response status to the domain error it stands for.
func statusError(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrUnavailable
	default:
		return fmt.Errorf("unexpected status %d", status)
	}
}
