package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/input"
	"shikkha/internal/ports/output"
)

const maxBodyBytes = 1 << 20

// Handler serves the REST API.
type Handler struct {
	posts         input.PostUseCase
	auth          input.AuthUseCase
	t             output.T
	defaultLocale entities.Locale
}

func NewHandler(posts input.PostUseCase, auth input.AuthUseCase, t output.T, defaultLocale entities.Locale) *Handler {
	if !defaultLocale.Valid() {
		defaultLocale = entities.DefaultLocale()
	}
	return &Handler{posts: posts, auth: auth, t: t, defaultLocale: defaultLocale}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}
	sess, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (h *Handler) ListPublished(w http.ResponseWriter, r *http.Request) {
	locale, err := requestLocale(r, h.defaultLocale)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	posts, err := h.posts.ListPublished(r.Context(), locale)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Language", string(locale))
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPublished(w http.ResponseWriter, r *http.Request) {
	locale, err := requestLocale(r, h.defaultLocale)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	slug, err := url.PathUnescape(chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, r, fmt.Errorf("%w: bad slug", domain.ErrInvalidInput))
		return
	}
	post, err := h.posts.GetPublished(r.Context(), locale, slug)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Language", string(locale))
	writeJSON(w, http.StatusOK, post)
}

func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.ListAll(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	post, err := h.posts.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var in entities.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	author := ""
	if claims := claimsFrom(r.Context()); claims != nil {
		author = claims.Name
	}
	post, err := h.posts.Create(r.Context(), author, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var in entities.PostInput
	if err := decodeBody(w, r, &in); err != nil {
		h.writeError(w, r, err)
		return
	}
	post, err := h.posts.Update(r.Context(), id, in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.posts.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, nil)
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func postID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad post id", domain.ErrInvalidInput)
	}
	return uint(id), nil
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}
