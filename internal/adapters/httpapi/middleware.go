package httpapi

import (
	"context"
	"net/http"
	"strings"

	"shikkha/internal/domain"
	"shikkha/internal/domain/entities"
	"shikkha/internal/ports/input"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// RequireAdmin rejects requests without a valid bearer token (401) and
// tokens of non-admin accounts (403).
func (h *Handler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			h.writeError(w, r, domain.ErrUnauthorized)
			return
		}
		claims, err := h.auth.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if claims.Role != entities.RoleAdmin {
			h.writeError(w, r, domain.ErrForbidden)
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// claimsFrom returns the identity attached by RequireAdmin.
func claimsFrom(ctx context.Context) *input.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*input.Claims)
	return claims
}
