package httpserver

import (
	"context"
	"net/http"
	"strings"

	"github.com/movienight/movienight/internal/auth"
)

type contextKey int

const claimsContextKey contextKey = iota

// claimsFrom returns the authenticated caller's claims, or nil when the
// request is anonymous.
func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims
}

func (s *Server) bearerClaims(r *http.Request) *auth.Claims {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return nil
	}
	claims, err := s.jwt.Verify(strings.TrimSpace(strings.TrimPrefix(header, prefix)))
	if err != nil {
		return nil
	}
	return claims
}

// requireAuth rejects requests without a valid bearer token and attaches the
// decoded claims to the request context.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := s.bearerClaims(r)
		if claims == nil {
			s.respondError(w, http.StatusUnauthorized, "Missing or invalid authentication information")
			return
		}
		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// optionalAuth attaches claims when a valid bearer token is present but lets
// anonymous requests through.
func (s *Server) optionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims := s.bearerClaims(r); claims != nil {
			r = r.WithContext(context.WithValue(r.Context(), claimsContextKey, claims))
		}
		next.ServeHTTP(w, r)
	})
}

// requireAdmin must run after requireAuth.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFrom(r.Context())
		if claims == nil || !claims.IsAdmin {
			s.respondError(w, http.StatusForbidden, "Admin privileges required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
