package httpserver

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/movienight/movienight/internal/auth"
	"github.com/movienight/movienight/internal/domain"
)

func newAuthTestServer() *Server {
	return &Server{
		jwt:    auth.NewJWT("middleware-secret"),
		logger: log.New(io.Discard, "", 0),
	}
}

func issueToken(t *testing.T, srv *Server, user domain.User) string {
	t.Helper()
	token, err := srv.jwt.Issue(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestRequireAuth(t *testing.T) {
	srv := newAuthTestServer()
	token := issueToken(t, srv, domain.User{ID: 7, Username: "carol"})

	var gotClaims *auth.Claims
	handler := srv.requireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = claimsFrom(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"forged token", "Bearer " + issueToken(t, &Server{jwt: auth.NewJWT("other-secret")}, domain.User{ID: 7}), http.StatusUnauthorized},
		{"valid token", "Bearer " + token, http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClaims = nil
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if tt.wantStatus == http.StatusNoContent {
				if gotClaims == nil || gotClaims.UserID != 7 || gotClaims.Username != "carol" {
					t.Fatalf("claims = %+v", gotClaims)
				}
			}
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	srv := newAuthTestServer()
	token := issueToken(t, srv, domain.User{ID: 3, Username: "dave"})

	var gotClaims *auth.Claims
	handler := srv.optionalAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims = claimsFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotClaims != nil {
		t.Fatalf("anonymous request: status %d, claims %+v", rec.Code, gotClaims)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if gotClaims == nil || gotClaims.UserID != 3 {
		t.Fatalf("authenticated request: claims %+v", gotClaims)
	}

	// A bad token degrades to anonymous instead of failing the request.
	gotClaims = nil
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer broken")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || gotClaims != nil {
		t.Fatalf("bad token request: status %d, claims %+v", rec.Code, gotClaims)
	}
}

func TestRequireAdmin(t *testing.T) {
	srv := newAuthTestServer()
	adminToken := issueToken(t, srv, domain.User{ID: 1, Username: "root", IsAdmin: true})
	userToken := issueToken(t, srv, domain.User{ID: 2, Username: "plain"})

	handler := srv.requireAuth(srv.requireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-admin status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin status = %d, want 204", rec.Code)
	}
}
