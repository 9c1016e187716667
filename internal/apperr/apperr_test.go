package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *Error
		wantStatus int
	}{
		{"bad-request", BadRequest("x"), http.StatusBadRequest},
		{"not-found-maps-to-400", NotFound("x"), http.StatusBadRequest},
		{"conflict", Conflict("x"), http.StatusConflict},
		{"unauthorized", Unauthorized("x"), http.StatusUnauthorized},
		{"forbidden", Forbidden("x"), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode != tt.wantStatus {
				t.Fatalf("StatusCode = %d, want %d", tt.err.StatusCode, tt.wantStatus)
			}
			if tt.err.Error() != "x" {
				t.Fatalf("Error() = %q, want %q", tt.err.Error(), "x")
			}
		})
	}
}

func TestFromWrapped(t *testing.T) {
	inner := Conflict("stale state")
	wrapped := fmt.Errorf("toggle follow: %w", inner)

	got := From(wrapped)
	if got == nil {
		t.Fatalf("From(wrapped) = nil, want error")
	}
	if got.StatusCode != http.StatusConflict {
		t.Fatalf("StatusCode = %d, want 409", got.StatusCode)
	}
}

func TestFromPlainError(t *testing.T) {
	if got := From(errors.New("boom")); got != nil {
		t.Fatalf("From(plain) = %+v, want nil", got)
	}
}
