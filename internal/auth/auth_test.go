package auth

import (
	"strings"
	"testing"

	"github.com/movienight/movienight/internal/domain"
)

func TestJWTRoundTrip(t *testing.T) {
	j := NewJWT("test-secret")
	user := domain.User{ID: 42, Username: "critic", IsAdmin: true}

	signed, err := j.Issue(user)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := j.Verify(signed)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Username != "critic" {
		t.Fatalf("Username = %s, want critic", claims.Username)
	}
	if !claims.IsAdmin {
		t.Fatalf("IsAdmin = false, want true")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	signed, err := NewJWT("secret-a").Issue(domain.User{ID: 1, Username: "u"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := NewJWT("secret-b").Verify(signed); err == nil {
		t.Fatalf("Verify with wrong secret succeeded")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := NewJWT("s").Verify("not.a.token"); err == nil {
		t.Fatalf("Verify of garbage succeeded")
	}
}

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher("pepper", 4)

	hash, err := h.Hash("hunter2")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "hunter2" {
		t.Fatalf("hash equals plaintext")
	}
	if !h.Compare(hash, "hunter2") {
		t.Fatalf("Compare rejected correct password")
	}
	if h.Compare(hash, "wrong") {
		t.Fatalf("Compare accepted wrong password")
	}
}

func TestHasherPepperMatters(t *testing.T) {
	hash, err := NewHasher("pepper-a", 4).Hash("pw")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if NewHasher("pepper-b", 4).Compare(hash, "pw") {
		t.Fatalf("Compare with different pepper accepted password")
	}
}

func TestNewVerificationToken(t *testing.T) {
	a, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("NewVerificationToken: %v", err)
	}
	b, err := NewVerificationToken()
	if err != nil {
		t.Fatalf("NewVerificationToken: %v", err)
	}

	if len(a) != 64 {
		t.Fatalf("token length = %d, want 64", len(a))
	}
	if a == b {
		t.Fatalf("two tokens are identical")
	}
	if strings.ToLower(a) != a {
		t.Fatalf("token is not lowercase hex: %s", a)
	}
}
