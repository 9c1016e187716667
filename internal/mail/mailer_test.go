package mail

import (
	"io"
	"log"
	"testing"

	"github.com/movienight/movienight/internal/domain"
)

func TestSendFailsWithUnreachableHost(t *testing.T) {
	m := NewSMTPMailer(Config{
		Host:    "127.0.0.1",
		Port:    1, // nothing listens here
		Sender:  "noreply@example.com",
		BaseURL: "http://localhost:8080",
	}, log.New(io.Discard, "", 0))

	user := domain.User{ID: 7, Email: "someone@example.com", Username: "someone"}

	if err := m.SendVerifyEmail(user, "tok"); err == nil {
		t.Fatalf("SendVerifyEmail to unreachable host succeeded")
	}
	if err := m.SendResetPasswordEmail(user, "tok"); err == nil {
		t.Fatalf("SendResetPasswordEmail to unreachable host succeeded")
	}
	if err := m.SendForgetUsernameEmail(user); err == nil {
		t.Fatalf("SendForgetUsernameEmail to unreachable host succeeded")
	}
}
