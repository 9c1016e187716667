package mail

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/movienight/movienight/internal/domain"
)

// Mailer delivers account-lifecycle e-mails. Implementations report failure
// via error; callers surface it to the client with no retry.
type Mailer interface {
	SendVerifyEmail(user domain.User, token string) error
	SendResetPasswordEmail(user domain.User, token string) error
	SendForgetUsernameEmail(user domain.User) error
}

// SMTPMailer sends mail over an authenticated SMTP connection.
type SMTPMailer struct {
	dialer  *gomail.Dialer
	sender  string
	baseURL string
	logger  *log.Logger
}

// Config bundles the SMTP connection parameters.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	Sender   string
	BaseURL  string
}

// NewSMTPMailer constructs a Mailer over SMTP.
func NewSMTPMailer(cfg Config, logger *log.Logger) *SMTPMailer {
	if logger == nil {
		logger = log.Default()
	}
	return &SMTPMailer{
		dialer:  gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		sender:  cfg.Sender,
		baseURL: cfg.BaseURL,
		logger:  logger,
	}
}

// SendVerifyEmail mails the e-mail ownership verification link.
func (m *SMTPMailer) SendVerifyEmail(user domain.User, token string) error {
	body := fmt.Sprintf(`<h1>Click <a href="%s/verify-email/%d/%s">here</a> to verify your email</h1>`,
		m.baseURL, user.ID, token)
	return m.send(user.Email, "Movie Night - Verification Email", body)
}

// SendResetPasswordEmail mails the password reset link.
func (m *SMTPMailer) SendResetPasswordEmail(user domain.User, token string) error {
	body := fmt.Sprintf(`<h1>Click <a href="%s/reset-password/%d/%s">here</a> to reset your password</h1>`,
		m.baseURL, user.ID, token)
	return m.send(user.Email, "Movie Night - Reset Password Email", body)
}

// SendForgetUsernameEmail reminds the user of their username.
func (m *SMTPMailer) SendForgetUsernameEmail(user domain.User) error {
	body := fmt.Sprintf("<h1>Your username is %s</h1>", user.Username)
	return m.send(user.Email, "Movie Night - Forget Username Email", body)
}

func (m *SMTPMailer) send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Printf("mail: send to %s failed: %v", to, err)
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}
