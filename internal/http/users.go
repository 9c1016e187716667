package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/movienight/movienight/internal/auth"
	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/repository"
)

type signupRequest struct {
	FirstName string  `json:"firstName" validate:"required"`
	LastName  string  `json:"lastName" validate:"required"`
	Email     string  `json:"email" validate:"required,email"`
	Username  string  `json:"username" validate:"required,min=3,max=32"`
	Password  string  `json:"password" validate:"required,min=8"`
	Gender    *string `json:"gender"`
	Country   *string `json:"country"`
	AvatarURL *string `json:"avatarUrl"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8"`
}

type availabilityResponse struct {
	Available bool `json:"available"`
}

type userResponse struct {
	ID            int64   `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	Username      string  `json:"username"`
	Gender        *string `json:"gender,omitempty"`
	Country       *string `json:"country,omitempty"`
	AvatarURL     *string `json:"avatarUrl,omitempty"`
	IsAdmin       bool    `json:"isAdmin"`
	VerifiedEmail bool    `json:"verifiedEmail"`
}

func toUserResponse(user domain.User) userResponse {
	return userResponse{
		ID:            user.ID,
		FirstName:     user.FirstName,
		LastName:      user.LastName,
		Email:         user.Email,
		Username:      user.Username,
		Gender:        user.Gender,
		Country:       user.Country,
		AvatarURL:     user.AvatarURL,
		IsAdmin:       user.IsAdmin,
		VerifiedEmail: user.VerifiedEmail,
	}
}

func (s *Server) tokenTTL() time.Duration {
	return time.Duration(s.cfg.TokenTTLMins) * time.Minute
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	user, err := s.repo.Users.Create(r.Context(), repository.UserCreateParams{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Username:  strings.TrimSpace(req.Username),
		Password:  hash,
		Gender:    req.Gender,
		Country:   req.Country,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		s.respondOpError(w, err, "User not found")
		return
	}

	if err := s.issueAndMailToken(r, user, domain.TokenVerifyEmail); err != nil {
		s.respondError(w, http.StatusBadRequest, "Failed to send verification email")
		return
	}

	s.respondJSON(w, http.StatusCreated, toUserResponse(user))
}

// issueAndMailToken creates a fresh verification token for the user and
// delivers the matching e-mail. Any prior token of the same type is replaced.
func (s *Server) issueAndMailToken(r *http.Request, user domain.User, tokenType domain.TokenType) error {
	token, err := auth.NewVerificationToken()
	if err != nil {
		return err
	}
	if err := s.repo.Tokens.Create(r.Context(), user.ID, tokenType, token, s.tokenTTL()); err != nil {
		return err
	}
	if tokenType == domain.TokenVerifyEmail {
		return s.mailer.SendVerifyEmail(user, token)
	}
	return s.mailer.SendResetPasswordEmail(user, token)
}

func (s *Server) handleUsernameAvailable(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		s.respondError(w, http.StatusBadRequest, "Missing username parameter")
		return
	}

	_, err := s.repo.Users.GetByUsername(r.Context(), username)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, availabilityResponse{Available: false})
	case errors.Is(err, repository.ErrNotFound):
		s.respondJSON(w, http.StatusOK, availabilityResponse{Available: true})
	default:
		s.logger.Printf("username availability error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func (s *Server) handleEmailAvailable(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		s.respondError(w, http.StatusBadRequest, "Missing email parameter")
		return
	}

	_, err := s.repo.Users.GetByEmail(r.Context(), email)
	switch {
	case err == nil:
		s.respondJSON(w, http.StatusOK, availabilityResponse{Available: false})
	case errors.Is(err, repository.ErrNotFound):
		s.respondJSON(w, http.StatusOK, availabilityResponse{Available: true})
	default:
		s.logger.Printf("email availability error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

func (s *Server) handleVerifyEmail(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	token := chi.URLParam(r, "token")

	ok, err := s.repo.Tokens.Validate(r.Context(), userID, domain.TokenVerifyEmail, token)
	if err != nil {
		s.logger.Printf("validate token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !ok {
		s.respondError(w, http.StatusForbidden, "Invalid or expired verification token")
		return
	}

	if err := s.repo.Users.SetVerifiedEmail(r.Context(), userID); err != nil {
		s.respondOpError(w, err, "User not found")
		return
	}
	if err := s.repo.Tokens.Destroy(r.Context(), userID, domain.TokenVerifyEmail); err != nil {
		s.logger.Printf("destroy token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.respondMessage(w, http.StatusOK, "Email verified successfully")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	user, err := s.repo.Users.GetByUsername(r.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		s.logger.Printf("login lookup error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !s.hasher.Compare(user.Password, req.Password) {
		s.respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if !user.VerifiedEmail {
		s.respondError(w, http.StatusForbidden, "Email is not verified")
		return
	}

	token, err := s.jwt.Issue(user)
	if err != nil {
		s.logger.Printf("issue token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.respondJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  toUserResponse(user),
	})
}

func (s *Server) handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	user, err := s.repo.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.respondOpError(w, err, "User not found")
		return
	}

	if err := s.issueAndMailToken(r, user, domain.TokenResetPassword); err != nil {
		s.respondError(w, http.StatusBadRequest, "Failed to send reset password email")
		return
	}

	s.respondMessage(w, http.StatusOK, "Reset password email sent successfully")
}

func (s *Server) handleResetPassword(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	token := chi.URLParam(r, "token")

	var req resetPasswordRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	ok, err := s.repo.Tokens.Validate(r.Context(), userID, domain.TokenResetPassword, token)
	if err != nil {
		s.logger.Printf("validate token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if !ok {
		s.respondError(w, http.StatusForbidden, "Invalid or expired verification token")
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		s.logger.Printf("hash password error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	if err := s.repo.Users.SetPassword(r.Context(), userID, hash); err != nil {
		s.respondOpError(w, err, "User not found")
		return
	}
	if err := s.repo.Tokens.Destroy(r.Context(), userID, domain.TokenResetPassword); err != nil {
		s.logger.Printf("destroy token error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	s.respondMessage(w, http.StatusOK, "Password reset successfully")
}

func (s *Server) handleForgotUsername(w http.ResponseWriter, r *http.Request) {
	var req emailRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	user, err := s.repo.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		s.respondOpError(w, err, "User not found")
		return
	}

	if err := s.mailer.SendForgetUsernameEmail(user); err != nil {
		s.respondError(w, http.StatusBadRequest, "Failed to send username email")
		return
	}

	s.respondMessage(w, http.StatusOK, "Username email sent successfully")
}
