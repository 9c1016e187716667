package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/repository"
)

const maxRequestBody = 1 << 20 // 1 MiB

// errorResponse is the generic error shape returned to clients.
type errorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	return nil
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			s.logger.Printf("failed to encode response: %v", err)
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, errorResponse{
		StatusCode: status,
		Message:    message,
	})
}

func (s *Server) respondMessage(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, messageResponse{Message: message})
}

func (s *Server) respondDecodeError(w http.ResponseWriter, err error) {
	var syntaxError *json.SyntaxError
	var typeError *json.UnmarshalTypeError
	switch {
	case errors.As(err, &syntaxError):
		s.respondError(w, http.StatusBadRequest, "Malformed JSON payload")
	case errors.As(err, &typeError):
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("Invalid value for field %s", typeError.Field))
	case errors.Is(err, io.EOF):
		s.respondError(w, http.StatusBadRequest, "Request body cannot be empty")
	default:
		s.respondError(w, http.StatusBadRequest, "Unable to parse request body")
	}
}

// respondOpError maps errors raised by repositories and core operations onto
// the generic error shape. Status-coded errors pass through unchanged,
// missing entities surface as 400, and everything else falls back to a
// generic 500.
func (s *Server) respondOpError(w http.ResponseWriter, err error, notFoundMessage string) {
	if appErr := apperr.From(err); appErr != nil {
		s.respondError(w, appErr.StatusCode, appErr.Message)
		return
	}
	if errors.Is(err, repository.ErrNotFound) {
		s.respondError(w, http.StatusBadRequest, notFoundMessage)
		return
	}
	s.logger.Printf("internal error: %v", err)
	s.respondError(w, http.StatusInternalServerError, "Something went wrong")
}

// respondValidationError turns a validator failure into a 400 naming the
// first offending field.
func (s *Server) respondValidationError(w http.ResponseWriter, err error) {
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) && len(fieldErrors) > 0 {
		s.respondError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid value for field %s", fieldErrors[0].Field()))
		return
	}
	s.respondError(w, http.StatusBadRequest, "Invalid request payload")
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s parameter", name)
	}
	return id, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return val
}
