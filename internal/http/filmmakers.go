package httpserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/repository"
)

type filmMakerCreateRequest struct {
	FirstName  string  `json:"firstName" validate:"required"`
	LastName   string  `json:"lastName" validate:"required"`
	About      string  `json:"about" validate:"required"`
	Country    *string `json:"country"`
	Gender     *string `json:"gender"`
	AvatarURL  *string `json:"avatarUrl" validate:"omitempty,url"`
	Birthday   *string `json:"birthday"`
	IsWriter   bool    `json:"isWriter"`
	IsProducer bool    `json:"isProducer"`
	IsActor    bool    `json:"isActor"`
	IsDirector bool    `json:"isDirector"`
}

type filmMakerResponse struct {
	ID         int64   `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	About      string  `json:"about"`
	Country    *string `json:"country,omitempty"`
	Gender     *string `json:"gender,omitempty"`
	AvatarURL  *string `json:"avatarUrl,omitempty"`
	Birthday   *string `json:"birthday,omitempty"`
	IsWriter   bool    `json:"isWriter"`
	IsProducer bool    `json:"isProducer"`
	IsActor    bool    `json:"isActor"`
	IsDirector bool    `json:"isDirector"`
}

func toFilmMakerResponse(maker domain.FilmMaker) filmMakerResponse {
	resp := filmMakerResponse{
		ID:         maker.ID,
		FirstName:  maker.FirstName,
		LastName:   maker.LastName,
		About:      maker.About,
		Country:    maker.Country,
		Gender:     maker.Gender,
		AvatarURL:  maker.AvatarURL,
		IsWriter:   maker.IsWriter,
		IsProducer: maker.IsProducer,
		IsActor:    maker.IsActor,
		IsDirector: maker.IsDirector,
	}
	if maker.Birthday != nil {
		formatted := maker.Birthday.Format("2006-01-02")
		resp.Birthday = &formatted
	}
	return resp
}

func (s *Server) handleGetFilmMaker(w http.ResponseWriter, r *http.Request) {
	makerID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	maker, err := s.repo.FilmMakers.GetByID(r.Context(), makerID)
	if err != nil {
		s.respondOpError(w, err, "Film maker not found")
		return
	}
	s.respondJSON(w, http.StatusOK, toFilmMakerResponse(maker))
}

func (s *Server) handleCreateFilmMaker(w http.ResponseWriter, r *http.Request) {
	var req filmMakerCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	var birthday *time.Time
	if req.Birthday != nil && strings.TrimSpace(*req.Birthday) != "" {
		parsed, err := time.Parse("2006-01-02", *req.Birthday)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "birthday must follow YYYY-MM-DD format")
			return
		}
		birthday = &parsed
	}

	maker, err := s.repo.FilmMakers.Create(r.Context(), repository.FilmMakerCreateParams{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		About:      req.About,
		Country:    req.Country,
		Gender:     req.Gender,
		AvatarURL:  req.AvatarURL,
		Birthday:   birthday,
		IsWriter:   req.IsWriter,
		IsProducer: req.IsProducer,
		IsActor:    req.IsActor,
		IsDirector: req.IsDirector,
	})
	if err != nil {
		s.respondOpError(w, err, "Film maker not found")
		return
	}
	s.respondJSON(w, http.StatusCreated, toFilmMakerResponse(maker))
}
