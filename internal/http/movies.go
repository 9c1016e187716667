package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/movienight/movienight/internal/apperr"
	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/repository"
)

type movieCreateRequest struct {
	Title       string  `json:"title" validate:"required"`
	About       string  `json:"about" validate:"required"`
	Language    string  `json:"language" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	TrailerURL  *string `json:"trailerUrl" validate:"omitempty,url"`
	CoverURL    *string `json:"coverUrl" validate:"omitempty,url"`
	Award       *string `json:"award"`
	Budget      *int64  `json:"budget" validate:"omitempty,gte=0"`
	ReleaseDate *string `json:"releaseDate"`
	DirectorID  *int64  `json:"directorId"`
	ProducerID  *int64  `json:"producerId"`
	CompanyID   *int64  `json:"companyId"`
}

type movieUpdateRequest struct {
	Title       string  `json:"title" validate:"required"`
	About       string  `json:"about" validate:"required"`
	Language    string  `json:"language" validate:"required"`
	Country     string  `json:"country" validate:"required"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	TrailerURL  *string `json:"trailerUrl" validate:"omitempty,url"`
	CoverURL    *string `json:"coverUrl" validate:"omitempty,url"`
	Score       int64   `json:"score" validate:"gte=0"`
	Award       *string `json:"award"`
	Budget      *int64  `json:"budget" validate:"omitempty,gte=0"`
	ReleaseDate *string `json:"releaseDate"`
	DirectorID  *int64  `json:"directorId"`
	ProducerID  *int64  `json:"producerId"`
	CompanyID   *int64  `json:"companyId"`
}

type addGenreRequest struct {
	Genre string `json:"genre" validate:"required"`
}

type movieResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	About       string   `json:"about"`
	Language    string   `json:"language"`
	Country     string   `json:"country"`
	Duration    int      `json:"duration"`
	TrailerURL  *string  `json:"trailerUrl,omitempty"`
	CoverURL    *string  `json:"coverUrl,omitempty"`
	Score       int64    `json:"score"`
	Rating      float64  `json:"rating"`
	Award       *string  `json:"award,omitempty"`
	Budget      *int64   `json:"budget,omitempty"`
	ReleaseDate *string  `json:"releaseDate,omitempty"`
	DirectorID  *int64   `json:"directorId,omitempty"`
	ProducerID  *int64   `json:"producerId,omitempty"`
	CompanyID   *int64   `json:"companyId,omitempty"`
	Genres      []string `json:"genres,omitempty"`
}

type movieDetailsResponse struct {
	movieResponse
	InWatchlist bool  `json:"inWatchlist"`
	Rated       bool  `json:"rated"`
	Rate        int16 `json:"rate"`
}

func toMovieResponse(movie domain.Movie) movieResponse {
	resp := movieResponse{
		ID:         movie.ID,
		Title:      movie.Title,
		About:      movie.About,
		Language:   movie.Language,
		Country:    movie.Country,
		Duration:   movie.Duration,
		TrailerURL: movie.TrailerURL,
		CoverURL:   movie.CoverURL,
		Score:      movie.Score,
		Rating:     movie.Rating,
		Award:      movie.Award,
		Budget:     movie.Budget,
		DirectorID: movie.DirectorID,
		ProducerID: movie.ProducerID,
		CompanyID:  movie.CompanyID,
		Genres:     movie.Genres,
	}
	if movie.ReleaseDate != nil {
		formatted := movie.ReleaseDate.Format("2006-01-02")
		resp.ReleaseDate = &formatted
	}
	return resp
}

func parseReleaseDate(raw *string) (*time.Time, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 20)

	movies, err := s.repo.Movies.List(r.Context(), skip, limit)
	if err != nil {
		s.logger.Printf("list movies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleMovieDetails(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var viewerID int64
	if claims := claimsFrom(r.Context()); claims != nil {
		viewerID = claims.UserID
	}

	// Anonymous reads are identical for everyone, so they can be served from
	// the cache; authenticated reads carry per-viewer flags and never are.
	if viewerID == 0 && s.cache != nil {
		if cached, err := s.cache.GetMovie(r.Context(), movieID); err == nil && cached != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	details, err := s.repo.Movies.Details(r.Context(), movieID, viewerID)
	if err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}

	resp := movieDetailsResponse{
		movieResponse: toMovieResponse(details.Movie),
		InWatchlist:   details.InWatchlist,
		Rated:         details.Rated,
		Rate:          details.Rate,
	}

	if viewerID == 0 && s.cache != nil {
		if err := s.cache.SetMovie(r.Context(), movieID, resp); err != nil {
			s.logger.Printf("cache movie %d error: %v", movieID, err)
		}
	}

	s.respondJSON(w, http.StatusOK, resp)
}

// checkMovieRefs rejects director, producer, or company references that do
// not resolve to live rows with the matching role.
func (s *Server) checkMovieRefs(r *http.Request, directorID, producerID, companyID *int64) error {
	if directorID != nil {
		if _, err := s.repo.FilmMakers.GetDirectorByID(r.Context(), *directorID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.BadRequest("Invalid director ID")
			}
			return err
		}
	}
	if producerID != nil {
		if _, err := s.repo.FilmMakers.GetProducerByID(r.Context(), *producerID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.BadRequest("Invalid producer ID")
			}
			return err
		}
	}
	if companyID != nil {
		if _, err := s.repo.Companies.GetByID(r.Context(), *companyID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperr.BadRequest("Invalid company ID")
			}
			return err
		}
	}
	return nil
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	var req movieCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "releaseDate must follow YYYY-MM-DD format")
		return
	}

	if err := s.checkMovieRefs(r, req.DirectorID, req.ProducerID, req.CompanyID); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}

	movie, err := s.repo.Movies.Create(r.Context(), repository.MovieCreateParams{
		Title:       strings.TrimSpace(req.Title),
		About:       req.About,
		Language:    req.Language,
		Country:     req.Country,
		Duration:    req.Duration,
		TrailerURL:  req.TrailerURL,
		CoverURL:    req.CoverURL,
		Award:       req.Award,
		Budget:      req.Budget,
		ReleaseDate: releaseDate,
		DirectorID:  req.DirectorID,
		ProducerID:  req.ProducerID,
		CompanyID:   req.CompanyID,
	})
	if err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}

	s.respondJSON(w, http.StatusCreated, toMovieResponse(movie))
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req movieUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	releaseDate, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "releaseDate must follow YYYY-MM-DD format")
		return
	}

	if err := s.checkMovieRefs(r, req.DirectorID, req.ProducerID, req.CompanyID); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}

	movie := domain.Movie{
		ID:          movieID,
		Title:       strings.TrimSpace(req.Title),
		About:       req.About,
		Language:    req.Language,
		Country:     req.Country,
		Duration:    req.Duration,
		TrailerURL:  req.TrailerURL,
		CoverURL:    req.CoverURL,
		Score:       req.Score,
		Award:       req.Award,
		Budget:      req.Budget,
		ReleaseDate: releaseDate,
		DirectorID:  req.DirectorID,
		ProducerID:  req.ProducerID,
		CompanyID:   req.CompanyID,
	}
	if err := s.repo.Movies.Update(r.Context(), movie); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.invalidateMovie(r, movieID)

	s.respondMessage(w, http.StatusOK, "Movie updated successfully")
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Movies.SoftDelete(r.Context(), movieID); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.invalidateMovie(r, movieID)

	s.respondMessage(w, http.StatusOK, "Movie deleted successfully")
}

func (s *Server) handleAddGenre(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req addGenreRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	if err := s.repo.Movies.AddGenre(r.Context(), movieID, strings.TrimSpace(req.Genre)); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.invalidateMovie(r, movieID)

	s.respondMessage(w, http.StatusOK, "Genre added successfully")
}

func (s *Server) invalidateMovie(r *http.Request, movieID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateMovie(r.Context(), movieID); err != nil {
		s.logger.Printf("invalidate movie %d error: %v", movieID, err)
	}
}
