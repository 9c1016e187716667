package httpserver

import (
	"net/http"

	"github.com/movienight/movienight/internal/domain"
)

type rateRequest struct {
	MovieID int64 `json:"movieId" validate:"required,gt=0"`
	Rate    *int  `json:"rate" validate:"required,gte=0,lte=10"`
}

type rateResponse struct {
	MovieID int64   `json:"movieId"`
	Rate    int16   `json:"rate"`
	Average float64 `json:"average"`
}

type ratingResponse struct {
	UserID  int64 `json:"userId"`
	MovieID int64 `json:"movieId"`
	Rate    int16 `json:"rate"`
}

func toRatingResponse(rating domain.UserRating) ratingResponse {
	return ratingResponse{
		UserID:  rating.UserID,
		MovieID: rating.MovieID,
		Rate:    rating.Rate,
	}
}

func (s *Server) handleRateMovie(w http.ResponseWriter, r *http.Request) {
	var req rateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	rate := int16(*req.Rate)
	average, err := s.repo.Ratings.RateMovie(r.Context(), claims.UserID, req.MovieID, rate)
	if err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}

	if s.metrics != nil {
		s.metrics.RatingsTotal.Inc()
	}
	s.invalidateMovie(r, req.MovieID)

	s.respondJSON(w, http.StatusOK, rateResponse{
		MovieID: req.MovieID,
		Rate:    rate,
		Average: average,
	})
}

func (s *Server) handleMovieRatings(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratings, err := s.repo.Ratings.ForMovie(r.Context(), movieID)
	if err != nil {
		s.logger.Printf("list movie ratings error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	s.respondRatingList(w, ratings)
}

func (s *Server) handleUserRatings(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	ratings, err := s.repo.Ratings.ForUser(r.Context(), userID)
	if err != nil {
		s.logger.Printf("list user ratings error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	s.respondRatingList(w, ratings)
}

func (s *Server) respondRatingList(w http.ResponseWriter, ratings []domain.UserRating) {
	items := make([]ratingResponse, 0, len(ratings))
	for _, rating := range ratings {
		items = append(items, toRatingResponse(rating))
	}
	s.respondJSON(w, http.StatusOK, items)
}
