package httpserver

import (
	"net/http"
)

type watchlistAddRequest struct {
	MovieID int64 `json:"movieId" validate:"required,gt=0"`
}

func (s *Server) handleGetWatchlist(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())

	movies, err := s.repo.Watchlist.Get(r.Context(), claims.UserID)
	if err != nil {
		s.logger.Printf("get watchlist error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]movieResponse, 0, len(movies))
	for _, movie := range movies {
		items = append(items, toMovieResponse(movie))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleAddToWatchlist(w http.ResponseWriter, r *http.Request) {
	var req watchlistAddRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	if err := s.repo.Watchlist.Add(r.Context(), claims.UserID, req.MovieID); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Movie added to watchlist successfully")
}

func (s *Server) handleRemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(r.Context())
	if err := s.repo.Watchlist.Remove(r.Context(), claims.UserID, movieID); err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.respondMessage(w, http.StatusOK, "Movie removed from watchlist successfully")
}
