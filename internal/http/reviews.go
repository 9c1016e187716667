package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/repository"
)

type reviewCreateRequest struct {
	MovieID     int64  `json:"movieId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Spoiler     bool   `json:"spoiler"`
	Recommended bool   `json:"recommended"`
	FavActorID  *int64 `json:"favActorId"`
}

type reviewUpdateRequest struct {
	MovieID     int64  `json:"movieId" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
	Spoiler     bool   `json:"spoiler"`
	Recommended bool   `json:"recommended"`
	FavActorID  *int64 `json:"favActorId"`
}

type reactRequest struct {
	UserID  int64 `json:"userId" validate:"required,gt=0"`
	MovieID int64 `json:"movieId" validate:"required,gt=0"`
	Like    *bool `json:"like" validate:"required"`
}

type reviewResponse struct {
	UserID      int64  `json:"userId"`
	MovieID     int64  `json:"movieId"`
	Description string `json:"description"`
	Spoiler     bool   `json:"spoiler"`
	Recommended bool   `json:"recommended"`
	Likes       int    `json:"likes"`
	Dislikes    int    `json:"dislikes"`
	FavActorID  *int64 `json:"favActorId,omitempty"`
}

type reactResponse struct {
	Message  string `json:"message"`
	Likes    int    `json:"likes"`
	Dislikes int    `json:"dislikes"`
}

func toReviewResponse(review domain.Review) reviewResponse {
	return reviewResponse{
		UserID:      review.UserID,
		MovieID:     review.MovieID,
		Description: review.Description,
		Spoiler:     review.Spoiler,
		Recommended: review.Recommended,
		Likes:       review.Likes,
		Dislikes:    review.Dislikes,
		FavActorID:  review.FavActorID,
	}
}

// checkFavActor rejects a favorite-actor reference that does not resolve to a
// live film maker flagged as an actor.
func (s *Server) checkFavActor(r *http.Request, favActorID *int64) error {
	if favActorID == nil {
		return nil
	}
	_, err := s.repo.FilmMakers.GetActorByID(r.Context(), *favActorID)
	return err
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("userId"), 10, 64)
	if err != nil || userID <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid userId parameter")
		return
	}
	movieID, err := strconv.ParseInt(r.URL.Query().Get("movieId"), 10, 64)
	if err != nil || movieID <= 0 {
		s.respondError(w, http.StatusBadRequest, "invalid movieId parameter")
		return
	}

	review, err := s.repo.Reviews.Get(r.Context(), userID, movieID)
	if err != nil {
		s.respondOpError(w, err, "Review not found")
		return
	}
	s.respondJSON(w, http.StatusOK, toReviewResponse(review))
}

func (s *Server) handleMovieReviews(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := s.repo.Reviews.ForMovie(r.Context(), movieID)
	if err != nil {
		s.logger.Printf("list movie reviews error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	s.respondReviewList(w, reviews)
}

func (s *Server) handleUserReviews(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	reviews, err := s.repo.Reviews.ForUser(r.Context(), userID)
	if err != nil {
		s.logger.Printf("list user reviews error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}
	s.respondReviewList(w, reviews)
}

func (s *Server) respondReviewList(w http.ResponseWriter, reviews []domain.Review) {
	items := make([]reviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, toReviewResponse(review))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	if err := s.checkFavActor(r, req.FavActorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusBadRequest, "Favorite actor must be an existing actor")
			return
		}
		s.logger.Printf("check fav actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	claims := claimsFrom(r.Context())
	err := s.repo.Reviews.Create(r.Context(), repository.ReviewCreateParams{
		UserID:      claims.UserID,
		MovieID:     req.MovieID,
		Description: req.Description,
		Spoiler:     req.Spoiler,
		Recommended: req.Recommended,
		FavActorID:  req.FavActorID,
	})
	if err != nil {
		s.respondOpError(w, err, "Movie not found")
		return
	}
	s.respondMessage(w, http.StatusCreated, "Review submitted successfully")
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req reviewUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	if err := s.checkFavActor(r, req.FavActorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.respondError(w, http.StatusBadRequest, "Favorite actor must be an existing actor")
			return
		}
		s.logger.Printf("check fav actor error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	claims := claimsFrom(r.Context())
	review := domain.Review{
		UserID:      claims.UserID,
		MovieID:     req.MovieID,
		Description: req.Description,
		Spoiler:     req.Spoiler,
		Recommended: req.Recommended,
		FavActorID:  req.FavActorID,
	}
	if err := s.repo.Reviews.Update(r.Context(), review); err != nil {
		s.respondOpError(w, err, "Review not found")
		return
	}
	s.respondMessage(w, http.StatusOK, "Review updated successfully")
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	movieID, err := pathID(r, "movieId")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	claims := claimsFrom(r.Context())
	if err := s.repo.Reviews.SoftDelete(r.Context(), claims.UserID, movieID); err != nil {
		s.respondOpError(w, err, "Review not found")
		return
	}
	s.respondMessage(w, http.StatusOK, "Review deleted successfully")
}

func (s *Server) handleReactReview(w http.ResponseWriter, r *http.Request) {
	var req reactRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	result, err := s.repo.Reviews.React(r.Context(), claims.UserID, req.UserID, req.MovieID, *req.Like)
	if err != nil {
		s.respondOpError(w, err, "Review not found")
		return
	}

	if s.metrics != nil {
		s.metrics.ReactionsTotal.WithLabelValues(reactionLabel(result.State)).Inc()
	}

	s.respondJSON(w, http.StatusOK, reactResponse{
		Message:  result.Message,
		Likes:    result.Likes,
		Dislikes: result.Dislikes,
	})
}

func reactionLabel(state domain.ReactionState) string {
	switch state {
	case domain.ReactionLiked:
		return "liked"
	case domain.ReactionDisliked:
		return "disliked"
	default:
		return "none"
	}
}
