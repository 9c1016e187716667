package httpserver

import (
	"net/http"
	"strings"

	"github.com/movienight/movienight/internal/domain"
	"github.com/movienight/movienight/internal/repository"
)

type companyCreateRequest struct {
	Name     string  `json:"name" validate:"required"`
	About    string  `json:"about" validate:"required"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`
	Location string  `json:"location" validate:"required"`
}

type companyUpdateRequest struct {
	Name     string  `json:"name" validate:"required"`
	About    string  `json:"about" validate:"required"`
	PhotoURL *string `json:"photoUrl" validate:"omitempty,url"`
	Location string  `json:"location" validate:"required"`
}

// followRequest carries the follow state the client believes is current. The
// toggle fails with a conflict when that assertion is stale.
type followRequest struct {
	Followed *bool `json:"followed" validate:"required"`
}

type companyResponse struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	About     string  `json:"about"`
	PhotoURL  *string `json:"photoUrl,omitempty"`
	Location  string  `json:"location"`
	OwnerID   int64   `json:"ownerId"`
	Followers int64   `json:"followers"`
}

func toCompanyResponse(company domain.Company) companyResponse {
	return companyResponse{
		ID:        company.ID,
		Name:      company.Name,
		About:     company.About,
		PhotoURL:  company.PhotoURL,
		Location:  company.Location,
		OwnerID:   company.OwnerID,
		Followers: company.Followers,
	}
}

func (s *Server) handleListCompanies(w http.ResponseWriter, r *http.Request) {
	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 20)

	// followed=true narrows the list to companies the caller follows.
	var followerID int64
	if r.URL.Query().Get("followed") == "true" {
		claims := claimsFrom(r.Context())
		if claims == nil {
			s.respondError(w, http.StatusUnauthorized, "Missing or invalid authentication information")
			return
		}
		followerID = claims.UserID
	}

	companies, err := s.repo.Companies.List(r.Context(), followerID, skip, limit)
	if err != nil {
		s.logger.Printf("list companies error: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	items := make([]companyResponse, 0, len(companies))
	for _, company := range companies {
		items = append(items, toCompanyResponse(company))
	}
	s.respondJSON(w, http.StatusOK, items)
}

func (s *Server) handleGetCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	company, err := s.repo.Companies.GetByID(r.Context(), companyID)
	if err != nil {
		s.respondOpError(w, err, "Company not found")
		return
	}
	s.respondJSON(w, http.StatusOK, toCompanyResponse(company))
}

func (s *Server) handleCreateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyCreateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	company, err := s.repo.Companies.Create(r.Context(), repository.CompanyCreateParams{
		Name:     strings.TrimSpace(req.Name),
		About:    req.About,
		PhotoURL: req.PhotoURL,
		Location: req.Location,
		OwnerID:  claims.UserID,
	})
	if err != nil {
		s.respondOpError(w, err, "Company not found")
		return
	}
	s.respondJSON(w, http.StatusCreated, toCompanyResponse(company))
}

func (s *Server) handleUpdateCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req companyUpdateRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	company := domain.Company{
		ID:       companyID,
		Name:     strings.TrimSpace(req.Name),
		About:    req.About,
		PhotoURL: req.PhotoURL,
		Location: req.Location,
	}
	if err := s.repo.Companies.Update(r.Context(), company); err != nil {
		s.respondOpError(w, err, "Company not found")
		return
	}
	s.respondMessage(w, http.StatusOK, "Company updated successfully")
}

func (s *Server) handleDeleteCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.repo.Companies.SoftDelete(r.Context(), companyID); err != nil {
		s.respondOpError(w, err, "Company not found")
		return
	}
	s.respondMessage(w, http.StatusOK, "Company deleted successfully")
}

func (s *Server) handleFollowCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := pathID(r, "id")
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req followRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		s.respondDecodeError(w, err)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		s.respondValidationError(w, err)
		return
	}

	claims := claimsFrom(r.Context())
	message, err := s.repo.Companies.ToggleFollow(r.Context(), claims.UserID, companyID, *req.Followed)
	if err != nil {
		s.respondOpError(w, err, "Company not found")
		return
	}
	s.respondMessage(w, http.StatusOK, message)
}
