package server

import (
	"errors"
	"net/http"

	"github.com/pshvarts/stockfolio/internal/interfaces"
	"github.com/pshvarts/stockfolio/internal/models"
)

// writePortfolioNotFound writes the 404 body for portfolio lookups.
func writePortfolioNotFound(w http.ResponseWriter, user string) {
	WriteJSON(w, http.StatusNotFound, map[string]string{
		"error":   "Portfolio not found",
		"user":    user,
		"message": "No portfolio exists for this user",
	})
}

// requireStorage gates repository dispatch on backend readiness. Handlers
// run their input validation before calling this, so malformed requests get
// a 400 even while the backend is still connecting.
func (s *Server) requireStorage(w http.ResponseWriter) bool {
	if err := s.app.Storage.Ready(); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "Service unavailable", "Storage is not ready: "+err.Error())
		return false
	}
	return true
}

// writeServiceError maps a service error to an HTTP response. Validation
// failures are the caller's fault; storage startup maps to 503; anything
// else is a server fault.
func (s *Server) writeServiceError(w http.ResponseWriter, err error, label, message string) {
	switch {
	case errors.Is(err, interfaces.ErrValidation):
		WriteError(w, http.StatusBadRequest, "Invalid input", err.Error())
	case errors.Is(err, interfaces.ErrStorageNotInitialized):
		WriteError(w, http.StatusServiceUnavailable, "Service unavailable", err.Error())
	default:
		s.logger.Error().Err(err).Msg(message)
		WriteError(w, http.StatusInternalServerError, label, message)
	}
}

// handlePortfolioCollection handles GET /portfolio (list) and POST /portfolio (create).
func (s *Server) handlePortfolioCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioList(w, r)
	case http.MethodPost:
		s.handlePortfolioCreate(w, r)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStorage(w) {
		return
	}

	portfolios, err := s.app.PortfolioService.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Failed to get portfolios", "An error occurred while fetching portfolios")
		return
	}
	if portfolios == nil {
		portfolios = []*models.Portfolio{}
	}
	WriteJSON(w, http.StatusOK, portfolios)
}

func (s *Server) handlePortfolioCreate(w http.ResponseWriter, r *http.Request) {
	var portfolio models.Portfolio
	if !DecodeJSON(w, r, &portfolio) {
		return
	}
	if !s.requireStorage(w) {
		return
	}

	created, err := s.app.PortfolioService.Create(r.Context(), &portfolio)
	if err != nil {
		s.writeServiceError(w, err, "Failed to create portfolio", "An error occurred while creating the portfolio")
		return
	}
	WriteJSON(w, http.StatusCreated, created)
}

// handlePortfolioByUser handles GET/PUT/DELETE /portfolio/{user}.
func (s *Server) handlePortfolioByUser(w http.ResponseWriter, r *http.Request, user string) {
	switch r.Method {
	case http.MethodGet:
		s.handlePortfolioGet(w, r, user)
	case http.MethodPut:
		s.handlePortfolioUpdate(w, r, user)
	case http.MethodDelete:
		s.handlePortfolioDelete(w, r, user)
	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (s *Server) handlePortfolioGet(w http.ResponseWriter, r *http.Request, user string) {
	if !s.requireStorage(w) {
		return
	}

	portfolio, err := s.app.PortfolioService.Get(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, err, "Failed to get portfolio", "An error occurred while fetching the portfolio")
		return
	}
	if portfolio == nil {
		writePortfolioNotFound(w, user)
		return
	}
	WriteJSON(w, http.StatusOK, portfolio)
}

// handlePortfolioUpdate applies a field-level replace. A missing portfolio is
// not an error here: the response is 200 with a null body.
func (s *Server) handlePortfolioUpdate(w http.ResponseWriter, r *http.Request, user string) {
	var patch models.PortfolioPatch
	if !DecodeJSON(w, r, &patch) {
		return
	}
	if !s.requireStorage(w) {
		return
	}

	updated, err := s.app.PortfolioService.Update(r.Context(), user, &patch)
	if err != nil {
		s.writeServiceError(w, err, "Failed to update portfolio", "An error occurred while updating the portfolio")
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}

func (s *Server) handlePortfolioDelete(w http.ResponseWriter, r *http.Request, user string) {
	if !s.requireStorage(w) {
		return
	}

	deleted, err := s.app.PortfolioService.Delete(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, err, "Failed to delete portfolio", "An error occurred while deleting the portfolio")
		return
	}
	if !deleted {
		writePortfolioNotFound(w, user)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Portfolio deleted",
		"user":    user,
	})
}
