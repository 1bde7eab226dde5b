package server

import (
	"net/http"

	"github.com/pshvarts/stockfolio/internal/services/portfolio"
)

// handlePortfolioChart handles GET /portfolio/{user}/chart: a PNG bar chart
// of the user's holding quantities.
func (s *Server) handlePortfolioChart(w http.ResponseWriter, r *http.Request, user string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	if !s.requireStorage(w) {
		return
	}

	p, err := s.app.PortfolioService.Get(r.Context(), user)
	if err != nil {
		s.writeServiceError(w, err, "Failed to get portfolio", "An error occurred while fetching the portfolio")
		return
	}
	if p == nil {
		writePortfolioNotFound(w, user)
		return
	}

	png, err := portfolio.RenderHoldingsChart(p)
	if err != nil {
		WriteError(w, http.StatusUnprocessableEntity, "Chart unavailable", err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
