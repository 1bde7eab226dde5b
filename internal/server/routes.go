package server

import (
	"net/http"
	"strings"

	"github.com/pshvarts/stockfolio/internal/common"
	"github.com/pshvarts/stockfolio/internal/interfaces"
)

// registerRoutes sets up all REST API routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/health/ready", s.handleHealthReady)
	mux.HandleFunc("/api/version", s.handleVersion)

	// Portfolios
	mux.HandleFunc("/portfolio/", s.routePortfolio)
	mux.HandleFunc("/portfolio", s.handlePortfolioCollection)

	// Users
	mux.HandleFunc("/user/login", s.handleUserLogin)
	mux.HandleFunc("/user/register", s.handleUserRegister)
	mux.HandleFunc("/user/check/database", s.handleUserCheckDatabase)
	mux.HandleFunc("/user/", s.routeUser)
}

// routePortfolio dispatches /portfolio/{user} and /portfolio/{user}/chart.
func (s *Server) routePortfolio(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/portfolio/")
	if path == "" {
		s.handlePortfolioCollection(w, r)
		return
	}

	parts := strings.SplitN(path, "/", 2)
	user := parts[0]
	subpath := ""
	if len(parts) > 1 {
		subpath = parts[1]
	}

	switch subpath {
	case "":
		s.handlePortfolioByUser(w, r, user)
	case "chart":
		s.handlePortfolioChart(w, r, user)
	default:
		WriteError(w, http.StatusNotFound, "Not found", "")
	}
}

// routeUser dispatches GET /user/{name}.
func (s *Server) routeUser(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/user/")
	if name == "" || strings.Contains(name, "/") {
		WriteError(w, http.StatusNotFound, "Not found", "")
		return
	}
	s.handleUserGet(w, r, name)
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealthReady reports storage readiness. 200 once the backend is
// usable, 503 while connecting or after a failed startup.
func (s *Server) handleHealthReady(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	state := s.app.Storage.State()
	body := map[string]interface{}{
		"status":  "ready",
		"storage": string(state),
	}
	if state == interfaces.StorageReady {
		WriteJSON(w, http.StatusOK, body)
		return
	}

	body["status"] = "not ready"
	if err := s.app.Storage.Ready(); err != nil {
		body["error"] = err.Error()
	}
	WriteJSON(w, http.StatusServiceUnavailable, body)
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}
