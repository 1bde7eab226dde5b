package server

import (
	"net/http"
	"strings"

	"github.com/pshvarts/stockfolio/internal/models"
)

// --- User handlers ---

// handleUserLogin handles POST /user/login. Authentication is an existence
// check by name: no password is required or compared.
func (s *Server) handleUserLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		s.logger.Debug().Msg("Login failed: empty username")
		WriteError(w, http.StatusBadRequest, "Invalid input", "Username is required")
		return
	}
	if !s.requireStorage(w) {
		return
	}

	user, err := s.app.UserService.Authenticate(r.Context(), username)
	if err != nil {
		s.writeServiceError(w, err, "Login failed", "An error occurred during login")
		return
	}
	if user == nil {
		WriteError(w, http.StatusUnauthorized, "Authentication failed", "Username does not exist in the database")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"user":    user,
	})
}

// handleUserRegister handles POST /user/register.
func (s *Server) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}
	if !s.requireStorage(w) {
		return
	}

	user, err := s.app.UserService.Create(r.Context(), &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		s.writeServiceError(w, err, "Registration failed", "An error occurred during registration")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"user":    user,
	})
}

// handleUserGet handles GET /user/{name}.
func (s *Server) handleUserGet(w http.ResponseWriter, r *http.Request, name string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if !s.requireStorage(w) {
		return
	}

	user, err := s.app.UserService.GetByName(r.Context(), name)
	if err != nil {
		s.writeServiceError(w, err, "Failed to get user", "An error occurred while fetching user data")
		return
	}
	if user == nil {
		WriteError(w, http.StatusNotFound, "User not found", "Name does not exist")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    user,
	})
}

// handleUserCheckDatabase handles GET /user/check/database: a summary of the
// users collection with passwords redacted.
func (s *Server) handleUserCheckDatabase(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	if !s.requireStorage(w) {
		return
	}

	users, err := s.app.UserService.GetAll(r.Context())
	if err != nil {
		s.writeServiceError(w, err, "Database check failed", "An error occurred while checking the database")
		return
	}

	summaries := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, map[string]interface{}{
			"name":       u.Name,
			"email":      u.Email,
			"created_at": u.CreatedAt,
		})
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":    true,
		"message":    "Database check completed",
		"totalUsers": len(users),
		"users":      summaries,
	})
}
