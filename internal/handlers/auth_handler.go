// handlers/auth_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	authService "github.com/opsdesk/shiftdesk/internal/services/auth"
)

type AuthHandler struct {
	db         *sql.DB
	jwtService *authService.JWTService
}

func NewAuthHandler(db *sql.DB, jwtService *authService.JWTService) *AuthHandler {
	return &AuthHandler{db: db, jwtService: jwtService}
}

func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var regData models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&regData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if regData.Username == "" || regData.Password == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	var count int
	err := h.db.QueryRow("SELECT COUNT(*) FROM users WHERE username = $1", regData.Username).Scan(&count)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if count > 0 {
		response.RespondWithError(w, http.StatusBadRequest, "Username already exists")
		return
	}

	passwordHash, err := authService.HashPassword(regData.Password)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	var userID int
	err = h.db.QueryRow(`
		INSERT INTO users (username, name, password_hash, role, is_active)
		VALUES ($1, $2, $3, 'member', TRUE)
		RETURNING id`,
		regData.Username,
		regData.Name,
		passwordHash,
	).Scan(&userID)
	if err != nil {
		log.Printf("DB error creating user %s: %v", regData.Username, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	if regData.TeamID != "" {
		if _, err := h.db.Exec(`
			INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)
			ON CONFLICT DO NOTHING`, regData.TeamID, userID); err != nil {
			log.Printf("DB error adding user %d to team %s: %v", userID, regData.TeamID, err)
		}
	}

	response.RespondWithJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "User registered successfully",
		"user_id": userID,
	})
}

func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var loginData models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginData); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	var user models.User
	err := h.db.QueryRow(`
		SELECT id, username, name, password_hash, role
		FROM users
		WHERE username = $1 AND is_active = TRUE`,
		loginData.Username,
	).Scan(&user.ID, &user.Username, &user.Name, &user.PasswordHash, &user.Role)
	if err == sql.ErrNoRows {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	} else if err != nil {
		log.Printf("DB error fetching user %s: %v", loginData.Username, err)
		response.RespondWithError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !authService.CheckPassword(user.PasswordHash, loginData.Password) {
		response.RespondWithError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		response.RespondWithError(w, http.StatusInternalServerError, "Could not generate token")
		return
	}

	response.RespondWithJSON(w, http.StatusOK, models.AuthResponse{
		Token:    token,
		Role:     user.Role,
		UserID:   user.ID,
		Username: user.Username,
	})
}
