package models

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	TeamID       string `json:"team_id,omitempty"`
	CreatedAt    string `json:"created_at,omitempty"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	TeamID   string `json:"team_id,omitempty"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Role     string `json:"role"`
	UserID   int    `json:"user_id,omitempty"`
	Username string `json:"username,omitempty"`
}
