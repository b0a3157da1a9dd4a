package response

import (
	"time"

	"brewery-reviews/internal/data/entity"
)

type AuthResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Helper converter
func AuthToResponse(user *entity.User, token string, expiresAt time.Time) *AuthResponse {
	return &AuthResponse{
		UserID:    user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Token:     token,
		ExpiresAt: expiresAt,
	}
}
