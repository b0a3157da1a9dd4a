package adaptor

import (
	"brewery-reviews/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth   *AuthHandler
	Review *ReviewHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:   NewAuthHandler(service.Auth, log),
		Review: NewReviewHandler(service.Review, log),
	}
}
