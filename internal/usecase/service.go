package usecase

import (
	"brewery-reviews/internal/data/repository"
	"brewery-reviews/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth   AuthService
	Review ReviewService
}

func NewService(repo *repository.Repository, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:   NewAuthService(repo, config, log),
		Review: NewReviewService(repo, log),
	}
}
