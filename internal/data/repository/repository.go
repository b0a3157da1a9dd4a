package repository

import (
	"brewery-reviews/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User   UserRepository
	Review ReviewRepository
	Rating RatingRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:   NewUserRepository(db, log),
		Review: NewReviewRepository(db, log),
		Rating: NewRatingRepository(db, log),
	}
}
