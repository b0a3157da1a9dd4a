package wire

import (
	"brewery-reviews/internal/adaptor"
	"brewery-reviews/pkg/middleware"
	"brewery-reviews/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireReview(
	r chi.Router,
	reviewHandler *adaptor.ReviewHandler,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/review/getBreweryReviews - all reviews for a brewery (public)
	r.Get("/api/review/getBreweryReviews", reviewHandler.GetBreweryReviews)

	// GET /api/review/getBreweryRating - aggregate rating for a brewery (public)
	r.Get("/api/review/getBreweryRating", reviewHandler.GetBreweryRating)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(config.JWT, log))

		// POST /api/review/addReview - submit a new review
		r.Post("/api/review/addReview", reviewHandler.AddReview)

		// GET /api/review/getReview - fetch one of the caller's reviews
		r.Get("/api/review/getReview", reviewHandler.GetReview)

		// GET /api/review/getAllReviews - all reviews by the caller
		r.Get("/api/review/getAllReviews", reviewHandler.GetAllReviews)

		// PUT /api/review/updateReview - update a review (owner only)
		r.Put("/api/review/updateReview", reviewHandler.UpdateReview)

		// DELETE /api/review/deleteReview - delete a review (owner only)
		r.Delete("/api/review/deleteReview", reviewHandler.DeleteReview)
	})
}
