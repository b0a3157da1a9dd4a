package response

import (
	"time"

	"brewery-reviews/internal/data/entity"
)

type ReviewResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	BreweryID   string    `json:"breweryId"`
	Rating      int       `json:"rating"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

type AddReviewResponse struct {
	ReviewID string `json:"reviewId"`
}

type BreweryRatingResponse struct {
	BreweryID     string  `json:"breweryId"`
	AverageRating float64 `json:"averageRating"`
	ReviewCount   int64   `json:"reviewCount"`
}

// Helper converters
func ReviewToResponse(review *entity.Review) ReviewResponse {
	return ReviewResponse{
		ID:          review.ID.String(),
		UserID:      review.UserID.String(),
		BreweryID:   review.BreweryID,
		Rating:      review.Rating,
		Description: review.Description,
		CreatedAt:   review.CreatedAt,
	}
}

func ReviewsToResponse(reviews []*entity.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i, review := range reviews {
		responses[i] = ReviewToResponse(review)
	}
	return responses
}

func BreweryRatingToResponse(rating *entity.BreweryRating) *BreweryRatingResponse {
	return &BreweryRatingResponse{
		BreweryID:     rating.BreweryID,
		AverageRating: rating.AverageRating,
		ReviewCount:   rating.ReviewCount,
	}
}
