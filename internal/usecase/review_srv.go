package usecase

import (
	"context"
	"fmt"
	"time"

	"brewery-reviews/internal/data/entity"
	"brewery-reviews/internal/data/repository"
	"brewery-reviews/internal/dto/request"
	"brewery-reviews/internal/dto/response"
	"brewery-reviews/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	AddReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.AddReviewResponse, error)
	GetReview(ctx context.Context, userID, reviewID string) (*response.ReviewResponse, error)
	GetBreweryReviews(ctx context.Context, breweryID string) ([]response.ReviewResponse, error)
	GetBreweryRating(ctx context.Context, breweryID string) (*response.BreweryRatingResponse, error)
	GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error)
	UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, userID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

func (s *reviewService) AddReview(ctx context.Context, userID string, req *request.CreateReviewRequest) (*response.AddReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Add review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	// Parse caller ID
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	// The owning user must exist before a review can point at it
	user, err := s.repo.User.FindByID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to check user", zap.Error(err), zap.String("user_id", userID))
		return nil, fmt.Errorf("check user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", userID)
	}

	// Create review entity
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:      userUUID,
		BreweryID:   req.BreweryID,
		Rating:      req.Rating,
		Description: req.Description,
	}

	// Save review
	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("brewery_id", req.BreweryID),
		)
		return nil, fmt.Errorf("create review: %w", err)
	}

	// Fold the new rating into the brewery summary
	if err := s.repo.Rating.RecordNewRating(ctx, req.BreweryID, req.Rating); err != nil {
		s.log.Warn("Failed to update brewery rating",
			zap.Error(err),
			zap.String("brewery_id", req.BreweryID),
		)
		// Review is already persisted, keep going
	}

	s.log.Info("Review added",
		zap.String("review_id", review.ID.String()),
		zap.String("user_id", userID),
		zap.String("brewery_id", req.BreweryID),
		zap.Int("rating", req.Rating),
	)

	return &response.AddReviewResponse{ReviewID: review.ID.String()}, nil
}

func (s *reviewService) GetReview(ctx context.Context, userID, reviewID string) (*response.ReviewResponse, error) {
	review, err := s.findOwnedReview(ctx, userID, reviewID, "view")
	if err != nil {
		return nil, err
	}

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) GetBreweryReviews(ctx context.Context, breweryID string) ([]response.ReviewResponse, error) {
	if breweryID == "" {
		return nil, fmt.Errorf("validation failed: breweryId can't be empty")
	}

	reviews, err := s.repo.Review.FindByBreweryID(ctx, breweryID)
	if err != nil {
		s.log.Error("Failed to get brewery reviews",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return nil, fmt.Errorf("get brewery reviews: %w", err)
	}

	// No reviews yet is a valid, empty result
	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) GetBreweryRating(ctx context.Context, breweryID string) (*response.BreweryRatingResponse, error) {
	if breweryID == "" {
		return nil, fmt.Errorf("validation failed: breweryId can't be empty")
	}

	rating, err := s.repo.Rating.FindByBreweryID(ctx, breweryID)
	if err != nil {
		s.log.Error("Failed to get brewery rating",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return nil, fmt.Errorf("get brewery rating: %w", err)
	}
	if rating == nil {
		return nil, fmt.Errorf("rating for brewery %s not found", breweryID)
	}

	return response.BreweryRatingToResponse(rating), nil
}

func (s *reviewService) GetUserReviews(ctx context.Context, userID string) ([]response.ReviewResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	reviews, err := s.repo.Review.FindByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to get user reviews",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user reviews: %w", err)
	}

	return response.ReviewsToResponse(reviews), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, userID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	// Validate request
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findOwnedReview(ctx, userID, reviewID, "update")
	if err != nil {
		return nil, err
	}

	// Update only supplied fields
	updated := false

	if req.Rating != nil && *req.Rating != review.Rating {
		review.Rating = *req.Rating
		updated = true
	}

	if req.Description != nil && *req.Description != review.Description {
		review.Description = *req.Description
		updated = true
	}

	if !updated {
		reviewResp := response.ReviewToResponse(review)
		return &reviewResp, nil
	}

	// Save updated review. prevRating is the rating the row actually held at
	// write time, which may differ from the loaded copy if another edit
	// landed in between.
	prevRating, err := s.repo.Review.Update(ctx, review)
	if err != nil {
		s.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return nil, fmt.Errorf("update review: %w", err)
	}

	// A changed rating moves the brewery average
	if review.Rating != prevRating {
		if err := s.repo.Rating.ApplyRatingChange(ctx, review.BreweryID, prevRating, review.Rating); err != nil {
			s.log.Warn("Failed to update brewery rating",
				zap.Error(err),
				zap.String("brewery_id", review.BreweryID),
			)
			// Review is already updated, keep going
		}
	}

	s.log.Info("Review updated",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
	)

	reviewResp := response.ReviewToResponse(review)
	return &reviewResp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	review, err := s.findOwnedReview(ctx, userID, reviewID, "delete")
	if err != nil {
		return err
	}

	// Delete review
	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", reviewID),
		)
		return fmt.Errorf("delete review: %w", err)
	}

	// Back the deleted rating out of the brewery summary
	if err := s.repo.Rating.RemoveRating(ctx, review.BreweryID, review.Rating); err != nil {
		s.log.Warn("Failed to update brewery rating",
			zap.Error(err),
			zap.String("brewery_id", review.BreweryID),
		)
		// Review is already gone, keep going
	}

	s.log.Info("Review deleted",
		zap.String("review_id", reviewID),
		zap.String("user_id", userID),
		zap.String("brewery_id", review.BreweryID),
	)

	return nil
}

// ==================== HELPER METHODS ====================

// findOwnedReview loads a review and enforces the ownership check: the
// review must exist and belong to the calling user.
func (s *reviewService) findOwnedReview(ctx context.Context, userID, reviewID, action string) (*entity.Review, error) {
	reviewUUID, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID format %s: %w", reviewID, err)
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	review, err := s.repo.Review.FindByID(ctx, reviewUUID)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("find review: %w", err)
	}
	if review == nil {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	if review.UserID != userUUID {
		s.log.Warn("Ownership check failed",
			zap.String("review_id", reviewID),
			zap.String("owner_id", review.UserID.String()),
			zap.String("caller_id", userID),
		)
		return nil, fmt.Errorf("not authorized to %s this review", action)
	}

	return review, nil
}
