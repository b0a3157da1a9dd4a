package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"brewery-reviews/internal/dto/request"
	"brewery-reviews/internal/usecase"
	"brewery-reviews/pkg/utils"

	"go.uber.org/zap"
)

type ReviewHandler struct {
	service usecase.ReviewService
	log     *zap.Logger
}

func NewReviewHandler(service usecase.ReviewService, log *zap.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		log:     log.With(zap.String("handler", "review")),
	}
}

// AddReview handles POST /api/review/addReview (protected)
func (h *ReviewHandler) AddReview(w http.ResponseWriter, r *http.Request) {
	// Get user ID from context
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.AddReview(r.Context(), userID.String(), &req)
	if err != nil {
		h.handleServiceError(w, err, "add review")
		return
	}

	utils.ResponseSuccess(w, "Review added successfully", result)
}

// GetReview handles GET /api/review/getReview?reviewId= (protected, owner only)
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := r.URL.Query().Get("reviewId")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "reviewId can't be empty", nil)
		return
	}

	review, err := h.service.GetReview(r.Context(), userID.String(), reviewID)
	if err != nil {
		h.handleServiceError(w, err, "get review")
		return
	}

	utils.ResponseSuccess(w, "Review fetched successfully", review)
}

// GetBreweryReviews handles GET /api/review/getBreweryReviews?breweryId= (public)
func (h *ReviewHandler) GetBreweryReviews(w http.ResponseWriter, r *http.Request) {
	breweryID := r.URL.Query().Get("breweryId")
	if breweryID == "" {
		utils.ResponseBadRequest(w, "breweryId can't be empty", nil)
		return
	}

	reviews, err := h.service.GetBreweryReviews(r.Context(), breweryID)
	if err != nil {
		h.handleServiceError(w, err, "get brewery reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews fetched successfully", reviews)
}

// GetBreweryRating handles GET /api/review/getBreweryRating?breweryId= (public)
func (h *ReviewHandler) GetBreweryRating(w http.ResponseWriter, r *http.Request) {
	breweryID := r.URL.Query().Get("breweryId")
	if breweryID == "" {
		utils.ResponseBadRequest(w, "breweryId can't be empty", nil)
		return
	}

	rating, err := h.service.GetBreweryRating(r.Context(), breweryID)
	if err != nil {
		h.handleServiceError(w, err, "get brewery rating")
		return
	}

	utils.ResponseSuccess(w, "Rating fetched successfully", rating)
}

// GetAllReviews handles GET /api/review/getAllReviews (protected)
func (h *ReviewHandler) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviews, err := h.service.GetUserReviews(r.Context(), userID.String())
	if err != nil {
		h.handleServiceError(w, err, "get all reviews")
		return
	}

	utils.ResponseSuccess(w, "Reviews fetched successfully", reviews)
}

// UpdateReview handles PUT /api/review/updateReview?reviewId= (protected, owner only)
func (h *ReviewHandler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := r.URL.Query().Get("reviewId")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "reviewId can't be empty", nil)
		return
	}

	var req request.UpdateReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	// Validate request
	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	review, err := h.service.UpdateReview(r.Context(), userID.String(), reviewID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update review")
		return
	}

	utils.ResponseSuccess(w, "Review updated successfully", review)
}

// DeleteReview handles DELETE /api/review/deleteReview?reviewId= (protected, owner only)
func (h *ReviewHandler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	reviewID := r.URL.Query().Get("reviewId")
	if reviewID == "" {
		utils.ResponseBadRequest(w, "reviewId can't be empty", nil)
		return
	}

	if err := h.service.DeleteReview(r.Context(), userID.String(), reviewID); err != nil {
		h.handleServiceError(w, err, "delete review")
		return
	}

	utils.ResponseSuccess(w, "Review deleted successfully", nil)
}

// handleServiceError maps review service errors to HTTP responses
func (h *ReviewHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "not authorized"):
		h.log.Warn(operation+" failed - not owner",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseUnauthorized(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"):
		h.log.Warn(operation+" failed - bad request",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, errMsg)
	}
}
