package request

type CreateReviewRequest struct {
	BreweryID   string `json:"breweryId" validate:"required,min=1"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Description string `json:"description" validate:"required,min=1"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
}
