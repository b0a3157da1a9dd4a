package repository

import (
	"context"
	"fmt"

	"brewery-reviews/internal/data/entity"
	"brewery-reviews/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReviewRepository interface {
	Create(ctx context.Context, review *entity.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error)
	FindByBreweryID(ctx context.Context, breweryID string) ([]*entity.Review, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error)
	Update(ctx context.Context, review *entity.Review) (int, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReviewRepository(db database.PgxIface, log *zap.Logger) ReviewRepository {
	return &reviewRepository{
		db:  db,
		log: log.With(zap.String("repository", "review")),
	}
}

func (r *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	query := `
		INSERT INTO reviews (id, user_id, brewery_id, rating, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		review.ID,
		review.UserID,
		review.BreweryID,
		review.Rating,
		review.Description,
		review.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("user_id", review.UserID.String()),
			zap.String("brewery_id", review.BreweryID),
		)
		return fmt.Errorf("create review for brewery %s by user %s: %w",
			review.BreweryID, review.UserID.String(), err)
	}

	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	query := `
		SELECT id, user_id, brewery_id, rating, description, created_at
		FROM reviews
		WHERE id = $1
	`

	var review entity.Review
	err := r.db.QueryRow(ctx, query, id).Scan(
		&review.ID,
		&review.UserID,
		&review.BreweryID,
		&review.Rating,
		&review.Description,
		&review.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find review by ID",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return nil, fmt.Errorf("find review by ID %s: %w", id.String(), err)
	}

	return &review, nil
}

func (r *reviewRepository) FindByBreweryID(ctx context.Context, breweryID string) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, brewery_id, rating, description, created_at
		FROM reviews
		WHERE brewery_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, breweryID)
	if err != nil {
		r.log.Error("Failed to find reviews by brewery ID",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return nil, fmt.Errorf("find reviews by brewery ID %s: %w", breweryID, err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.BreweryID,
			&review.Rating,
			&review.Description,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to iterate review rows",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return nil, fmt.Errorf("iterate reviews for brewery %s: %w", breweryID, err)
	}

	return reviews, nil
}

func (r *reviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	query := `
		SELECT id, user_id, brewery_id, rating, description, created_at
		FROM reviews
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("Failed to find reviews by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find reviews by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var reviews []*entity.Review
	for rows.Next() {
		var review entity.Review
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.BreweryID,
			&review.Rating,
			&review.Description,
			&review.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan review row", zap.Error(err))
			return nil, fmt.Errorf("scan review row: %w", err)
		}
		reviews = append(reviews, &review)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Failed to iterate review rows",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("iterate reviews for user %s: %w", userID.String(), err)
	}

	return reviews, nil
}

// Update writes the new rating and description and reports the rating the
// row held before the write. The prior value comes from a locking read in
// the same statement, so concurrent edits each see the rating they actually
// replaced.
func (r *reviewRepository) Update(ctx context.Context, review *entity.Review) (int, error) {
	query := `
		UPDATE reviews
		SET rating = $2, description = $3
		FROM (SELECT id, rating FROM reviews WHERE id = $1 FOR UPDATE) prior
		WHERE reviews.id = prior.id
		RETURNING prior.rating
	`

	var prevRating int
	err := r.db.QueryRow(ctx, query,
		review.ID,
		review.Rating,
		review.Description,
	).Scan(&prevRating)

	if err == pgx.ErrNoRows {
		return 0, fmt.Errorf("review %s not found", review.ID.String())
	}
	if err != nil {
		r.log.Error("Failed to update review",
			zap.Error(err),
			zap.String("review_id", review.ID.String()),
		)
		return 0, fmt.Errorf("update review %s: %w", review.ID.String(), err)
	}

	return prevRating, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM reviews WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete review",
			zap.Error(err),
			zap.String("review_id", id.String()),
		)
		return fmt.Errorf("delete review %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("review %s not found", id.String())
	}

	r.log.Info("Review deleted", zap.String("review_id", id.String()))
	return nil
}
