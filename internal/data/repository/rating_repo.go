package repository

import (
	"context"
	"fmt"

	"brewery-reviews/internal/data/entity"
	"brewery-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RatingRepository maintains the denormalized per-brewery rating summary.
// Every mutation is a single atomic statement (or one transaction), so
// concurrent reviews for the same brewery cannot lose an update.
type RatingRepository interface {
	FindByBreweryID(ctx context.Context, breweryID string) (*entity.BreweryRating, error)
	RecordNewRating(ctx context.Context, breweryID string, rating int) error
	ApplyRatingChange(ctx context.Context, breweryID string, oldRating, newRating int) error
	RemoveRating(ctx context.Context, breweryID string, oldRating int) error
}

type ratingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewRatingRepository(db database.PgxIface, log *zap.Logger) RatingRepository {
	return &ratingRepository{
		db:  db,
		log: log.With(zap.String("repository", "rating")),
	}
}

func (r *ratingRepository) FindByBreweryID(ctx context.Context, breweryID string) (*entity.BreweryRating, error) {
	query := `
		SELECT brewery_id, average_rating, review_count
		FROM brewery_ratings
		WHERE brewery_id = $1
	`

	var rating entity.BreweryRating
	err := r.db.QueryRow(ctx, query, breweryID).Scan(
		&rating.BreweryID,
		&rating.AverageRating,
		&rating.ReviewCount,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find brewery rating",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return nil, fmt.Errorf("find rating for brewery %s: %w", breweryID, err)
	}

	return &rating, nil
}

// RecordNewRating folds a new review into the running mean. The upsert
// performs the read-modify-write inside one statement, so two reviews
// arriving together for the same brewery both land in the average.
func (r *ratingRepository) RecordNewRating(ctx context.Context, breweryID string, rating int) error {
	query := `
		INSERT INTO brewery_ratings (brewery_id, average_rating, review_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (brewery_id) DO UPDATE
		SET average_rating = (brewery_ratings.average_rating * brewery_ratings.review_count
		                      + EXCLUDED.average_rating)
		                     / (brewery_ratings.review_count + 1),
		    review_count   = brewery_ratings.review_count + 1
	`

	_, err := r.db.Exec(ctx, query, breweryID, float64(rating))
	if err != nil {
		r.log.Error("Failed to record new rating",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
			zap.Int("rating", rating),
		)
		return fmt.Errorf("record rating for brewery %s: %w", breweryID, err)
	}

	return nil
}

// ApplyRatingChange adjusts the mean after a review's rating was edited.
// The count stays the same, only the contribution of one review moves.
func (r *ratingRepository) ApplyRatingChange(ctx context.Context, breweryID string, oldRating, newRating int) error {
	if oldRating == newRating {
		return nil
	}

	query := `
		UPDATE brewery_ratings
		SET average_rating = (average_rating * review_count - $2 + $3) / review_count
		WHERE brewery_id = $1
	`

	result, err := r.db.Exec(ctx, query, breweryID, float64(oldRating), float64(newRating))
	if err != nil {
		r.log.Error("Failed to apply rating change",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return fmt.Errorf("apply rating change for brewery %s: %w", breweryID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("rating for brewery %s not found", breweryID)
	}

	return nil
}

// RemoveRating backs one review out of the summary. When the last review
// goes, the summary row goes with it so review_count never drops below 1.
// The locking read pins the row first, so concurrent removals for the same
// brewery each act on the count the previous one left behind.
func (r *ratingRepository) RemoveRating(ctx context.Context, breweryID string, oldRating int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin remove rating for brewery %s: %w", breweryID, err)
	}
	defer tx.Rollback(ctx)

	lockQuery := `
		SELECT review_count
		FROM brewery_ratings
		WHERE brewery_id = $1
		FOR UPDATE
	`

	var count int64
	err = tx.QueryRow(ctx, lockQuery, breweryID).Scan(&count)
	if err == pgx.ErrNoRows {
		// No summary row, nothing to back out
		return nil
	}
	if err != nil {
		r.log.Error("Failed to lock brewery rating",
			zap.Error(err),
			zap.String("brewery_id", breweryID),
		)
		return fmt.Errorf("remove rating for brewery %s: %w", breweryID, err)
	}

	if count <= 1 {
		deleteQuery := `DELETE FROM brewery_ratings WHERE brewery_id = $1`

		if _, err := tx.Exec(ctx, deleteQuery, breweryID); err != nil {
			r.log.Error("Failed to delete brewery rating",
				zap.Error(err),
				zap.String("brewery_id", breweryID),
			)
			return fmt.Errorf("remove rating for brewery %s: %w", breweryID, err)
		}
	} else {
		updateQuery := `
			UPDATE brewery_ratings
			SET average_rating = (average_rating * review_count - $2) / (review_count - 1),
			    review_count   = review_count - 1
			WHERE brewery_id = $1
		`

		if _, err := tx.Exec(ctx, updateQuery, breweryID, float64(oldRating)); err != nil {
			r.log.Error("Failed to decrement brewery rating",
				zap.Error(err),
				zap.String("brewery_id", breweryID),
			)
			return fmt.Errorf("remove rating for brewery %s: %w", breweryID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit remove rating for brewery %s: %w", breweryID, err)
	}

	return nil
}
