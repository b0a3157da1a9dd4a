package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"brewery-reviews/internal/data/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupReviewRepo(t *testing.T) (ReviewRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := NewReviewRepository(mock, zap.NewNop())
	return repo, mock
}

func storedReview() *entity.Review {
	return &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Date(2025, 3, 2, 9, 0, 0, 0, time.UTC),
		},
		UserID:      uuid.New(),
		BreweryID:   "b1",
		Rating:      4,
		Description: "crisp",
	}
}

func reviewColumns() []string {
	return []string{"id", "user_id", "brewery_id", "rating", "description", "created_at"}
}

func reviewRow(r *entity.Review) *pgxmock.Rows {
	return pgxmock.NewRows(reviewColumns()).
		AddRow(r.ID, r.UserID, r.BreweryID, r.Rating, r.Description, r.CreatedAt)
}

func TestReviewRepo_Create(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	review := storedReview()
	mock.ExpectExec("INSERT INTO reviews").
		WithArgs(review.ID, review.UserID, review.BreweryID, review.Rating,
			review.Description, review.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Create(context.Background(), review)

	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_FindByID(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	review := storedReview()
	mock.ExpectQuery("SELECT id, user_id, brewery_id, rating, description, created_at").
		WithArgs(review.ID).
		WillReturnRows(reviewRow(review))

	found, err := repo.FindByID(context.Background(), review.ID)

	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, review.ID, found.ID)
	assert.Equal(t, review.BreweryID, found.BreweryID)
	assert.Equal(t, review.Rating, found.Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_FindByID_NoRows(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT id, user_id, brewery_id, rating, description, created_at").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)

	found, err := repo.FindByID(context.Background(), id)

	require.NoError(t, err)
	assert.Nil(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_FindByBreweryID(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	first := storedReview()
	second := storedReview()
	second.Rating = 2
	rows := pgxmock.NewRows(reviewColumns()).
		AddRow(first.ID, first.UserID, first.BreweryID, first.Rating, first.Description, first.CreatedAt).
		AddRow(second.ID, second.UserID, second.BreweryID, second.Rating, second.Description, second.CreatedAt)

	mock.ExpectQuery("SELECT id, user_id, brewery_id, rating, description, created_at").
		WithArgs("b1").
		WillReturnRows(rows)

	reviews, err := repo.FindByBreweryID(context.Background(), "b1")

	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, 4, reviews[0].Rating)
	assert.Equal(t, 2, reviews[1].Rating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_FindByUserID_Empty(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	userID := uuid.New()
	mock.ExpectQuery("SELECT id, user_id, brewery_id, rating, description, created_at").
		WithArgs(userID).
		WillReturnRows(pgxmock.NewRows(reviewColumns()))

	reviews, err := repo.FindByUserID(context.Background(), userID)

	require.NoError(t, err)
	assert.Empty(t, reviews)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_Update_ReturnsPriorRating(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	review := storedReview()
	review.Rating = 2
	mock.ExpectQuery("UPDATE reviews").
		WithArgs(review.ID, review.Rating, review.Description).
		WillReturnRows(pgxmock.NewRows([]string{"rating"}).AddRow(4))

	prevRating, err := repo.Update(context.Background(), review)

	require.NoError(t, err)
	assert.Equal(t, 4, prevRating)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewRepo_Update_Missing(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	review := storedReview()
	mock.ExpectQuery("UPDATE reviews").
		WithArgs(review.ID, review.Rating, review.Description).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), review)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

// droppedConnRows mimics a connection lost mid-iteration: Next reports no
// more rows and the failure surfaces only through Err.
type droppedConnRows struct {
	err error
}

func (r *droppedConnRows) Close()                                       {}
func (r *droppedConnRows) Err() error                                   { return r.err }
func (r *droppedConnRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *droppedConnRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *droppedConnRows) Next() bool                                   { return false }
func (r *droppedConnRows) Scan(dest ...any) error                       { return nil }
func (r *droppedConnRows) Values() ([]any, error)                       { return nil, r.err }
func (r *droppedConnRows) RawValues() [][]byte                          { return nil }
func (r *droppedConnRows) Conn() *pgx.Conn                              { return nil }

type droppedConnDB struct {
	rowsErr error
}

func (d *droppedConnDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return &droppedConnRows{err: d.rowsErr}, nil
}

func (d *droppedConnDB) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (d *droppedConnDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (d *droppedConnDB) Begin(context.Context) (pgx.Tx, error) { return nil, nil }

func (d *droppedConnDB) Ping(context.Context) error { return nil }

func (d *droppedConnDB) Close() {}

func TestReviewRepo_FindByBreweryID_ConnLostMidStream(t *testing.T) {
	connErr := errors.New("connection reset")
	repo := NewReviewRepository(&droppedConnDB{rowsErr: connErr}, zap.NewNop())

	reviews, err := repo.FindByBreweryID(context.Background(), "b1")

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Nil(t, reviews)
}

func TestReviewRepo_FindByUserID_ConnLostMidStream(t *testing.T) {
	connErr := errors.New("connection reset")
	repo := NewReviewRepository(&droppedConnDB{rowsErr: connErr}, zap.NewNop())

	reviews, err := repo.FindByUserID(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, connErr)
	assert.Nil(t, reviews)
}

func TestReviewRepo_Delete_Missing(t *testing.T) {
	repo, mock := setupReviewRepo(t)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("DELETE FROM reviews").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), id)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	require.NoError(t, mock.ExpectationsWereMet())
}
