package usecase

import (
	"context"

	"brewery-reviews/internal/data/entity"
	"brewery-reviews/internal/data/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// --- Mock repositories ---

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Review), args.Error(1)
}

func (m *mockReviewRepository) FindByBreweryID(ctx context.Context, breweryID string) ([]*entity.Review, error) {
	args := m.Called(ctx, breweryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *mockReviewRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Review, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Review), args.Error(1)
}

func (m *mockReviewRepository) Update(ctx context.Context, review *entity.Review) (int, error) {
	args := m.Called(ctx, review)
	return args.Int(0), args.Error(1)
}

func (m *mockReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockRatingRepository struct {
	mock.Mock
}

func (m *mockRatingRepository) FindByBreweryID(ctx context.Context, breweryID string) (*entity.BreweryRating, error) {
	args := m.Called(ctx, breweryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BreweryRating), args.Error(1)
}

func (m *mockRatingRepository) RecordNewRating(ctx context.Context, breweryID string, rating int) error {
	args := m.Called(ctx, breweryID, rating)
	return args.Error(0)
}

func (m *mockRatingRepository) ApplyRatingChange(ctx context.Context, breweryID string, oldRating, newRating int) error {
	args := m.Called(ctx, breweryID, oldRating, newRating)
	return args.Error(0)
}

func (m *mockRatingRepository) RemoveRating(ctx context.Context, breweryID string, oldRating int) error {
	args := m.Called(ctx, breweryID, oldRating)
	return args.Error(0)
}

// --- Test helpers ---

type testRepos struct {
	user   *mockUserRepository
	review *mockReviewRepository
	rating *mockRatingRepository
}

func newTestRepos() (*repository.Repository, *testRepos) {
	mocks := &testRepos{
		user:   &mockUserRepository{},
		review: &mockReviewRepository{},
		rating: &mockRatingRepository{},
	}

	return &repository.Repository{
		User:   mocks.user,
		Review: mocks.review,
		Rating: mocks.rating,
	}, mocks
}

func newTestLogger() *zap.Logger {
	return zap.NewNop()
}

func intPtr(i int) *int {
	return &i
}

func strPtr(s string) *string {
	return &s
}
