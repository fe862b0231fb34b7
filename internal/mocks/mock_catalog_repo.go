package mocks

import (
	"context"

	"github.com/ahernandez25/CS166-Phase3/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCatalogRepo struct {
	mock.Mock
	domain.CatalogRepository
}

func (m *MockCatalogRepo) GetShowById(ctx context.Context, showID int) (*domain.Show, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Show), args.Error(1)
}

func (m *MockCatalogRepo) GetTheaterById(ctx context.Context, theaterID int) (*domain.Theater, error) {
	args := m.Called(ctx, theaterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockCatalogRepo) GetTheaterByShow(ctx context.Context, showID int) (*domain.Theater, error) {
	args := m.Called(ctx, showID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Theater), args.Error(1)
}

func (m *MockCatalogRepo) GetCinemaByName(ctx context.Context, name string) (*domain.Cinema, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cinema), args.Error(1)
}

func (m *MockCatalogRepo) CreateShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int) error {
	args := m.Called(ctx, movie, show, theaterID)
	return args.Error(0)
}
