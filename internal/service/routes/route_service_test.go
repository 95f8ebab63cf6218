package routes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRouteRepository struct {
	mock.Mock
}

func (m *MockRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Route), args.Error(1)
}

func (m *MockRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Route), args.Error(1)
}

func (m *MockRouteRepository) ListAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	args := m.Called(ctx, travelDate)
	return args.Get(0).([]domain.RouteAvailability), args.Error(1)
}

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	args := m.Called(ctx, bookings)
	return args.Error(0)
}

func (m *MockBookingRepository) BookedSeats(ctx context.Context, routeID int64, travelDate time.Time) ([]int, error) {
	args := m.Called(ctx, routeID, travelDate)
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockBookingRepository) GetByReference(ctx context.Context, reference string) ([]domain.Booking, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListByEmailAndDate(ctx context.Context, email string, travelDate time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, email, travelDate)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) DeleteByEmailAndDate(ctx context.Context, email string, travelDate time.Time, seats []int) ([]domain.Booking, error) {
	args := m.Called(ctx, email, travelDate, seats)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListAll(ctx context.Context) ([]domain.BookingRecord, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BookingRecord), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	args := m.Called(ctx, travelDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RouteAvailability), args.Error(1)
}

func (m *MockCache) SetAvailability(ctx context.Context, travelDate time.Time, availability []domain.RouteAvailability) error {
	args := m.Called(ctx, travelDate, availability)
	return args.Error(0)
}

func testDate() time.Time {
	return time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
}

func TestRouteService_List_CacheMiss(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	bookingRepo := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewRouteService(routeRepo, bookingRepo, cache)

	ctx := context.Background()
	date := testDate()
	availability := []domain.RouteAvailability{
		{Route: domain.Route{ID: 1, Name: "Trichy → Chennai", TotalSeats: 10}, TravelDate: date, AvailableSeats: 7},
	}

	cache.On("GetAvailability", ctx, date).Return(nil, nil).Once()
	routeRepo.On("ListAvailability", ctx, date).Return(availability, nil).Once()
	cache.On("SetAvailability", ctx, date, availability).Return(nil).Once()

	got, err := service.List(ctx, date)

	assert.NoError(t, err)
	assert.Equal(t, availability, got)
	cache.AssertExpectations(t)
	routeRepo.AssertExpectations(t)
}

func TestRouteService_List_CacheHit(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	bookingRepo := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewRouteService(routeRepo, bookingRepo, cache)

	ctx := context.Background()
	date := testDate()
	cached := []domain.RouteAvailability{
		{Route: domain.Route{ID: 2, Name: "Trichy → Madurai", TotalSeats: 10}, TravelDate: date, AvailableSeats: 10},
	}

	cache.On("GetAvailability", ctx, date).Return(cached, nil).Once()

	got, err := service.List(ctx, date)

	assert.NoError(t, err)
	assert.Equal(t, cached, got)
	routeRepo.AssertNotCalled(t, "ListAvailability")
}

func TestRouteService_List_CacheErrorFallsThrough(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	bookingRepo := &MockBookingRepository{}
	cache := &MockCache{}
	service := NewRouteService(routeRepo, bookingRepo, cache)

	ctx := context.Background()
	date := testDate()
	availability := []domain.RouteAvailability{}

	cache.On("GetAvailability", ctx, date).Return(nil, errors.New("redis down")).Once()
	routeRepo.On("ListAvailability", ctx, date).Return(availability, nil).Once()
	cache.On("SetAvailability", ctx, date, availability).Return(nil).Once()

	got, err := service.List(ctx, date)

	assert.NoError(t, err)
	assert.Equal(t, availability, got)
}

func TestRouteService_SeatMap(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	bookingRepo := &MockBookingRepository{}
	service := NewRouteService(routeRepo, bookingRepo, nil)

	ctx := context.Background()
	date := testDate()
	route := &domain.Route{ID: 1, Name: "Trichy → Chennai", TotalSeats: 5}

	routeRepo.On("GetByID", ctx, int64(1)).Return(route, nil).Once()
	bookingRepo.On("BookedSeats", ctx, int64(1), date).Return([]int{2, 4}, nil).Once()

	seatMap, err := service.SeatMap(ctx, 1, date)

	assert.NoError(t, err)
	assert.Equal(t, 5, seatMap.TotalSeats)
	assert.Equal(t, []int{2, 4}, seatMap.BookedSeats)
	assert.Equal(t, []int{1, 3, 5}, seatMap.FreeSeats())
}

func TestRouteService_SeatMap_EmptyDateMeansAllFree(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	bookingRepo := &MockBookingRepository{}
	service := NewRouteService(routeRepo, bookingRepo, nil)

	ctx := context.Background()
	date := testDate()
	route := &domain.Route{ID: 3, Name: "Trichy → Madurai", TotalSeats: 3}

	routeRepo.On("GetByID", ctx, int64(3)).Return(route, nil).Once()
	bookingRepo.On("BookedSeats", ctx, int64(3), date).Return([]int{}, nil).Once()

	seatMap, err := service.SeatMap(ctx, 3, date)

	assert.NoError(t, err)
	assert.Empty(t, seatMap.BookedSeats)
	assert.Equal(t, []int{1, 2, 3}, seatMap.FreeSeats())
}

func TestRouteService_SeatMap_RouteNotFound(t *testing.T) {
	routeRepo := &MockRouteRepository{}
	service := NewRouteService(routeRepo, &MockBookingRepository{}, nil)

	ctx := context.Background()
	routeRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrRouteNotFound).Once()

	seatMap, err := service.SeatMap(ctx, 99, testDate())

	assert.ErrorIs(t, err, domain.ErrRouteNotFound)
	assert.Nil(t, seatMap)
}
