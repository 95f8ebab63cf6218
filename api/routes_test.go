package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRouteUseCase is a mock implementation of routes.RouteUseCase
type MockRouteUseCase struct {
	mock.Mock
}

func (m *MockRouteUseCase) List(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	args := m.Called(ctx, travelDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RouteAvailability), args.Error(1)
}

func (m *MockRouteUseCase) SeatMap(ctx context.Context, routeID int64, travelDate time.Time) (*domain.SeatMap, error) {
	args := m.Called(ctx, routeID, travelDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SeatMap), args.Error(1)
}

func newRouteRouter(service *MockRouteUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewRouteHandler(service).Register(router.Group("/routes"))
	return router
}

func TestRouteHandler_List(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	travelDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	mockService.On("List", mock.Anything, travelDate).Return([]domain.RouteAvailability{
		{
			Route:          domain.Route{ID: 1, Name: "Trichy → Chennai", Origin: "Trichy", Destination: "Chennai", TotalSeats: 10},
			AvailableSeats: 7,
		},
		{
			Route:          domain.Route{ID: 2, Name: "Trichy → Coimbatore", Origin: "Trichy", Destination: "Coimbatore", TotalSeats: 10},
			AvailableSeats: 10,
		},
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/?date=2026-09-20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp []routeAvailabilityResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
	assert.Equal(t, "Trichy → Chennai", resp[0].Name)
	assert.Equal(t, 7, resp[0].AvailableSeats)
	assert.Equal(t, "2026-09-20", resp[0].TravelDate)

	mockService.AssertExpectations(t)
}

func TestRouteHandler_ListDefaultsToToday(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	mockService.On("List", mock.Anything, today).Return([]domain.RouteAvailability{}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}

func TestRouteHandler_ListBadDate(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/?date=tomorrow", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "List")
}

func TestRouteHandler_SeatMap(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	travelDate := time.Date(2026, 9, 20, 0, 0, 0, 0, time.UTC)
	mockService.On("SeatMap", mock.Anything, int64(1), travelDate).Return(&domain.SeatMap{
		RouteID:     1,
		TotalSeats:  5,
		BookedSeats: []int{2, 4},
	}, nil).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/1/seats?date=2026-09-20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp seatMapResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, []int{2, 4}, resp.BookedSeats)
	assert.Equal(t, []int{1, 3, 5}, resp.FreeSeats)
}

func TestRouteHandler_SeatMapUnknownRoute(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	mockService.On("SeatMap", mock.Anything, int64(99), mock.Anything).Return(nil, domain.ErrRouteNotFound).Once()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/99/seats?date=2026-09-20", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouteHandler_SeatMapInvalidID(t *testing.T) {
	mockService := &MockRouteUseCase{}
	router := newRouteRouter(mockService)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/routes/abc/seats", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "SeatMap")
}
