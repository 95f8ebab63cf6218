package routes

import (
	"context"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/DERICHRIS/immantravels/internal/repository"
)

type RouteUseCase interface {
	List(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error)
	SeatMap(ctx context.Context, routeID int64, travelDate time.Time) (*domain.SeatMap, error)
}

type Cache interface {
	GetAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error)
	SetAvailability(ctx context.Context, travelDate time.Time, availability []domain.RouteAvailability) error
}

type RouteService struct {
	routes   repository.RouteRepository
	bookings repository.BookingRepository
	cache    Cache
}

func NewRouteService(routes repository.RouteRepository, bookings repository.BookingRepository, cache Cache) *RouteService {
	return &RouteService{routes: routes, bookings: bookings, cache: cache}
}

// List returns every route with its free-seat count for the travel
// date. Counts are derived from live bookings; the cache only shortens
// the read path and is invalidated on every write.
func (s *RouteService) List(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetAvailability(ctx, travelDate); err == nil && cached != nil {
			return cached, nil
		}
	}

	availability, err := s.routes.ListAvailability(ctx, travelDate)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetAvailability(ctx, travelDate, availability)
	}
	return availability, nil
}

// SeatMap reports the booked seats for one route and date. A date with
// no bookings yields an empty booked set, meaning every seat is free.
func (s *RouteService) SeatMap(ctx context.Context, routeID int64, travelDate time.Time) (*domain.SeatMap, error) {
	route, err := s.routes.GetByID(ctx, routeID)
	if err != nil {
		return nil, err
	}

	booked, err := s.bookings.BookedSeats(ctx, routeID, travelDate)
	if err != nil {
		return nil, err
	}

	return &domain.SeatMap{
		RouteID:     route.ID,
		TravelDate:  travelDate,
		TotalSeats:  route.TotalSeats,
		BookedSeats: booked,
	}, nil
}

var _ RouteUseCase = (*RouteService)(nil)
