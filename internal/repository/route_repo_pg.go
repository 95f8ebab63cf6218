package repository

import (
	"context"
	"errors"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository interface {
	List(ctx context.Context) ([]domain.Route, error)
	GetByID(ctx context.Context, id int64) (*domain.Route, error)
	ListAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error)
}

type PGRouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) RouteRepository {
	return &PGRouteRepository{db: db}
}

func (r *PGRouteRepository) List(ctx context.Context) ([]domain.Route, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, origin, destination, total_seats, created_at FROM routes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routes := make([]domain.Route, 0)
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.TotalSeats, &rt.CreatedAt); err != nil {
			return nil, err
		}
		routes = append(routes, rt)
	}
	return routes, rows.Err()
}

func (r *PGRouteRepository) GetByID(ctx context.Context, id int64) (*domain.Route, error) {
	row := r.db.QueryRow(ctx, `SELECT id, name, origin, destination, total_seats, created_at FROM routes WHERE id=$1`, id)
	var rt domain.Route
	if err := row.Scan(&rt.ID, &rt.Name, &rt.Origin, &rt.Destination, &rt.TotalSeats, &rt.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRouteNotFound
		}
		return nil, err
	}
	return &rt, nil
}

// ListAvailability derives free-seat counts from live bookings so the
// number can never drift from the booking rows.
func (r *PGRouteRepository) ListAvailability(ctx context.Context, travelDate time.Time) ([]domain.RouteAvailability, error) {
	rows, err := r.db.Query(ctx, `
		SELECT r.id, r.name, r.origin, r.destination, r.total_seats, r.created_at,
		       r.total_seats - COUNT(b.id) AS available
		FROM routes r
		LEFT JOIN bookings b ON b.route_id = r.id AND b.travel_date = $1
		GROUP BY r.id
		ORDER BY r.id`, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	availability := make([]domain.RouteAvailability, 0)
	for rows.Next() {
		var a domain.RouteAvailability
		if err := rows.Scan(&a.Route.ID, &a.Route.Name, &a.Route.Origin, &a.Route.Destination,
			&a.Route.TotalSeats, &a.Route.CreatedAt, &a.AvailableSeats); err != nil {
			return nil, err
		}
		a.TravelDate = travelDate
		availability = append(availability, a)
	}
	return availability, rows.Err()
}

var _ RouteRepository = (*PGRouteRepository)(nil)
