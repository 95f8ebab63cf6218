package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS customers (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		name TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		age INT NOT NULL DEFAULT 0,
		phone TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS routes (
		id BIGINT PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		origin TEXT NOT NULL,
		destination TEXT NOT NULL,
		total_seats INT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
		reference UUID NOT NULL,
		customer_id BIGINT NOT NULL REFERENCES customers(id),
		route_id BIGINT NOT NULL REFERENCES routes(id),
		seat_number INT NOT NULL,
		passenger_name TEXT NOT NULL,
		gender TEXT NOT NULL DEFAULT '',
		age INT NOT NULL DEFAULT 0,
		phone TEXT NOT NULL DEFAULT '',
		travel_date DATE NOT NULL,
		booking_date DATE NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (route_id, travel_date, seat_number)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_reference ON bookings (reference)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_customer_date ON bookings (customer_id, travel_date)`,
}

type seedRoute struct {
	id          int64
	origin      string
	destination string
	totalSeats  int
}

var seedRoutes = []seedRoute{
	{1, "Trichy", "Chennai", 10},
	{2, "Trichy", "Coimbatore", 10},
	{3, "Trichy", "Madurai", 10},
}

// EnsureSchema creates the tables and seeds the fixed route set. Routes
// are static after startup, so re-running is a no-op.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}

	for _, r := range seedRoutes {
		name := fmt.Sprintf("%s → %s", r.origin, r.destination)
		if _, err := db.Exec(ctx, `INSERT INTO routes (id, name, origin, destination, total_seats)
			VALUES ($1, $2, $3, $4, $5) ON CONFLICT (id) DO NOTHING`,
			r.id, name, r.origin, r.destination, r.totalSeats); err != nil {
			return fmt.Errorf("seed route %d: %w", r.id, err)
		}
	}
	return nil
}
