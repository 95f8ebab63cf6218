package repository

import (
	"context"
	"errors"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type BookingRepository interface {
	CreateBatch(ctx context.Context, bookings []*domain.Booking) error
	BookedSeats(ctx context.Context, routeID int64, travelDate time.Time) ([]int, error)
	GetByReference(ctx context.Context, reference string) ([]domain.Booking, error)
	ListByEmailAndDate(ctx context.Context, email string, travelDate time.Time) ([]domain.Booking, error)
	DeleteByEmailAndDate(ctx context.Context, email string, travelDate time.Time, seats []int) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.BookingRecord, error)
}

type PGBookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) BookingRepository {
	return &PGBookingRepository{db: db}
}

// CreateBatch inserts every row in one transaction. The unique
// constraint on (route_id, travel_date, seat_number) turns a lost race
// for a seat into ErrSeatTaken and rolls back the whole batch.
func (r *PGBookingRepository) CreateBatch(ctx context.Context, bookings []*domain.Booking) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, b := range bookings {
		err := tx.QueryRow(ctx, `INSERT INTO bookings
			(reference, customer_id, route_id, seat_number, passenger_name, gender, age, phone, travel_date, booking_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING id, created_at`,
			b.Reference, b.CustomerID, b.RouteID, b.SeatNumber, b.PassengerName,
			b.Gender, b.Age, b.Phone, b.TravelDate, b.BookingDate).
			Scan(&b.ID, &b.CreatedAt)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
				return domain.ErrSeatTaken
			}
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PGBookingRepository) BookedSeats(ctx context.Context, routeID int64, travelDate time.Time) ([]int, error) {
	rows, err := r.db.Query(ctx, `SELECT seat_number FROM bookings WHERE route_id=$1 AND travel_date=$2 ORDER BY seat_number`, routeID, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]int, 0)
	for rows.Next() {
		var seat int
		if err := rows.Scan(&seat); err != nil {
			return nil, err
		}
		seats = append(seats, seat)
	}
	return seats, rows.Err()
}

const bookingColumns = `id, reference, customer_id, route_id, seat_number, passenger_name, gender, age, phone,
	(SELECT email FROM customers WHERE customers.id = bookings.customer_id), travel_date, booking_date, created_at`

func (r *PGBookingRepository) GetByReference(ctx context.Context, reference string) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE reference=$1 ORDER BY seat_number`, reference)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListByEmailAndDate(ctx context.Context, email string, travelDate time.Time) ([]domain.Booking, error) {
	rows, err := r.db.Query(ctx, `SELECT `+bookingColumns+` FROM bookings
		WHERE customer_id = (SELECT id FROM customers WHERE email=$1) AND travel_date=$2
		ORDER BY seat_number`, email, travelDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// DeleteByEmailAndDate hard-deletes the matching rows and returns them.
// An empty seats slice matches every seat for the (email, date) pair.
func (r *PGBookingRepository) DeleteByEmailAndDate(ctx context.Context, email string, travelDate time.Time, seats []int) ([]domain.Booking, error) {
	query := `DELETE FROM bookings
		WHERE customer_id = (SELECT id FROM customers WHERE email=$1) AND travel_date=$2`
	args := []interface{}{email, travelDate}
	if len(seats) > 0 {
		query += ` AND seat_number = ANY($3)`
		args = append(args, seats)
	}
	query += ` RETURNING ` + bookingColumns

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

func (r *PGBookingRepository) ListAll(ctx context.Context) ([]domain.BookingRecord, error) {
	rows, err := r.db.Query(ctx, `
		SELECT b.id, b.reference, b.customer_id, b.route_id, b.seat_number, b.passenger_name,
		       b.gender, b.age, b.phone, c.email, b.travel_date, b.booking_date, b.created_at, r.name
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		JOIN routes r ON r.id = b.route_id
		ORDER BY b.travel_date, b.route_id, b.seat_number`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]domain.BookingRecord, 0)
	for rows.Next() {
		var rec domain.BookingRecord
		if err := rows.Scan(&rec.ID, &rec.Reference, &rec.CustomerID, &rec.RouteID, &rec.SeatNumber,
			&rec.PassengerName, &rec.Gender, &rec.Age, &rec.Phone, &rec.Email,
			&rec.TravelDate, &rec.BookingDate, &rec.CreatedAt, &rec.RouteName); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func scanBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Reference, &b.CustomerID, &b.RouteID, &b.SeatNumber,
			&b.PassengerName, &b.Gender, &b.Age, &b.Phone, &b.Email,
			&b.TravelDate, &b.BookingDate, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

var _ BookingRepository = (*PGBookingRepository)(nil)
