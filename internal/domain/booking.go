package domain

import "time"

// Booking is one seat on one route for one travel date. A multi-seat
// reservation produces one row per seat sharing a reference. The store
// enforces uniqueness of (route, travel date, seat).
type Booking struct {
	ID            int64
	Reference     string
	CustomerID    int64
	RouteID       int64
	SeatNumber    int
	PassengerName string
	Gender        string
	Age           int
	Phone         string
	Email         string
	TravelDate    time.Time
	BookingDate   time.Time
	CreatedAt     time.Time
}

// BookingRecord is a booking joined with its route name, the flat shape
// used by admin listings and exports.
type BookingRecord struct {
	Booking
	RouteName string
}
