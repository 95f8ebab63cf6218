package domain

import "time"

// Route is a fixed bus route seeded at startup. There is no stored
// available-seat counter: availability is always derived from live
// bookings for a travel date.
type Route struct {
	ID          int64
	Name        string
	Origin      string
	Destination string
	TotalSeats  int
	CreatedAt   time.Time
}

// RouteAvailability pairs a route with its free-seat count for one
// travel date.
type RouteAvailability struct {
	Route          Route
	TravelDate     time.Time
	AvailableSeats int
}

// SeatMap is the per-date occupancy of a route. Free seats are
// {1..TotalSeats} minus BookedSeats.
type SeatMap struct {
	RouteID     int64
	TravelDate  time.Time
	TotalSeats  int
	BookedSeats []int
}

// FreeSeats returns the ascending list of unoccupied seat numbers.
func (m SeatMap) FreeSeats() []int {
	booked := make(map[int]bool, len(m.BookedSeats))
	for _, s := range m.BookedSeats {
		booked[s] = true
	}
	free := make([]int, 0, m.TotalSeats-len(m.BookedSeats))
	for seat := 1; seat <= m.TotalSeats; seat++ {
		if !booked[seat] {
			free = append(free, seat)
		}
	}
	return free
}
