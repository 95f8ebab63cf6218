package kafka

import "time"

const (
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCancelled = "booking_cancelled"
)

// PassengerSeat is one seat line inside a notification event.
type PassengerSeat struct {
	SeatNumber int    `json:"seat_number"`
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
}

// BookingEvent is the payload published to the notifications topic for
// every committed booking or cancellation. The worker turns it into an
// email; delivery failure never affects the committed rows.
type BookingEvent struct {
	Type       string          `json:"type"`
	Reference  string          `json:"reference"`
	RouteID    int64           `json:"route_id"`
	RouteName  string          `json:"route_name"`
	TravelDate string          `json:"travel_date"`
	Email      string          `json:"email"`
	Seats      []PassengerSeat `json:"seats"`
	OccurredAt time.Time       `json:"occurred_at"`
}
