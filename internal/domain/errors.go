package domain

import "errors"

var (
	ErrRouteNotFound   = errors.New("route not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrNoSeats         = errors.New("no seats available")
	ErrSeatTaken       = errors.New("seat is already booked")
	ErrSeatLocked      = errors.New("seat is being booked by someone else")
	ErrWindowClosed    = errors.New("cancellation window closed")
)
