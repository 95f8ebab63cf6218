package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeEvent(t *testing.T) {
	raw := []byte(`{
		"type": "booking_confirmed",
		"reference": "ref-1",
		"route_name": "Trichy → Chennai",
		"travel_date": "2026-09-20",
		"email": "rahul@example.com",
		"seats": [{"seat_number": 1, "name": "Rahul", "gender": "Male", "age": 28}]
	}`)

	event, err := decodeEvent(raw)
	assert.NoError(t, err)
	assert.Equal(t, EventBookingConfirmed, event.Type)
	assert.Equal(t, "ref-1", event.Reference)
	assert.Equal(t, "Trichy → Chennai", event.RouteName)
	assert.Len(t, event.Seats, 1)
	assert.Equal(t, 1, event.Seats[0].SeatNumber)
}

func TestDecodeEvent_Malformed(t *testing.T) {
	_, err := decodeEvent([]byte(`{"type":`))
	assert.Error(t, err)
}
