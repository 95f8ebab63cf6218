package domain

import "time"

// Customer is identified by email (unique); phone is unique as well.
// A customer row is created on first booking and never updated after.
type Customer struct {
	ID        int64
	Name      string
	Gender    string
	Age       int
	Phone     string
	Email     string
	CreatedAt time.Time
}
