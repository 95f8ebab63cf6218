package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/DERICHRIS/immantravels/internal/kafka"
	"github.com/DERICHRIS/immantravels/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CreateBooking(ctx context.Context, input CreateBookingInput) (*Confirmation, error)
	GetBooking(ctx context.Context, reference string) (*Confirmation, error)
	CancelBooking(ctx context.Context, input CancelBookingInput) (*Cancellation, error)
}

type Cache interface {
	AcquireSeatHold(ctx context.Context, routeID int64, travelDate time.Time, seat int, ttl time.Duration) (bool, error)
	ReleaseSeatHold(ctx context.Context, routeID int64, travelDate time.Time, seat int) error
	InvalidateAvailability(ctx context.Context, travelDate time.Time) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	customers          repository.CustomerRepository
	routes             repository.RouteRepository
	cache              Cache
	producer           Producer
	notificationsTopic string
	holdTTL            time.Duration
	cancelCutoff       time.Duration
}

type PassengerInput struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Phone      string `json:"phone"`
	SeatNumber int    `json:"seat_number"` // 0 means auto-assign the lowest free seat
}

type CreateBookingInput struct {
	RouteID    int64            `json:"route_id"`
	TravelDate time.Time        `json:"travel_date"`
	Email      string           `json:"email"`
	Passengers []PassengerInput `json:"passengers"`
}

type CancelBookingInput struct {
	Email      string    `json:"email"`
	TravelDate time.Time `json:"travel_date"`
	Seats      []int     `json:"seats"` // empty cancels every seat for the (email, date) pair
}

type Confirmation struct {
	Reference  string
	RouteName  string
	TravelDate time.Time
	Seats      []int
	Bookings   []domain.Booking
}

type Cancellation struct {
	RouteName  string
	TravelDate time.Time
	Seats      []int
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	customers repository.CustomerRepository,
	routes repository.RouteRepository,
	cache Cache,
	producer Producer,
	holdTTL, cancelCutoff time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		customers:    customers,
		routes:       routes,
		cache:        cache,
		producer:     producer,
		holdTTL:      holdTTL,
		cancelCutoff: cancelCutoff,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *BookingService) CreateBooking(ctx context.Context, input CreateBookingInput) (*Confirmation, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	route, err := s.routes.GetByID(ctx, input.RouteID)
	if err != nil {
		return nil, err
	}

	travelDate := dateOnly(input.TravelDate)
	if travelDate.Before(dateOnly(time.Now())) {
		return nil, errors.New("travel date is in the past")
	}

	booked, err := s.bookings.BookedSeats(ctx, route.ID, travelDate)
	if err != nil {
		return nil, err
	}

	seats, err := resolveSeats(route.TotalSeats, booked, input.Passengers)
	if err != nil {
		return nil, err
	}

	held, err := s.holdSeats(ctx, route.ID, travelDate, seats)
	if err != nil {
		s.releaseSeats(ctx, route.ID, travelDate, held)
		return nil, err
	}

	customer, err := s.resolveCustomer(ctx, input)
	if err != nil {
		s.releaseSeats(ctx, route.ID, travelDate, held)
		return nil, err
	}

	reference := uuid.NewString()
	bookingDate := dateOnly(time.Now())
	rows := make([]*domain.Booking, 0, len(input.Passengers))
	for i, p := range input.Passengers {
		rows = append(rows, &domain.Booking{
			Reference:     reference,
			CustomerID:    customer.ID,
			RouteID:       route.ID,
			SeatNumber:    seats[i],
			PassengerName: p.Name,
			Gender:        p.Gender,
			Age:           p.Age,
			Phone:         p.Phone,
			Email:         input.Email,
			TravelDate:    travelDate,
			BookingDate:   bookingDate,
		})
	}

	if err := s.bookings.CreateBatch(ctx, rows); err != nil {
		s.releaseSeats(ctx, route.ID, travelDate, held)
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateAvailability(ctx, travelDate)
	}

	bookings := make([]domain.Booking, 0, len(rows))
	for _, b := range rows {
		bookings = append(bookings, *b)
	}
	confirmation := &Confirmation{
		Reference:  reference,
		RouteName:  route.Name,
		TravelDate: travelDate,
		Seats:      seats,
		Bookings:   bookings,
	}

	if err := s.publish(ctx, kafka.EventBookingConfirmed, route.Name, reference, input.Email, travelDate, input.Passengers, seats); err != nil {
		log.Printf("WARNING: failed to publish confirmation for booking %s: %v", reference, err)
	}
	return confirmation, nil
}

func (s *BookingService) GetBooking(ctx context.Context, reference string) (*Confirmation, error) {
	bookings, err := s.bookings.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, domain.ErrBookingNotFound
	}

	route, err := s.routes.GetByID(ctx, bookings[0].RouteID)
	if err != nil {
		return nil, err
	}

	seats := make([]int, 0, len(bookings))
	for _, b := range bookings {
		seats = append(seats, b.SeatNumber)
	}
	return &Confirmation{
		Reference:  reference,
		RouteName:  route.Name,
		TravelDate: bookings[0].TravelDate,
		Seats:      seats,
		Bookings:   bookings,
	}, nil
}

func (s *BookingService) CancelBooking(ctx context.Context, input CancelBookingInput) (*Cancellation, error) {
	if input.Email == "" {
		return nil, errors.New("email is required")
	}

	travelDate := dateOnly(input.TravelDate)
	existing, err := s.bookings.ListByEmailAndDate(ctx, input.Email, travelDate)
	if err != nil {
		return nil, err
	}
	if len(existing) == 0 {
		return nil, domain.ErrBookingNotFound
	}

	// The travel date has no time of day, so the cutoff is measured
	// against midnight UTC of that date.
	if time.Until(travelDate) < s.cancelCutoff {
		return nil, domain.ErrWindowClosed
	}

	deleted, err := s.bookings.DeleteByEmailAndDate(ctx, input.Email, travelDate, input.Seats)
	if err != nil {
		return nil, err
	}
	if len(deleted) == 0 {
		return nil, domain.ErrBookingNotFound
	}

	route, err := s.routes.GetByID(ctx, deleted[0].RouteID)
	if err != nil {
		return nil, err
	}

	seats := make([]int, 0, len(deleted))
	passengers := make([]PassengerInput, 0, len(deleted))
	for _, b := range deleted {
		seats = append(seats, b.SeatNumber)
		passengers = append(passengers, PassengerInput{Name: b.PassengerName, Gender: b.Gender, Age: b.Age})
		if s.cache != nil {
			_ = s.cache.ReleaseSeatHold(ctx, b.RouteID, travelDate, b.SeatNumber)
		}
	}
	if s.cache != nil {
		_ = s.cache.InvalidateAvailability(ctx, travelDate)
	}

	if err := s.publish(ctx, kafka.EventBookingCancelled, route.Name, deleted[0].Reference, input.Email, travelDate, passengers, seats); err != nil {
		log.Printf("WARNING: failed to publish cancellation for %s on %s: %v", input.Email, travelDate.Format("2006-01-02"), err)
	}

	return &Cancellation{RouteName: route.Name, TravelDate: travelDate, Seats: seats}, nil
}

func (s *BookingService) resolveCustomer(ctx context.Context, input CreateBookingInput) (*domain.Customer, error) {
	customer, err := s.customers.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if customer != nil {
		return customer, nil
	}

	lead := input.Passengers[0]
	customer = &domain.Customer{
		Name:   lead.Name,
		Gender: lead.Gender,
		Age:    lead.Age,
		Phone:  lead.Phone,
		Email:  input.Email,
	}
	if err := s.customers.Create(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *BookingService) holdSeats(ctx context.Context, routeID int64, travelDate time.Time, seats []int) ([]int, error) {
	if s.cache == nil {
		return nil, nil
	}
	held := make([]int, 0, len(seats))
	for _, seat := range seats {
		ok, err := s.cache.AcquireSeatHold(ctx, routeID, travelDate, seat, s.holdTTL)
		if err != nil {
			return held, err
		}
		if !ok {
			return held, domain.ErrSeatLocked
		}
		held = append(held, seat)
	}
	return held, nil
}

func (s *BookingService) releaseSeats(ctx context.Context, routeID int64, travelDate time.Time, seats []int) {
	if s.cache == nil {
		return
	}
	for _, seat := range seats {
		_ = s.cache.ReleaseSeatHold(ctx, routeID, travelDate, seat)
	}
}

func (s *BookingService) publish(ctx context.Context, eventType, routeName, reference, email string, travelDate time.Time, passengers []PassengerInput, seats []int) error {
	if s.producer == nil || s.notificationsTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:       eventType,
		Reference:  reference,
		RouteName:  routeName,
		TravelDate: travelDate.Format("2006-01-02"),
		Email:      email,
		OccurredAt: time.Now(),
	}
	for i, p := range passengers {
		event.Seats = append(event.Seats, kafka.PassengerSeat{
			SeatNumber: seats[i],
			Name:       p.Name,
			Gender:     p.Gender,
			Age:        p.Age,
		})
	}
	return s.producer.Publish(ctx, s.notificationsTopic, reference, event)
}

func validateCreate(input CreateBookingInput) error {
	if input.Email == "" {
		return errors.New("email is required")
	}
	if len(input.Passengers) == 0 {
		return errors.New("at least one passenger is required")
	}
	for _, p := range input.Passengers {
		if p.Name == "" {
			return errors.New("passenger name is required")
		}
		if p.Phone == "" {
			return errors.New("passenger phone is required")
		}
		if p.SeatNumber < 0 {
			return errors.New("seat number must be positive")
		}
	}
	return nil
}

// resolveSeats maps every passenger to a concrete seat: requested seats
// are checked against occupancy and each other, the rest get the lowest
// free seats in order.
func resolveSeats(totalSeats int, booked []int, passengers []PassengerInput) ([]int, error) {
	taken := make(map[int]bool, len(booked))
	for _, seat := range booked {
		taken[seat] = true
	}

	if len(passengers) > totalSeats-len(booked) {
		return nil, domain.ErrNoSeats
	}

	seats := make([]int, len(passengers))
	for i, p := range passengers {
		if p.SeatNumber == 0 {
			continue
		}
		if p.SeatNumber > totalSeats {
			return nil, errors.New("seat number out of range")
		}
		if taken[p.SeatNumber] {
			return nil, domain.ErrSeatTaken
		}
		taken[p.SeatNumber] = true
		seats[i] = p.SeatNumber
	}

	next := 1
	for i := range seats {
		if seats[i] != 0 {
			continue
		}
		for next <= totalSeats && taken[next] {
			next++
		}
		if next > totalSeats {
			return nil, domain.ErrNoSeats
		}
		taken[next] = true
		seats[i] = next
	}

	return seats, nil
}

// dateOnly normalizes to midnight UTC, the zone travel dates are parsed
// in, so date comparisons do not depend on the server's zone.
func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

var _ BookingUseCase = (*BookingService)(nil)
