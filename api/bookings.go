package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/DERICHRIS/immantravels/internal/domain"
	"github.com/DERICHRIS/immantravels/internal/service/booking"
	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

type BookingHandler struct {
	service booking.BookingUseCase
}

type passengerRequest struct {
	Name       string `json:"name"`
	Gender     string `json:"gender"`
	Age        int    `json:"age"`
	Phone      string `json:"phone"`
	SeatNumber int    `json:"seat_number"`
}

type createBookingRequest struct {
	RouteID    int64              `json:"route_id"`
	TravelDate string             `json:"travel_date"`
	Email      string             `json:"email"`
	Passengers []passengerRequest `json:"passengers"`
}

type cancelBookingRequest struct {
	Email      string `json:"email"`
	TravelDate string `json:"travel_date"`
	Seats      []int  `json:"seats"`
}

type seatResponse struct {
	SeatNumber int    `json:"seat_number"`
	Name       string `json:"name"`
}

type bookingResponse struct {
	Reference  string         `json:"reference"`
	RouteName  string         `json:"route_name"`
	TravelDate string         `json:"travel_date"`
	Email      string         `json:"email"`
	Seats      []seatResponse `json:"seats"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("/", h.create)
	router.GET("/:reference", h.get)
	router.DELETE("/", h.cancel)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelDate, err := time.Parse(dateLayout, req.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be YYYY-MM-DD"})
		return
	}

	input := booking.CreateBookingInput{
		RouteID:    req.RouteID,
		TravelDate: travelDate,
		Email:      req.Email,
	}
	for _, p := range req.Passengers {
		input.Passengers = append(input.Passengers, booking.PassengerInput(p))
	}

	confirmation, err := h.service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := bookingResponse{
		Reference:  confirmation.Reference,
		RouteName:  confirmation.RouteName,
		TravelDate: confirmation.TravelDate.Format(dateLayout),
		Email:      req.Email,
	}
	for _, b := range confirmation.Bookings {
		resp.Seats = append(resp.Seats, seatResponse{SeatNumber: b.SeatNumber, Name: b.PassengerName})
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *BookingHandler) get(c *gin.Context) {
	reference := c.Param("reference")
	confirmation, err := h.service.GetBooking(c.Request.Context(), reference)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	resp := bookingResponse{
		Reference:  confirmation.Reference,
		RouteName:  confirmation.RouteName,
		TravelDate: confirmation.TravelDate.Format(dateLayout),
		Email:      confirmation.Bookings[0].Email,
	}
	for _, b := range confirmation.Bookings {
		resp.Seats = append(resp.Seats, seatResponse{SeatNumber: b.SeatNumber, Name: b.PassengerName})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) cancel(c *gin.Context) {
	var req cancelBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	travelDate, err := time.Parse(dateLayout, req.TravelDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "travel_date must be YYYY-MM-DD"})
		return
	}

	cancellation, err := h.service.CancelBooking(c.Request.Context(), booking.CancelBookingInput{
		Email:      req.Email,
		TravelDate: travelDate,
		Seats:      req.Seats,
	})
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"route_name":  cancellation.RouteName,
		"travel_date": cancellation.TravelDate.Format(dateLayout),
		"seats":       cancellation.Seats,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrBookingNotFound), errors.Is(err, domain.ErrRouteNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrSeatTaken), errors.Is(err, domain.ErrSeatLocked),
		errors.Is(err, domain.ErrNoSeats), errors.Is(err, domain.ErrWindowClosed):
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}
