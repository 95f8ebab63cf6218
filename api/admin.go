package api

import (
	"errors"
	"net/http"

	"github.com/DERICHRIS/immantravels/internal/service/admin"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminUseCase
}

func NewAdminHandler(service admin.AdminUseCase) *AdminHandler {
	return &AdminHandler{service: service}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)

	authed := router.Group("/", AdminAuth(h.service))
	authed.GET("/bookings", h.listBookings)
	authed.GET("/bookings/export", h.export)
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *AdminHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Password)
	if err != nil {
		switch {
		case errors.Is(err, admin.ErrTooManyAttempts):
			c.JSON(http.StatusTooManyRequests, gin.H{"error": err.Error()})
		case errors.Is(err, admin.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) listBookings(c *gin.Context) {
	records, err := h.service.ListBookings(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type bookingRow struct {
		Reference   string `json:"reference"`
		Name        string `json:"name"`
		Gender      string `json:"gender"`
		Age         int    `json:"age"`
		Phone       string `json:"phone"`
		Email       string `json:"email"`
		RouteName   string `json:"route_name"`
		TravelDate  string `json:"travel_date"`
		BookingDate string `json:"booking_date"`
		SeatNumber  int    `json:"seat_number"`
	}

	rows := make([]bookingRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, bookingRow{
			Reference:   rec.Reference,
			Name:        rec.PassengerName,
			Gender:      rec.Gender,
			Age:         rec.Age,
			Phone:       rec.Phone,
			Email:       rec.Email,
			RouteName:   rec.RouteName,
			TravelDate:  rec.TravelDate.Format(dateLayout),
			BookingDate: rec.BookingDate.Format(dateLayout),
			SeatNumber:  rec.SeatNumber,
		})
	}
	c.JSON(http.StatusOK, rows)
}

func (h *AdminHandler) export(c *gin.Context) {
	data, contentType, filename, err := h.service.Export(c.Request.Context(), c.Query("format"))
	if err != nil {
		if errors.Is(err, admin.ErrUnknownFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, data)
}
