package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DERICHRIS/immantravels/internal/service/routes"
	"github.com/gin-gonic/gin"
)

type RouteHandler struct {
	service routes.RouteUseCase
}

func NewRouteHandler(service routes.RouteUseCase) *RouteHandler {
	return &RouteHandler{service: service}
}

func (h *RouteHandler) Register(router *gin.RouterGroup) {
	router.GET("/", h.list)
	router.GET("/:id/seats", h.seatMap)
}

type routeAvailabilityResponse struct {
	RouteID        int64  `json:"route_id"`
	Name           string `json:"name"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	TotalSeats     int    `json:"total_seats"`
	AvailableSeats int    `json:"available_seats"`
	TravelDate     string `json:"travel_date"`
}

type seatMapResponse struct {
	RouteID     int64  `json:"route_id"`
	TravelDate  string `json:"travel_date"`
	TotalSeats  int    `json:"total_seats"`
	BookedSeats []int  `json:"booked_seats"`
	FreeSeats   []int  `json:"free_seats"`
}

func (h *RouteHandler) list(c *gin.Context) {
	travelDate, err := travelDateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	availability, err := h.service.List(c.Request.Context(), travelDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]routeAvailabilityResponse, 0, len(availability))
	for _, a := range availability {
		resp = append(resp, routeAvailabilityResponse{
			RouteID:        a.Route.ID,
			Name:           a.Route.Name,
			Origin:         a.Route.Origin,
			Destination:    a.Route.Destination,
			TotalSeats:     a.Route.TotalSeats,
			AvailableSeats: a.AvailableSeats,
			TravelDate:     travelDate.Format(dateLayout),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RouteHandler) seatMap(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}

	travelDate, err := travelDateParam(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	seatMap, err := h.service.SeatMap(c.Request.Context(), id, travelDate)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, seatMapResponse{
		RouteID:     seatMap.RouteID,
		TravelDate:  travelDate.Format(dateLayout),
		TotalSeats:  seatMap.TotalSeats,
		BookedSeats: seatMap.BookedSeats,
		FreeSeats:   seatMap.FreeSeats(),
	})
}

func travelDateParam(c *gin.Context) (time.Time, error) {
	raw := c.Query("date")
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
	}
	return time.Parse(dateLayout, raw)
}
