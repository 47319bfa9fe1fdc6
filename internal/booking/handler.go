package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchpoint/internal/api"
	"matchpoint/internal/auth"
	"matchpoint/internal/schedule"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking godoc
// @Summary      Book a court
// @Description  Reserves one court for one hour slot. Exactly one of hour or hour_label must be set.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Slot to book"
// @Success      201      {object}  Booking
// @Failure      400      {object}  gin.H
// @Failure      401      {object}  gin.H
// @Failure      409      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	ownerID, exists := auth.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BindError(c, err)
		return
	}

	hour, err := resolveHour(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot := schedule.Slot{Date: req.Date, Hour: hour, Court: req.Court}

	b, err := h.service.CreateBooking(c.Request.Context(), ownerID, slot)
	if err != nil {
		switch {
		case errors.Is(err, schedule.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Slot already booked"})
		case errors.Is(err, schedule.ErrInvalidSlot):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, schedule.ErrPastDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot book a date in the past"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		}
		return
	}

	c.JSON(http.StatusCreated, b)
}

func resolveHour(req CreateBookingRequest) (int, error) {
	if req.Hour != nil && req.HourLabel != "" {
		return 0, errors.New("set either hour or hour_label, not both")
	}
	if req.Hour != nil {
		return *req.Hour, nil
	}
	if req.HourLabel != "" {
		return schedule.ParseHour(req.HourLabel)
	}
	return 0, errors.New("hour or hour_label is required")
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels a booking of the current player. Canceling twice is a no-op.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        bookingID  path      string  true  "Booking ID"
// @Success      200        {object}  CancelBookingResponse
// @Failure      401        {object}  gin.H
// @Failure      403        {object}  gin.H
// @Failure      404        {object}  gin.H
// @Failure      500        {object}  gin.H
// @Router       /bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	ownerID, exists := auth.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	bookingID := c.Param("bookingID")

	err := h.service.CancelBooking(c.Request.Context(), bookingID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You can only cancel your own bookings"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel booking"})
		}
		return
	}

	c.JSON(http.StatusOK, CancelBookingResponse{Message: "Booking canceled"})
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns confirmed and canceled bookings of the authenticated player in creation order.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Booking
// @Failure      401  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	ownerID, exists := auth.GetPlayerID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Player not authenticated"})
		return
	}

	bookings, err := h.service.MyBookings(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}

	if bookings == nil {
		bookings = []Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// DaySchedule godoc
// @Summary      Day schedule
// @Description  Returns the confirmed bookings of one date from the store.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {array}   Booking
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /schedule [get]
func (h *Handler) DaySchedule(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}

	bookings, err := h.service.DaySchedule(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch schedule"})
		return
	}

	if bookings == nil {
		bookings = []Booking{}
	}
	c.JSON(http.StatusOK, bookings)
}

// Availability godoc
// @Summary      Court availability
// @Description  Returns the free courts for every hour mark of one date.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        date  query     string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  AvailabilityResponse
// @Failure      400   {object}  gin.H
// @Failure      500   {object}  gin.H
// @Router       /availability [get]
func (h *Handler) Availability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query param is required"})
		return
	}

	resp, err := h.service.Availability(c.Request.Context(), date)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to compute availability"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
