package handlers

import (
	"net/http"

	"okclinic/models"
	"okclinic/services/booking"
	"okclinic/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// CreateBooking handles POST /api/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)
	current, ok := requireUser(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.BookingService.CreateBooking(c.Request.Context(), current.ID, req)
	if err != nil {
		logger.Info("Booking rejected", zap.String("userID", current.ID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// ListMyBookings handles GET /api/bookings.
func (h *BookingHandler) ListMyBookings(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	bookings, err := h.BookingService.ListCustomerBookings(c.Request.Context(), current.ID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	current, ok := requireUser(c)
	if !ok {
		return
	}
	cancelled, err := h.BookingService.CancelBooking(c.Request.Context(), current.ID, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cancelled)
}

// ListAllBookings handles GET /api/bookings/admin and GET /api/admin/bookings.
func (h *BookingHandler) ListAllBookings(c *gin.Context) {
	bookings, err := h.BookingService.ListAllBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus handles PUT /api/admin/bookings/:id.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var req models.BookingStatusUpdate
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.BookingService.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteBooking handles DELETE /api/admin/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.BookingService.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
