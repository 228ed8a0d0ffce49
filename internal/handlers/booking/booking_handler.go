// internal/handlers/booking/booking_handler.go
package booking

import (
	"context"
	"net/http"
	"strconv"

	"tourdesk-service/internal/domain/booking"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Service interface {
	CreateBooking(ctx context.Context, req *booking.CreateBookingRequest) (*booking.Booking, error)
	GetBooking(ctx context.Context, id int64) (*booking.Booking, error)
	UpdateBooking(ctx context.Context, id int64, req *booking.UpdateBookingRequest) (*booking.Booking, error)
	DeleteBooking(ctx context.Context, id int64) error
	ListBookings(ctx context.Context, filters *booking.BookingListFilters) (*booking.BookingListResponse, error)
}

type BookingHandler struct {
	bookingService Service
}

func NewBookingHandler(bookingService Service) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// CreateBooking books a customer onto a tour
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req booking.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create booking", err)
		return
	}

	response.Success(c, http.StatusCreated, "booking created successfully", result)
}

// GetBooking retrieves a booking by ID
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	result, err := h.bookingService.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.FromError(c, "booking not found", err)
		return
	}

	response.Success(c, http.StatusOK, "booking retrieved", result)
}

// UpdateBooking updates a booking; payment status is taken as given
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	var req booking.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.bookingService.UpdateBooking(c.Request.Context(), bookingID, &req)
	if err != nil {
		response.FromError(c, "failed to update booking", err)
		return
	}

	response.Success(c, http.StatusOK, "booking updated successfully", result)
}

// DeleteBooking deletes a booking
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	bookingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid booking ID", err)
		return
	}

	if err := h.bookingService.DeleteBooking(c.Request.Context(), bookingID); err != nil {
		response.FromError(c, "failed to delete booking", err)
		return
	}

	response.Success(c, http.StatusOK, "booking deleted successfully", nil)
}

// ListBookings retrieves bookings with filters
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var filters booking.BookingListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.bookingService.ListBookings(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list bookings", err)
		return
	}

	response.Success(c, http.StatusOK, "bookings retrieved", result)
}
