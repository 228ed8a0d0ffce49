// internal/handlers/tour/tour_handler.go
package tour

import (
	"context"
	"net/http"
	"strconv"

	"tourdesk-service/internal/domain/tour"
	"tourdesk-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Service interface {
	CreateTour(ctx context.Context, req *tour.CreateTourRequest) (*tour.Tour, error)
	GetTour(ctx context.Context, id int64) (*tour.Tour, error)
	UpdateTour(ctx context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error)
	DeleteTour(ctx context.Context, id int64) error
	ListTours(ctx context.Context, filters *tour.TourListFilters) (*tour.TourListResponse, error)
}

type TourHandler struct {
	tourService Service
}

func NewTourHandler(tourService Service) *TourHandler {
	return &TourHandler{tourService: tourService}
}

// CreateTour creates a new tour
func (h *TourHandler) CreateTour(c *gin.Context) {
	var req tour.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.tourService.CreateTour(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, "failed to create tour", err)
		return
	}

	response.Success(c, http.StatusCreated, "tour created successfully", result)
}

// GetTour retrieves a tour by ID
func (h *TourHandler) GetTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tour ID", err)
		return
	}

	result, err := h.tourService.GetTour(c.Request.Context(), tourID)
	if err != nil {
		response.FromError(c, "tour not found", err)
		return
	}

	response.Success(c, http.StatusOK, "tour retrieved", result)
}

// UpdateTour updates a tour
func (h *TourHandler) UpdateTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tour ID", err)
		return
	}

	var req tour.UpdateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request", err)
		return
	}

	result, err := h.tourService.UpdateTour(c.Request.Context(), tourID, &req)
	if err != nil {
		response.FromError(c, "failed to update tour", err)
		return
	}

	response.Success(c, http.StatusOK, "tour updated successfully", result)
}

// DeleteTour deletes a tour and its bookings
func (h *TourHandler) DeleteTour(c *gin.Context) {
	tourID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid tour ID", err)
		return
	}

	if err := h.tourService.DeleteTour(c.Request.Context(), tourID); err != nil {
		response.FromError(c, "failed to delete tour", err)
		return
	}

	response.Success(c, http.StatusOK, "tour deleted successfully", nil)
}

// ListTours retrieves tours with filters
func (h *TourHandler) ListTours(c *gin.Context) {
	var filters tour.TourListFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	result, err := h.tourService.ListTours(c.Request.Context(), &filters)
	if err != nil {
		response.FromError(c, "failed to list tours", err)
		return
	}

	response.Success(c, http.StatusOK, "tours retrieved", result)
}
