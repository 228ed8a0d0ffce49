// internal/service/tour/tour.go
package tour

import (
	"context"
	"fmt"
	"strings"

	"tourdesk-service/internal/domain/tour"
	"tourdesk-service/internal/pkg/validation"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, t *tour.Tour) error
	FindByID(ctx context.Context, id int64) (*tour.Tour, error)
	Update(ctx context.Context, t *tour.Tour) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *tour.TourListFilters) ([]tour.Tour, int64, error)
}

type TourService struct {
	tourRepo Repository
	logger   *zap.Logger
}

func NewTourService(tourRepo Repository, logger *zap.Logger) *TourService {
	return &TourService{
		tourRepo: tourRepo,
		logger:   logger,
	}
}

// CreateTour creates a tour; status defaults to scheduled.
func (s *TourService) CreateTour(ctx context.Context, req *tour.CreateTourRequest) (*tour.Tour, error) {
	t := &tour.Tour{
		Name:            strings.TrimSpace(req.Name),
		Description:     req.Description,
		Destination:     strings.TrimSpace(req.Destination),
		DurationDays:    req.DurationDays,
		Price:           req.Price,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		MaxParticipants: req.MaxParticipants,
		Status:          req.Status,
	}
	if t.Status == "" {
		t.Status = tour.StatusScheduled
	}

	if err := validation.Struct(t); err != nil {
		return nil, err
	}

	if err := s.tourRepo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create tour", zap.String("name", t.Name), zap.Error(err))
		return nil, fmt.Errorf("failed to create tour: %w", err)
	}

	s.logger.Info("tour created", zap.Int64("tour_id", t.ID), zap.String("name", t.Name))
	return t, nil
}

// GetTour retrieves a tour by ID
func (s *TourService) GetTour(ctx context.Context, id int64) (*tour.Tour, error) {
	return s.tourRepo.FindByID(ctx, id)
}

// UpdateTour applies the provided fields
func (s *TourService) UpdateTour(ctx context.Context, id int64, req *tour.UpdateTourRequest) (*tour.Tour, error) {
	t, err := s.tourRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Destination != nil {
		t.Destination = strings.TrimSpace(*req.Destination)
	}
	if req.DurationDays != nil {
		t.DurationDays = *req.DurationDays
	}
	if req.Price != nil {
		t.Price = *req.Price
	}
	if req.StartDate != nil {
		t.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		t.EndDate = *req.EndDate
	}
	if req.MaxParticipants != nil {
		t.MaxParticipants = *req.MaxParticipants
	}
	if req.Status != nil {
		t.Status = *req.Status
	}

	if err := validation.Struct(t); err != nil {
		return nil, err
	}

	if err := s.tourRepo.Update(ctx, t); err != nil {
		s.logger.Error("failed to update tour", zap.Int64("tour_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update tour: %w", err)
	}

	s.logger.Info("tour updated", zap.Int64("tour_id", id))
	return t, nil
}

// DeleteTour removes a tour together with its bookings
func (s *TourService) DeleteTour(ctx context.Context, id int64) error {
	if err := s.tourRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("tour deleted", zap.Int64("tour_id", id))
	return nil
}

// ListTours lists tours with filters and pagination
func (s *TourService) ListTours(ctx context.Context, filters *tour.TourListFilters) (*tour.TourListResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.PageSize < 1 {
		filters.PageSize = 20
	}
	if filters.PageSize > 100 {
		filters.PageSize = 100
	}
	filters.Search = strings.TrimSpace(filters.Search)

	tours, total, err := s.tourRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list tours: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &tour.TourListResponse{
		Tours:      tours,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
