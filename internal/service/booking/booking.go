// internal/service/booking/booking.go
package booking

import (
	"context"
	"fmt"
	"strings"

	"tourdesk-service/internal/domain/booking"
	"tourdesk-service/internal/pkg/metrics"
	"tourdesk-service/internal/pkg/validation"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id int64) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *booking.BookingListFilters) ([]booking.Booking, int64, error)
}

type BookingService struct {
	bookingRepo Repository
	metrics     *metrics.Metrics
	logger      *zap.Logger
}

func NewBookingService(bookingRepo Repository, m *metrics.Metrics, logger *zap.Logger) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		metrics:     m,
		logger:      logger,
	}
}

// CreateBooking records a booking. amount_paid defaults to zero and
// payment_status to pending; the status is whatever staff set, never derived
// from the amounts.
func (s *BookingService) CreateBooking(ctx context.Context, req *booking.CreateBookingRequest) (*booking.Booking, error) {
	b := &booking.Booking{
		CustomerID:           req.CustomerID,
		TourID:               req.TourID,
		NumberOfParticipants: req.NumberOfParticipants,
		TotalPrice:           req.TotalPrice,
		AmountPaid:           decimal.Zero,
		PaymentStatus:        req.PaymentStatus,
		Notes:                req.Notes,
	}
	if req.AmountPaid != nil {
		b.AmountPaid = *req.AmountPaid
	}
	if b.NumberOfParticipants == 0 {
		b.NumberOfParticipants = 1
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = booking.PaymentPending
	}

	if err := validation.Struct(b); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Create(ctx, b); err != nil {
		s.logger.Error("failed to create booking",
			zap.Int64("customer_id", b.CustomerID),
			zap.Int64("tour_id", b.TourID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.BookingsCreated.Inc()
	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("customer_id", b.CustomerID),
		zap.Int64("tour_id", b.TourID),
	)

	// Reload for the customer and tour display names.
	return s.bookingRepo.FindByID(ctx, b.ID)
}

// GetBooking retrieves a booking by ID
func (s *BookingService) GetBooking(ctx context.Context, id int64) (*booking.Booking, error) {
	return s.bookingRepo.FindByID(ctx, id)
}

// UpdateBooking applies the provided fields
func (s *BookingService) UpdateBooking(ctx context.Context, id int64, req *booking.UpdateBookingRequest) (*booking.Booking, error) {
	b, err := s.bookingRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.CustomerID != nil {
		b.CustomerID = *req.CustomerID
	}
	if req.TourID != nil {
		b.TourID = *req.TourID
	}
	if req.NumberOfParticipants != nil {
		b.NumberOfParticipants = *req.NumberOfParticipants
	}
	if req.TotalPrice != nil {
		b.TotalPrice = *req.TotalPrice
	}
	if req.AmountPaid != nil {
		b.AmountPaid = *req.AmountPaid
	}
	if req.PaymentStatus != nil {
		b.PaymentStatus = *req.PaymentStatus
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if err := validation.Struct(b); err != nil {
		return nil, err
	}

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		s.logger.Error("failed to update booking", zap.Int64("booking_id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update booking: %w", err)
	}

	s.logger.Info("booking updated",
		zap.Int64("booking_id", id),
		zap.String("payment_status", b.PaymentStatus),
	)

	return s.bookingRepo.FindByID(ctx, id)
}

// DeleteBooking removes a booking
func (s *BookingService) DeleteBooking(ctx context.Context, id int64) error {
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("booking deleted", zap.Int64("booking_id", id))
	return nil
}

// ListBookings lists bookings with filters and pagination
func (s *BookingService) ListBookings(ctx context.Context, filters *booking.BookingListFilters) (*booking.BookingListResponse, error) {
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

	bookings, total, err := s.bookingRepo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	totalPages := int(total) / filters.PageSize
	if int(total)%filters.PageSize > 0 {
		totalPages++
	}

	return &booking.BookingListResponse{
		Bookings:   bookings,
		Total:      total,
		Page:       filters.Page,
		PageSize:   filters.PageSize,
		TotalPages: totalPages,
	}, nil
}
