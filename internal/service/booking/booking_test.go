package booking

import (
	"context"
	"fmt"
	"testing"

	"tourdesk-service/internal/domain/booking"
	xerrors "tourdesk-service/internal/pkg/errors"
	"tourdesk-service/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	bookings map[int64]*booking.Booking
	nextID   int64
	// customers and tours that exist, for the foreign key check
	customers map[int64]string
	tours     map[int64]string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:  map[int64]*booking.Booking{},
		customers: map[int64]string{1: "Ayse Yilmaz"},
		tours:     map[int64]string{1: "Cappadocia Balloons - Cappadocia"},
	}
}

func (r *fakeRepo) Create(_ context.Context, b *booking.Booking) error {
	if _, ok := r.customers[b.CustomerID]; !ok {
		return fmt.Errorf("create booking: referenced record does not exist: %w", xerrors.ErrInvalidInput)
	}
	if _, ok := r.tours[b.TourID]; !ok {
		return fmt.Errorf("create booking: referenced record does not exist: %w", xerrors.ErrInvalidInput)
	}
	r.nextID++
	b.ID = r.nextID
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) FindByID(_ context.Context, id int64) (*booking.Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *b
	cp.CustomerName = r.customers[b.CustomerID]
	cp.TourName = r.tours[b.TourID]
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, b *booking.Booking) error {
	cp := *b
	r.bookings[b.ID] = &cp
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.bookings[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.bookings, id)
	return nil
}

func (r *fakeRepo) List(_ context.Context, _ *booking.BookingListFilters) ([]booking.Booking, int64, error) {
	out := []booking.Booking{}
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, int64(len(out)), nil
}

func newService() *BookingService {
	return NewBookingService(newFakeRepo(), metrics.NewNop(), zap.NewNop())
}

func TestCreateBookingDefaults(t *testing.T) {
	s := newService()

	b, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID: 1,
		TourID:     1,
		TotalPrice: decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)

	assert.True(t, b.AmountPaid.Equal(decimal.Zero))
	assert.Equal(t, booking.PaymentPending, b.PaymentStatus)
	assert.Equal(t, 1, b.NumberOfParticipants)
	assert.Equal(t, "900", b.AccountsReceivable().String())
	assert.Equal(t, "Ayse Yilmaz - Cappadocia Balloons - Cappadocia", b.Label())
}

func TestPaymentStatusIsNotDerived(t *testing.T) {
	s := newService()
	paid := decimal.RequireFromString("900.00")

	// Fully paid amount, status left as staff set it.
	b, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID:    1,
		TourID:        1,
		TotalPrice:    decimal.RequireFromString("900.00"),
		AmountPaid:    &paid,
		PaymentStatus: booking.PaymentPartial,
	})
	require.NoError(t, err)
	assert.Equal(t, booking.PaymentPartial, b.PaymentStatus)
	assert.True(t, b.AccountsReceivable().IsZero())
}

func TestOverpaymentAllowed(t *testing.T) {
	s := newService()
	over := decimal.RequireFromString("1000.00")

	b, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID: 1,
		TourID:     1,
		TotalPrice: decimal.RequireFromString("900.00"),
		AmountPaid: &over,
	})
	require.NoError(t, err)
	assert.Equal(t, "-100", b.AccountsReceivable().String())
}

func TestCreateBookingValidation(t *testing.T) {
	s := newService()

	_, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID:    1,
		TourID:        1,
		TotalPrice:    decimal.Zero,
		PaymentStatus: "overdue",
	})
	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "total_price")
	assert.Contains(t, ve.Fields, "payment_status")
}

func TestCreateBookingUnknownTour(t *testing.T) {
	s := newService()

	_, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID: 1,
		TourID:     99,
		TotalPrice: decimal.RequireFromString("10.00"),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestUpdateBookingPayment(t *testing.T) {
	s := newService()

	b, err := s.CreateBooking(context.Background(), &booking.CreateBookingRequest{
		CustomerID: 1,
		TourID:     1,
		TotalPrice: decimal.RequireFromString("900.00"),
	})
	require.NoError(t, err)

	paid := decimal.RequireFromString("400.00")
	status := booking.PaymentPartial
	updated, err := s.UpdateBooking(context.Background(), b.ID, &booking.UpdateBookingRequest{
		AmountPaid:    &paid,
		PaymentStatus: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "500", updated.AccountsReceivable().String())
	assert.Equal(t, booking.PaymentPartial, updated.PaymentStatus)

	require.NoError(t, s.DeleteBooking(context.Background(), b.ID))
	_, err = s.GetBooking(context.Background(), b.ID)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
