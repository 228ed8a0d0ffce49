package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"tourdesk-service/internal/domain/booking"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	filters *booking.BookingListFilters
}

func (f *fakeService) CreateBooking(_ context.Context, req *booking.CreateBookingRequest) (*booking.Booking, error) {
	if req.TourID == 404 {
		return nil, fmt.Errorf("failed to create booking: %w", xerrors.ErrInvalidInput)
	}
	paid := decimal.Zero
	if req.AmountPaid != nil {
		paid = *req.AmountPaid
	}
	return &booking.Booking{
		ID:            1,
		CustomerID:    req.CustomerID,
		TourID:        req.TourID,
		TotalPrice:    req.TotalPrice,
		AmountPaid:    paid,
		PaymentStatus: req.PaymentStatus,
		CustomerName:  "Ayse Yilmaz",
		TourName:      "Cappadocia - Goreme",
	}, nil
}

func (f *fakeService) GetBooking(_ context.Context, id int64) (*booking.Booking, error) {
	if id != 1 {
		return nil, xerrors.ErrNotFound
	}
	return &booking.Booking{ID: 1}, nil
}

func (f *fakeService) UpdateBooking(_ context.Context, id int64, req *booking.UpdateBookingRequest) (*booking.Booking, error) {
	if id != 1 {
		return nil, xerrors.ErrNotFound
	}
	return &booking.Booking{ID: 1, PaymentStatus: *req.PaymentStatus}, nil
}

func (f *fakeService) DeleteBooking(_ context.Context, id int64) error {
	if id != 1 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (f *fakeService) ListBookings(_ context.Context, filters *booking.BookingListFilters) (*booking.BookingListResponse, error) {
	f.filters = filters
	return &booking.BookingListResponse{Bookings: []booking.Booking{}}, nil
}

func newRouter(svc *fakeService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewBookingHandler(svc)
	r := gin.New()
	r.GET("/bookings", h.ListBookings)
	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings/:id", h.GetBooking)
	r.PUT("/bookings/:id", h.UpdateBooking)
	r.DELETE("/bookings/:id", h.DeleteBooking)
	return r
}

func do(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingReportsReceivable(t *testing.T) {
	r := newRouter(&fakeService{})

	w := do(r, http.MethodPost, "/bookings",
		`{"customer_id":1,"tour_id":2,"total_price":"1000","amount_paid":"1100","payment_status":"paid"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "-100", body.Data["accounts_receivable"])
	assert.Equal(t, "paid", body.Data["payment_status"])
	assert.Equal(t, "Ayse Yilmaz", body.Data["customer_name"])
}

func TestCreateBookingUnknownTour(t *testing.T) {
	r := newRouter(&fakeService{})

	w := do(r, http.MethodPost, "/bookings", `{"customer_id":1,"tour_id":404,"total_price":"10"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/bookings", `{"tour_id":2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookingReadWriteStatusCodes(t *testing.T) {
	r := newRouter(&fakeService{})

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/bookings/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodGet, "/bookings/2", "").Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodPut, "/bookings/1", `{"payment_status":"refunded"}`).Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodDelete, "/bookings/2", "").Code)
}

func TestListBookingsBindsFilters(t *testing.T) {
	svc := &fakeService{}
	r := newRouter(svc)

	w := do(r, http.MethodGet, "/bookings?payment_status=pending&payment_status=partial&tour_id=2&booked_from=2024-01-01", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"pending", "partial"}, svc.filters.PaymentStatuses)
	assert.Equal(t, int64(2), svc.filters.TourID)
	require.NotNil(t, svc.filters.BookedFrom)
}
