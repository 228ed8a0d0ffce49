// internal/domain/booking/dto.go
package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateBookingRequest struct {
	CustomerID           int64            `json:"customer_id" binding:"required"`
	TourID               int64            `json:"tour_id" binding:"required"`
	NumberOfParticipants int              `json:"number_of_participants"`
	TotalPrice           decimal.Decimal  `json:"total_price"`
	AmountPaid           *decimal.Decimal `json:"amount_paid"`
	PaymentStatus        string           `json:"payment_status"`
	Notes                string           `json:"notes"`
}

type UpdateBookingRequest struct {
	CustomerID           *int64           `json:"customer_id"`
	TourID               *int64           `json:"tour_id"`
	NumberOfParticipants *int             `json:"number_of_participants"`
	TotalPrice           *decimal.Decimal `json:"total_price"`
	AmountPaid           *decimal.Decimal `json:"amount_paid"`
	PaymentStatus        *string          `json:"payment_status"`
	Notes                *string          `json:"notes"`
}

type BookingListFilters struct {
	PaymentStatuses []string   `form:"payment_status"`
	TourID          int64      `form:"tour_id"`
	CustomerID      int64      `form:"customer_id"`
	BookedFrom      *time.Time `form:"booked_from" time_format:"2006-01-02"`
	BookedTo        *time.Time `form:"booked_to" time_format:"2006-01-02"`
	Search          string     `form:"search"` // customer first/last name, tour name
	Page            int        `form:"page"`
	PageSize        int        `form:"page_size"`
	SortBy          string     `form:"sort_by"`
	SortOrder       string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	Total      int64     `json:"total"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}
