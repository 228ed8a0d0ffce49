// internal/domain/booking/entity.go
package booking

import (
	"encoding/json"
	"fmt"
	"time"

	"tourdesk-service/internal/domain/customer"

	"github.com/shopspring/decimal"
)

// Payment statuses. They are set by staff and never derived from the amounts.
const (
	PaymentPending  = "pending"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

var PaymentStatusChoices = []customer.Choice{
	{Value: PaymentPending, Label: "Pending"},
	{Value: PaymentPartial, Label: "Partial"},
	{Value: PaymentPaid, Label: "Paid"},
	{Value: PaymentRefunded, Label: "Refunded"},
}

type Booking struct {
	ID                   int64           `json:"id" db:"id"`
	CustomerID           int64           `json:"customer_id" db:"customer_id" validate:"required"`
	TourID               int64           `json:"tour_id" db:"tour_id" validate:"required"`
	NumberOfParticipants int             `json:"number_of_participants" db:"number_of_participants" validate:"min=1"`
	TotalPrice           decimal.Decimal `json:"total_price" db:"total_price" validate:"gte=0.01"`
	AmountPaid           decimal.Decimal `json:"amount_paid" db:"amount_paid"`
	PaymentStatus        string          `json:"payment_status" db:"payment_status" validate:"required,oneof=pending partial paid refunded"`
	BookingDate          time.Time       `json:"booking_date" db:"booking_date"`
	Notes                string          `json:"notes" db:"notes"`
	CreatedAt            time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at" db:"updated_at"`

	// Populated by list/detail queries for display.
	CustomerName string `json:"customer_name,omitempty" db:"-"`
	TourName     string `json:"tour_name,omitempty" db:"-"`
}

// AccountsReceivable is the outstanding balance: total price minus amount paid.
// It is not clamped, so an overpaid booking yields a negative value.
func (b *Booking) AccountsReceivable() decimal.Decimal {
	return b.TotalPrice.Sub(b.AmountPaid)
}

// Label is how a booking is shown in lists: "{customer} - {tour}".
func (b *Booking) Label() string {
	return fmt.Sprintf("%s - %s", b.CustomerName, b.TourName)
}

// MarshalJSON adds the read-only accounts_receivable column.
func (b Booking) MarshalJSON() ([]byte, error) {
	type alias Booking
	return json.Marshal(struct {
		alias
		AccountsReceivable decimal.Decimal `json:"accounts_receivable"`
	}{
		alias:              alias(b),
		AccountsReceivable: b.AccountsReceivable(),
	})
}
