// internal/domain/tour/entity.go
package tour

import (
	"fmt"
	"time"

	"tourdesk-service/internal/domain/customer"

	"github.com/shopspring/decimal"
)

// Lifecycle statuses of a tour.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

var StatusChoices = []customer.Choice{
	{Value: StatusScheduled, Label: "Scheduled"},
	{Value: StatusInProgress, Label: "In Progress"},
	{Value: StatusCompleted, Label: "Completed"},
	{Value: StatusCancelled, Label: "Cancelled"},
}

type Tour struct {
	ID              int64           `json:"id" db:"id"`
	Name            string          `json:"name" db:"name" validate:"required,max=200"`
	Description     string          `json:"description" db:"description" validate:"required"`
	Destination     string          `json:"destination" db:"destination" validate:"required,max=200"`
	DurationDays    int             `json:"duration_days" db:"duration_days" validate:"min=1"`
	Price           decimal.Decimal `json:"price" db:"price" validate:"gte=0.01"`
	StartDate       time.Time       `json:"start_date" db:"start_date" validate:"required"`
	EndDate         time.Time       `json:"end_date" db:"end_date" validate:"required,gtefield=StartDate"`
	MaxParticipants int             `json:"max_participants" db:"max_participants" validate:"min=1"`
	Status          string          `json:"status" db:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// Label is how a tour is shown in lists: "{name} - {destination}".
func (t *Tour) Label() string {
	return fmt.Sprintf("%s - %s", t.Name, t.Destination)
}
