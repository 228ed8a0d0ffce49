package validation

import (
	"errors"
	"testing"
	"time"

	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email     string          `json:"email" validate:"required,email"`
	Age       *int            `json:"age" validate:"omitempty,min=0"`
	Price     decimal.Decimal `json:"price" validate:"gte=0.01"`
	Status    string          `json:"status" validate:"oneof=scheduled in_progress"`
	StartDate time.Time       `json:"start_date"`
	EndDate   time.Time       `json:"end_date" validate:"gtefield=StartDate"`
}

func valid() sample {
	age := 30
	return sample{
		Email:     "a@example.com",
		Age:       &age,
		Price:     decimal.RequireFromString("10.00"),
		Status:    "scheduled",
		StartDate: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestStruct_Valid(t *testing.T) {
	assert.NoError(t, Struct(valid()))

	s := valid()
	s.Age = nil
	assert.NoError(t, Struct(s), "null age is allowed")
}

func TestStruct_FieldMessages(t *testing.T) {
	s := valid()
	neg := -1
	s.Email = "not-an-email"
	s.Age = &neg
	s.Price = decimal.Zero
	s.Status = "bogus"
	s.EndDate = s.StartDate.Add(-24 * time.Hour)

	err := Struct(s)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xerrors.ErrInvalidInput))

	ve, ok := xerrors.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "enter a valid email address", ve.Fields["email"])
	assert.Equal(t, "must be at least 0", ve.Fields["age"])
	assert.Equal(t, "must be at least 0.01", ve.Fields["price"])
	assert.Equal(t, "must be one of: scheduled, in_progress", ve.Fields["status"])
	assert.Equal(t, "must not be before start_date", ve.Fields["end_date"])
}

func TestStruct_DecimalBoundary(t *testing.T) {
	s := valid()
	s.Price = decimal.RequireFromString("0.01")
	assert.NoError(t, Struct(s))
}
