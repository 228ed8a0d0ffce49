// internal/domain/customer/entity.go
package customer

import (
	"fmt"
	"time"
)

// Gender choices shared by customers and staff profiles.
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// GenderChoices lists the selectable genders with their labels.
var GenderChoices = []Choice{
	{Value: GenderMale, Label: "Male"},
	{Value: GenderFemale, Label: "Female"},
	{Value: GenderOther, Label: "Other"},
}

// Choice is a value/label pair for enumerated fields.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type Customer struct {
	ID             int64  `json:"id" db:"id"`
	CustomerNumber string `json:"customer_number" db:"customer_number" validate:"max=32"`

	// Identity and contact
	FirstName      string     `json:"first_name" db:"first_name" validate:"required,max=100"`
	LastName       string     `json:"last_name" db:"last_name" validate:"required,max=100"`
	Email          string     `json:"email" db:"email" validate:"required,email,max=254"`
	Phone          string     `json:"phone" db:"phone" validate:"required,max=20"`
	PassportNumber string     `json:"passport_number" db:"passport_number" validate:"max=50"`
	IdentityNumber string     `json:"identity_number" db:"identity_number" validate:"max=50"`
	BirthDate      *time.Time `json:"birth_date,omitempty" db:"birth_date"`
	BirthPlace     string     `json:"birth_place" db:"birth_place" validate:"max=100"`
	Address        string     `json:"address" db:"address"`
	Country        string     `json:"country" db:"country" validate:"required,max=100"`
	City           string     `json:"city" db:"city" validate:"required,max=100"`
	Nationality    string     `json:"nationality" db:"nationality" validate:"max=100"`

	// Demographics
	Age    *int   `json:"age" db:"age" validate:"omitempty,min=0"`
	Gender string `json:"gender" db:"gender" validate:"required,oneof=M F O"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FullName is how a customer is shown in lists and booking labels.
func (c *Customer) FullName() string {
	return fmt.Sprintf("%s %s", c.FirstName, c.LastName)
}
