// internal/domain/customer/dto.go
package customer

import "time"

type CreateCustomerRequest struct {
	CustomerNumber string     `json:"customer_number"`
	FirstName      string     `json:"first_name" binding:"required,max=100"`
	LastName       string     `json:"last_name" binding:"required,max=100"`
	Email          string     `json:"email" binding:"required,email,max=254"`
	Phone          string     `json:"phone" binding:"required,max=20"`
	PassportNumber string     `json:"passport_number"`
	IdentityNumber string     `json:"identity_number"`
	BirthDate      *time.Time `json:"birth_date"`
	BirthPlace     string     `json:"birth_place"`
	Address        string     `json:"address"`
	Country        string     `json:"country" binding:"required"`
	City           string     `json:"city" binding:"required"`
	Nationality    string     `json:"nationality"`
	Age            *int       `json:"age"`
	Gender         string     `json:"gender" binding:"required"`
}

// UpdateCustomerRequest never carries customer_number: it is immutable.
type UpdateCustomerRequest struct {
	FirstName      *string    `json:"first_name"`
	LastName       *string    `json:"last_name"`
	Email          *string    `json:"email"`
	Phone          *string    `json:"phone"`
	PassportNumber *string    `json:"passport_number"`
	IdentityNumber *string    `json:"identity_number"`
	BirthDate      *time.Time `json:"birth_date"`
	BirthPlace     *string    `json:"birth_place"`
	Address        *string    `json:"address"`
	Country        *string    `json:"country"`
	City           *string    `json:"city"`
	Nationality    *string    `json:"nationality"`
	Age            *int       `json:"age"`
	ClearAge       bool       `json:"clear_age"`
	Gender         *string    `json:"gender"`
}

type CustomerListFilters struct {
	Countries   []string   `form:"country"`
	Cities      []string   `form:"city"`
	Gender      string     `form:"gender"`
	CreatedFrom *time.Time `form:"created_from" time_format:"2006-01-02"`
	CreatedTo   *time.Time `form:"created_to" time_format:"2006-01-02"`
	Search      string     `form:"search"` // first name, last name, email, phone
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	SortBy      string     `form:"sort_by"`
	SortOrder   string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type CustomerListResponse struct {
	Customers  []Customer `json:"customers"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}
