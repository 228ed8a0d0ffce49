// internal/domain/tour/dto.go
package tour

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreateTourRequest struct {
	Name            string          `json:"name" binding:"required"`
	Description     string          `json:"description" binding:"required"`
	Destination     string          `json:"destination" binding:"required"`
	DurationDays    int             `json:"duration_days"`
	Price           decimal.Decimal `json:"price"`
	StartDate       time.Time       `json:"start_date" binding:"required"`
	EndDate         time.Time       `json:"end_date" binding:"required"`
	MaxParticipants int             `json:"max_participants"`
	Status          string          `json:"status"`
}

type UpdateTourRequest struct {
	Name            *string          `json:"name"`
	Description     *string          `json:"description"`
	Destination     *string          `json:"destination"`
	DurationDays    *int             `json:"duration_days"`
	Price           *decimal.Decimal `json:"price"`
	StartDate       *time.Time       `json:"start_date"`
	EndDate         *time.Time       `json:"end_date"`
	MaxParticipants *int             `json:"max_participants"`
	Status          *string          `json:"status"`
}

type TourListFilters struct {
	Statuses     []string   `form:"status"`
	Destinations []string   `form:"destination"`
	StartFrom    *time.Time `form:"start_from" time_format:"2006-01-02"`
	StartTo      *time.Time `form:"start_to" time_format:"2006-01-02"`
	Search       string     `form:"search"` // name, destination, description
	Page         int        `form:"page"`
	PageSize     int        `form:"page_size"`
	SortBy       string     `form:"sort_by"`
	SortOrder    string     `form:"sort_order" binding:"omitempty,oneof=asc desc"`
}

type TourListResponse struct {
	Tours      []Tour `json:"tours"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
}
