// internal/domain/dashboard/entity.go
package dashboard

import "github.com/shopspring/decimal"

// TopN is how many rows the country and city breakdowns keep.
const TopN = 10

// AgeBand is an inclusive age range. Max < 0 means open-ended.
type AgeBand struct {
	Label string
	Min   int
	Max   int
}

// AgeBands are the fixed dashboard bands, in display order.
var AgeBands = []AgeBand{
	{Label: "18-25", Min: 18, Max: 25},
	{Label: "26-35", Min: 26, Max: 35},
	{Label: "36-45", Min: 36, Max: 45},
	{Label: "46-55", Min: 46, Max: 55},
	{Label: "56+", Min: 56, Max: -1},
}

// Contains reports whether age falls in the band.
func (b AgeBand) Contains(age int) bool {
	if age < b.Min {
		return false
	}
	return b.Max < 0 || age <= b.Max
}

// AgeBandFor returns the band label for age. Nil ages and ages under the
// lowest band belong to no band.
func AgeBandFor(age *int) (string, bool) {
	if age == nil {
		return "", false
	}
	for _, b := range AgeBands {
		if b.Contains(*age) {
			return b.Label, true
		}
	}
	return "", false
}

// CountByKey is one row of a grouped count, e.g. {"country":"Turkey","count":12}.
type CountByKey struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Stats are the headline numbers.
type Stats struct {
	TotalCustomers            int64           `json:"total_customers"`
	TotalTours                int64           `json:"total_tours"`
	TotalRevenue              decimal.Decimal `json:"total_revenue"`
	AccountsReceivable        decimal.Decimal `json:"accounts_receivable"`
	TotalRevenueDisplay       string          `json:"total_revenue_display"`
	AccountsReceivableDisplay string          `json:"accounts_receivable_display"`
}

// Dashboard is everything the dashboard page renders.
type Dashboard struct {
	Stats              Stats            `json:"dashboard_stats"`
	CustomersByCountry []CountByKey     `json:"customers_by_country"`
	CustomersByCity    []CountByKey     `json:"customers_by_city"`
	AgeGroups          map[string]int64 `json:"age_groups"`
	GenderStats        []CountByKey     `json:"gender_stats"`
}

// EmptyAgeGroups returns every band with a zero count.
func EmptyAgeGroups() map[string]int64 {
	groups := make(map[string]int64, len(AgeBands))
	for _, b := range AgeBands {
		groups[b.Label] = 0
	}
	return groups
}
