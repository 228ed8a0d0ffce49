// internal/domain/customer/number.go
package customer

import (
	"fmt"
	"time"
)

// Period is the year-month bucket a customer number is counted in.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the numbering period for t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// Key is the stable storage key of the period, e.g. "2024-05".
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Start is the first instant of the period in loc.
func (p Period) Start(loc *time.Location) time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
}

// End is the first instant of the following period in loc.
func (p Period) End(loc *time.Location) time.Time {
	return p.Start(loc).AddDate(0, 1, 0)
}

// FormatNumber renders a customer number: cust-{year}-{month:02d}-{n}.
func FormatNumber(p Period, n int64) string {
	return fmt.Sprintf("cust-%d-%02d-%d", p.Year, int(p.Month), n)
}
