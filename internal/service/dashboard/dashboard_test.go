package dashboard

import (
	"context"
	"errors"
	"testing"

	"tourdesk-service/internal/domain/dashboard"
	"tourdesk-service/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRepo struct {
	customers, tours int64
	revenue, ar      decimal.Decimal
	countries        []dashboard.CountByKey
	ages             map[string]int64
	genders          []dashboard.CountByKey
	failOn           string
	countryLimit     int
}

func (r *fakeRepo) err(name string) error {
	if r.failOn == name {
		return errors.New("connection reset")
	}
	return nil
}

func (r *fakeRepo) CountCustomers(context.Context) (int64, error) {
	return r.customers, r.err("customers")
}
func (r *fakeRepo) CountTours(context.Context) (int64, error) { return r.tours, r.err("tours") }
func (r *fakeRepo) TotalRevenue(context.Context) (decimal.Decimal, error) {
	return r.revenue, r.err("revenue")
}
func (r *fakeRepo) AccountsReceivable(context.Context) (decimal.Decimal, error) {
	return r.ar, r.err("ar")
}
func (r *fakeRepo) CustomersByCountry(_ context.Context, limit int) ([]dashboard.CountByKey, error) {
	r.countryLimit = limit
	return r.countries, r.err("country")
}
func (r *fakeRepo) CustomersByCity(context.Context, int) ([]dashboard.CountByKey, error) {
	return nil, r.err("city")
}
func (r *fakeRepo) AgeGroups(context.Context) (map[string]int64, error) {
	return r.ages, r.err("ages")
}
func (r *fakeRepo) GenderStats(context.Context) ([]dashboard.CountByKey, error) {
	return r.genders, r.err("gender")
}

func newService(repo Repository) *DashboardService {
	return NewDashboardService(repo, NewMoneyFormatter("€"), metrics.NewNop(), zap.NewNop())
}

func TestGetDashboard(t *testing.T) {
	repo := &fakeRepo{
		customers: 3,
		tours:     2,
		revenue:   decimal.RequireFromString("1500.00"),
		ar:        decimal.RequireFromString("1234.5"),
		countries: []dashboard.CountByKey{{Key: "Turkey", Count: 2}, {Key: "Germany", Count: 1}},
		ages:      map[string]int64{"26-35": 2},
		genders:   []dashboard.CountByKey{{Key: "F", Count: 2}, {Key: "M", Count: 1}},
	}

	d, err := newService(repo).GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), d.Stats.TotalCustomers)
	assert.Equal(t, int64(2), d.Stats.TotalTours)
	assert.Equal(t, "€1,500.00", d.Stats.TotalRevenueDisplay)
	assert.Equal(t, "€1,234.50", d.Stats.AccountsReceivableDisplay)
	assert.Equal(t, dashboard.TopN, repo.countryLimit)
	assert.Equal(t, "Turkey", d.CustomersByCountry[0].Key)
	assert.Empty(t, d.CustomersByCity)
	assert.NotNil(t, d.CustomersByCity)

	assert.Len(t, d.AgeGroups, 5)
	assert.Equal(t, int64(2), d.AgeGroups["26-35"])
	assert.Equal(t, int64(0), d.AgeGroups["56+"])
}

func TestGetDashboardEmpty(t *testing.T) {
	d, err := newService(&fakeRepo{}).GetDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, d.Stats.TotalCustomers)
	assert.True(t, d.Stats.TotalRevenue.IsZero())
	assert.Equal(t, "€0.00", d.Stats.TotalRevenueDisplay)
	assert.Equal(t, "€0.00", d.Stats.AccountsReceivableDisplay)
	assert.Equal(t, dashboard.EmptyAgeGroups(), d.AgeGroups)
	assert.NotNil(t, d.GenderStats)
}

func TestGetDashboardPropagatesErrors(t *testing.T) {
	_, err := newService(&fakeRepo{failOn: "ar"}).GetDashboard(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accounts receivable")
}

func TestMoneyFormatter(t *testing.T) {
	f := NewMoneyFormatter("€")

	assert.Equal(t, "€1,234.56", f.Format(decimal.RequireFromString("1234.56")))
	assert.Equal(t, "€1,234,567.89", f.Format(decimal.RequireFromString("1234567.891")))
	assert.Equal(t, "€0.10", f.Format(decimal.RequireFromString("0.1")))
	assert.Equal(t, "-€100.00", f.Format(decimal.RequireFromString("-100")))
	assert.Equal(t, "€0.00", f.Format(decimal.Zero))
	assert.Equal(t, "€0.01", f.Format(decimal.RequireFromString("0.005")))
	assert.Equal(t, "€0.00", f.Format(decimal.RequireFromString("-0.001")))

	// Past float64 precision the cents must survive.
	assert.Equal(t, "€1,234,567,890,123,456.78", f.Format(decimal.RequireFromString("1234567890123456.78")))
	assert.Equal(t, "-€98,765,432,109,876,543,210.99", f.Format(decimal.RequireFromString("-98765432109876543210.99")))

	assert.Equal(t, "$12.00", NewMoneyFormatter("$").Format(decimal.NewFromInt(12)))
}
