// internal/service/dashboard/dashboard.go
package dashboard

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"time"

	"tourdesk-service/internal/domain/dashboard"
	"tourdesk-service/internal/pkg/metrics"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Repository runs the aggregate queries.
type Repository interface {
	CountCustomers(ctx context.Context) (int64, error)
	CountTours(ctx context.Context) (int64, error)
	TotalRevenue(ctx context.Context) (decimal.Decimal, error)
	AccountsReceivable(ctx context.Context) (decimal.Decimal, error)
	CustomersByCountry(ctx context.Context, limit int) ([]dashboard.CountByKey, error)
	CustomersByCity(ctx context.Context, limit int) ([]dashboard.CountByKey, error)
	AgeGroups(ctx context.Context) (map[string]int64, error)
	GenderStats(ctx context.Context) ([]dashboard.CountByKey, error)
}

type DashboardService struct {
	repo    Repository
	money   *MoneyFormatter
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewDashboardService(repo Repository, money *MoneyFormatter, m *metrics.Metrics, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		repo:    repo,
		money:   money,
		metrics: m,
		logger:  logger,
	}
}

// GetDashboard computes every figure fresh. Nothing is cached.
func (s *DashboardService) GetDashboard(ctx context.Context) (*dashboard.Dashboard, error) {
	start := time.Now()
	defer func() { s.metrics.DashboardBuild.Observe(time.Since(start).Seconds()) }()

	var (
		d   dashboard.Dashboard
		err error
	)

	if d.Stats.TotalCustomers, err = s.repo.CountCustomers(ctx); err != nil {
		return nil, s.fail("total customers", err)
	}
	if d.Stats.TotalTours, err = s.repo.CountTours(ctx); err != nil {
		return nil, s.fail("total tours", err)
	}
	if d.Stats.TotalRevenue, err = s.repo.TotalRevenue(ctx); err != nil {
		return nil, s.fail("total revenue", err)
	}
	if d.Stats.AccountsReceivable, err = s.repo.AccountsReceivable(ctx); err != nil {
		return nil, s.fail("accounts receivable", err)
	}
	d.Stats.TotalRevenueDisplay = s.money.Format(d.Stats.TotalRevenue)
	d.Stats.AccountsReceivableDisplay = s.money.Format(d.Stats.AccountsReceivable)

	if d.CustomersByCountry, err = s.repo.CustomersByCountry(ctx, dashboard.TopN); err != nil {
		return nil, s.fail("customers by country", err)
	}
	if d.CustomersByCity, err = s.repo.CustomersByCity(ctx, dashboard.TopN); err != nil {
		return nil, s.fail("customers by city", err)
	}

	groups, err := s.repo.AgeGroups(ctx)
	if err != nil {
		return nil, s.fail("age groups", err)
	}
	d.AgeGroups = dashboard.EmptyAgeGroups()
	for label, n := range groups {
		if _, ok := d.AgeGroups[label]; ok {
			d.AgeGroups[label] = n
		}
	}

	if d.GenderStats, err = s.repo.GenderStats(ctx); err != nil {
		return nil, s.fail("gender stats", err)
	}

	if d.CustomersByCountry == nil {
		d.CustomersByCountry = []dashboard.CountByKey{}
	}
	if d.CustomersByCity == nil {
		d.CustomersByCity = []dashboard.CountByKey{}
	}
	if d.GenderStats == nil {
		d.GenderStats = []dashboard.CountByKey{}
	}

	return &d, nil
}

func (s *DashboardService) fail(what string, err error) error {
	s.logger.Error("dashboard aggregate failed", zap.String("aggregate", what), zap.Error(err))
	return fmt.Errorf("failed to compute %s: %w", what, err)
}

// MoneyFormatter renders amounts as "€1,234.56".
type MoneyFormatter struct {
	symbol  string
	printer *message.Printer
}

func NewMoneyFormatter(symbol string) *MoneyFormatter {
	return &MoneyFormatter{
		symbol:  symbol,
		printer: message.NewPrinter(language.English),
	}
}

// Format rounds to cents and groups thousands. Negative amounts get a
// leading minus: "-€100.00". Only the whole part goes through the printer, so
// cents stay exact at any magnitude.
func (f *MoneyFormatter) Format(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	dot := strings.IndexByte(fixed, '.')
	whole, cents := fixed[:dot], fixed[dot+1:]

	if n, ok := new(big.Int).SetString(whole, 10); ok && n.IsInt64() {
		whole = f.printer.Sprintf("%d", n.Int64())
	} else {
		whole = groupThousands(whole)
	}
	return sign + f.symbol + whole + "." + cents
}

func groupThousands(digits string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
