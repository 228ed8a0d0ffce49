package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"tourdesk-service/internal/domain/customer"
	xerrors "tourdesk-service/internal/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCustomer(email string, createdAt time.Time) *customer.Customer {
	return &customer.Customer{
		FirstName: "Ayse",
		LastName:  "Yilmaz",
		Email:     email,
		Phone:     "+905551112233",
		Country:   "Turkey",
		City:      "Izmir",
		Gender:    customer.GenderFemale,
		CreatedAt: createdAt,
	}
}

func TestCustomerRepositoryCreateNumberedSameMonth(t *testing.T) {
	repo := NewCustomerRepository(newTestPool(t))
	ctx := context.Background()

	may := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	period := customer.PeriodOf(may)

	first := newCustomer("a@example.com", may)
	require.NoError(t, repo.CreateNumbered(ctx, first, period, time.UTC))
	assert.Equal(t, "cust-2024-05-1", first.CustomerNumber)

	second := newCustomer("b@example.com", may.Add(time.Hour))
	require.NoError(t, repo.CreateNumbered(ctx, second, period, time.UTC))
	assert.Equal(t, "cust-2024-05-2", second.CustomerNumber)

	june := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	third := newCustomer("c@example.com", june)
	require.NoError(t, repo.CreateNumbered(ctx, third, customer.PeriodOf(june), time.UTC))
	assert.Equal(t, "cust-2024-06-1", third.CustomerNumber)

	stored, err := repo.FindByNumber(ctx, "cust-2024-05-2")
	require.NoError(t, err)
	assert.Equal(t, second.ID, stored.ID)
}

func TestCustomerRepositoryCreateNumberedSeedsFromExisting(t *testing.T) {
	repo := NewCustomerRepository(newTestPool(t))
	ctx := context.Background()

	may := time.Date(2024, 5, 3, 12, 0, 0, 0, time.UTC)
	for i, number := range []string{"legacy-001", "legacy-002"} {
		c := newCustomer(fmt.Sprintf("legacy%d@example.com", i), may)
		c.CustomerNumber = number
		require.NoError(t, repo.Create(ctx, c))
	}

	// An April customer does not count towards May.
	april := newCustomer("april@example.com", time.Date(2024, 4, 30, 23, 0, 0, 0, time.UTC))
	april.CustomerNumber = "legacy-003"
	require.NoError(t, repo.Create(ctx, april))

	c := newCustomer("new@example.com", may.Add(24*time.Hour))
	require.NoError(t, repo.CreateNumbered(ctx, c, customer.PeriodOf(may), time.UTC))
	assert.Equal(t, "cust-2024-05-3", c.CustomerNumber)
}

func TestCustomerRepositoryCreateNumberedConcurrent(t *testing.T) {
	repo := NewCustomerRepository(newTestPool(t))
	ctx := context.Background()

	may := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	period := customer.PeriodOf(may)

	const n = 20
	var wg sync.WaitGroup
	numbers := make([]string, n)
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c := newCustomer(fmt.Sprintf("u%d@example.com", i), may)
			errs[i] = repo.CreateNumbered(ctx, c, period, time.UTC)
			numbers[i] = c.CustomerNumber
		}(i)
	}
	wg.Wait()

	seen := map[string]bool{}
	for i := range numbers {
		require.NoError(t, errs[i])
		assert.False(t, seen[numbers[i]], "duplicate %s", numbers[i])
		seen[numbers[i]] = true
	}
	for i := 1; i <= n; i++ {
		assert.True(t, seen[fmt.Sprintf("cust-2024-05-%d", i)], "missing number %d", i)
	}
}

func TestCustomerRepositoryDuplicateNumber(t *testing.T) {
	repo := NewCustomerRepository(newTestPool(t))
	ctx := context.Background()

	now := time.Date(2024, 5, 10, 9, 0, 0, 0, time.UTC)
	first := newCustomer("a@example.com", now)
	first.CustomerNumber = "cust-2024-05-1"
	require.NoError(t, repo.Create(ctx, first))

	second := newCustomer("b@example.com", now)
	second.CustomerNumber = "cust-2024-05-1"
	assert.ErrorIs(t, repo.Create(ctx, second), xerrors.ErrDuplicateEntry)
}
