package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersOnGivenRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New("tourdesk", reg)

	m.CustomersCreated.Inc()
	m.LoginAttempts.WithLabelValues("success").Inc()
	m.LoginAttempts.WithLabelValues("failure").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.CustomersCreated))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")))

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["tourdesk_customers_created_total"])
	assert.True(t, names["tourdesk_login_attempts_total"])
}

func TestNewNopIsolated(t *testing.T) {
	a := NewNop()
	b := NewNop()
	a.BookingsCreated.Inc()
	assert.Equal(t, 0.0, testutil.ToFloat64(b.BookingsCreated))
}
