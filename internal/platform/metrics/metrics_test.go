package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector_Registers(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	require.NotNil(t, c)

	c.Observe("get_user", OutcomeOK, 5*time.Millisecond)

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	assert.ElementsMatch(t, []string{
		"auth_adapter_operations_total",
		"auth_adapter_operation_duration_seconds",
	}, names)
}

func TestNewCollector_DoubleRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewCollector(reg)

	assert.Panics(t, func() { NewCollector(reg) })
}

func TestCollector_Observe(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.Observe("get_user", OutcomeOK, time.Millisecond)
	c.Observe("get_user", OutcomeOK, time.Millisecond)
	c.Observe("get_user", OutcomeNotFound, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.operations.WithLabelValues("get_user", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.operations.WithLabelValues("get_user", OutcomeNotFound)))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.operations.WithLabelValues("get_user", OutcomeError)))
	assert.Equal(t, 1, testutil.CollectAndCount(c.duration, "auth_adapter_operation_duration_seconds"))
}
