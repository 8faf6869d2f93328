package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveSlotQuery(t *testing.T) {
	m := NewWithRegisterer("salon-test", prometheus.NewRegistry())

	m.ObserveSlotQuery("ok", "MON", 3)
	m.ObserveSlotQuery("ok", "MON", 0)
	m.ObserveSlotQuery("not_found", "", 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SlotQueriesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotQueriesTotal.WithLabelValues("not_found")))
}

func TestObserveSlotQuery_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveSlotQuery("ok", "MON", 1) })
}
