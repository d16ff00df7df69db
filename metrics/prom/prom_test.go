package prom

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/IvanBrykalov/hubcache/cache"
)

func TestAdapter_ExportsCacheSignals(t *testing.T) {
	r := require.New(t)
	reg := prometheus.NewPedanticRegistry()
	m := New(reg, "hub", "test", prometheus.Labels{"cache": "clients"})

	errLoad := errors.New("load failed")
	c := cache.New[string, int](cache.Options[string, int]{
		MaxSize: 1,
		Metrics: m,
		Loader: func(_ context.Context, k string) (int, error) {
			if k == "bad" {
				return 0, errLoad
			}
			return len(k), nil
		},
	})
	t.Cleanup(func() { _ = c.Close() })

	c.Set("a", 1)
	c.Get("a")
	c.Get("missing")
	c.Set("b", 2) // evicts a

	v, err := c.GetOrLoad(context.Background(), "abc") // miss + load, evicts b
	r.NoError(err)
	r.Equal(3, v)
	_, err = c.GetOrLoad(context.Background(), "bad")
	r.ErrorIs(err, errLoad)

	r.Equal(1.0, testutil.ToFloat64(m.hits))
	r.Equal(3.0, testutil.ToFloat64(m.misses))
	r.Equal(2.0, testutil.ToFloat64(m.evicts.WithLabelValues("capacity")))
	r.Equal(0.0, testutil.ToFloat64(m.evicts.WithLabelValues("ttl")))
	r.Equal(1.0, testutil.ToFloat64(m.entries))
	r.Equal(1.0, testutil.ToFloat64(m.loadErrors))

	families, err := reg.Gather()
	r.NoError(err)
	r.Len(families, 6)
	for _, mf := range families {
		if mf.GetName() == "hub_test_load_duration_seconds" {
			r.Equal(uint64(2), mf.GetMetric()[0].GetHistogram().GetSampleCount())
		}
	}
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg, "hub", "dup", nil)
	require.Panics(t, func() { New(reg, "hub", "dup", nil) })
}
