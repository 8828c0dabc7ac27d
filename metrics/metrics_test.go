// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/prometheus/client_model/go"
)

func reset() {
	mu.Lock()
	metrics = noopMetrics{}
	mu.Unlock()
}

func TestNoopMetrics(t *testing.T) {
	reset()

	Counter("count").Add(1)
	CounterVec("countVec", []string{"result"}).AddWithLabel(1, map[string]string{"anything": "goes"})
	Gauge("gauge").Set(3)
	HistogramVec("hist", []string{"result"}, nil).ObserveWithLabels(5, nil)

	assert.Nil(t, HTTPHandler())
	assert.IsType(t, noopMeter{}, Counter("count"))
}

func TestPromMetrics(t *testing.T) {
	reset()
	t.Cleanup(reset)

	lazyCounter := LazyLoadCounter("lazy_count")
	InitializePrometheusMetrics()
	InitializePrometheusMetrics()

	prom := current().(*prometheusMetrics)

	Counter("count").Add(2)
	Counter("count").Add(3)
	lazyCounter().Add(1)

	countVec := CounterVec("count_vec", []string{"result"})
	countVec.AddWithLabel(1, map[string]string{"result": "ok"})
	countVec.AddWithLabel(4, map[string]string{"result": "reverted"})

	gauge := Gauge("gauge")
	gauge.Set(10)
	gauge.Add(-3)

	hist := HistogramVec("hist", []string{"result"}, BucketDurationMs)
	hist.ObserveWithLabels(7, map[string]string{"result": "ok"})

	assert.Equal(t, float64(5), testutil.ToFloat64(prom.counter("count")))
	assert.Equal(t, float64(1), testutil.ToFloat64(prom.counter("lazy_count")))
	assert.Equal(t, float64(4), testutil.ToFloat64(countVec.(*promCountVecMeter).counter.WithLabelValues("reverted")))
	assert.Equal(t, float64(7), testutil.ToFloat64(gauge.(*promGaugeMeter).gauge))

	families, err := prom.registry.Gather()
	require.NoError(t, err)
	byName := make(map[string]*dto.MetricFamily)
	for _, mf := range families {
		byName[mf.GetName()] = mf
	}
	require.Contains(t, byName, "tape_hist")
	assert.Equal(t, dto.MetricType_HISTOGRAM, byName["tape_hist"].GetType())
	assert.Equal(t, float64(7), byName["tape_hist"].GetMetric()[0].GetHistogram().GetSampleSum())
	assert.Equal(t, uint64(1), byName["tape_hist"].GetMetric()[0].GetHistogram().GetSampleCount())

	srv := httptest.NewServer(HTTPHandler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `tape_count_vec{result="ok"} 1`)
	assert.Contains(t, string(body), `tape_hist_count{result="ok"} 1`)
}

func (o *prometheusMetrics) counter(name string) prometheus.Counter {
	m, _ := o.meters.Load(name)
	return m.(*promCountMeter).counter
}
