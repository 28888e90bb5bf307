package observability

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// counterValue sums the counter samples of family name whose labels include want.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather error: %v", err)
	}
	total := 0.0
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
	metrics:
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			for k, v := range want {
				if labels[k] != v {
					continue metrics
				}
			}
			total += m.GetCounter().GetValue()
		}
	}
	return total
}

func TestPrometheusHooks(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	h, err := NewPrometheusHooks(reg)
	if err != nil {
		t.Fatalf("NewPrometheusHooks error: %v", err)
	}

	h.OnLoadComplete(ctx, "a.txt", 9, 12, time.Millisecond, nil)
	h.OnLoadComplete(ctx, "b.txt", 0, 0, 0, errors.New("malformed"))
	h.OnSearchComplete(ctx, "astar", 5, true, time.Millisecond, nil)
	h.OnSearchComplete(ctx, "astar", 9, false, time.Millisecond, nil)
	h.OnSearchComplete(ctx, "bellman-ford", 0, false, 0, errors.New("negative cycle"))
	h.OnCacheHit(ctx, "search")
	h.OnCacheMiss(ctx, "search")
	h.OnCacheSet(ctx, "search", 100)
	h.OnCacheSet(ctx, "search", 50)

	tests := []struct {
		name   string
		metric string
		labels map[string]string
		want   float64
	}{
		{"load ok", "gridpath_loads_total", map[string]string{"outcome": "ok"}, 1},
		{"load error", "gridpath_loads_total", map[string]string{"outcome": "error"}, 1},
		{"astar ok", "gridpath_searches_total", map[string]string{"algorithm": "astar", "outcome": "ok"}, 1},
		{"astar unreachable", "gridpath_searches_total", map[string]string{"algorithm": "astar", "outcome": "unreachable"}, 1},
		{"bf error", "gridpath_searches_total", map[string]string{"algorithm": "bellman-ford", "outcome": "error"}, 1},
		{"cache hit", "gridpath_cache_events_total", map[string]string{"event": "hit"}, 1},
		{"cache set", "gridpath_cache_events_total", map[string]string{"event": "set"}, 2},
		{"cache bytes", "gridpath_cache_written_bytes_total", nil, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := counterValue(t, reg, tt.metric, tt.labels); got != tt.want {
				t.Errorf("%s%v = %v, want %v", tt.metric, tt.labels, got, tt.want)
			}
		})
	}
}

func TestPrometheusHooksDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := NewPrometheusHooks(reg); err != nil {
		t.Fatal(err)
	}
	if _, err := NewPrometheusHooks(reg); err == nil {
		t.Error("second registration on the same registry should fail")
	}
}

func TestPrometheusTextfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	h, err := NewPrometheusHooks(reg)
	if err != nil {
		t.Fatal(err)
	}
	h.OnSearchComplete(context.Background(), "astar", 3, true, time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		t.Fatalf("WriteToTextfile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `gridpath_searches_total{algorithm="astar",outcome="ok"} 1`) {
		t.Errorf("metrics file missing search counter:\n%s", data)
	}
}
