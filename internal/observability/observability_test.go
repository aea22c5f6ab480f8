package observability

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegisters(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)

	m.Engine.RecordRun("success")
	m.Engine.RecordFootprintBuilt()
	m.Engine.RecordFootprintFallback()
	m.Engine.RecordAssignments(12, 3)
	m.Engine.RecordCheckResult("OK")
	m.Engine.RecordStageDuration("total", 0.042)

	families, err := m.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["schoolcheck_runs_total"])
	assert.True(t, names["schoolcheck_footprints_built_total"])
	assert.True(t, names["schoolcheck_check_results_total"])
	assert.True(t, names["schoolcheck_run_duration_seconds"])
}

func TestEngineMetricsConcurrentRecording(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				m.Engine.RecordFootprintBuilt()
				m.Engine.RecordCheckResult("NOT_OK")
			}
		}()
	}
	wg.Wait()

	families, err := m.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "schoolcheck_footprints_built_total" {
			require.Len(t, f.GetMetric(), 1)
			assert.InDelta(t, 800.0, f.GetMetric()[0].GetCounter().GetValue(), 0)
		}
	}
}
