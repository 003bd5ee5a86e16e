package observability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMetricsSnapshot(t *testing.T) {
	t.Parallel()

	m := NewMetrics()
	m.RecordRequest("/employees", "GET", 200, 10*time.Millisecond)
	m.RecordRequest("/employees", "GET", 200, 30*time.Millisecond)
	m.RecordError("/assignments", "POST", "DUPLICATE_ASSIGNMENT")

	snap := m.Snapshot()
	require.EqualValues(t, 2, snap.Requests["/employees|GET|200"])
	require.EqualValues(t, 20, snap.AvgLatencyMS["/employees|GET|200"])
	require.EqualValues(t, 1, snap.Errors["/assignments|POST|DUPLICATE_ASSIGNMENT"])

	snap.Requests["/employees|GET|200"] = 99
	require.EqualValues(t, 2, m.Snapshot().Requests["/employees|GET|200"])
}

func TestMetricsNilSafe(t *testing.T) {
	t.Parallel()

	var m *Metrics
	m.RecordRequest("/", "GET", 200, time.Millisecond)
	m.RecordError("/", "GET", "X")
	require.Empty(t, m.Snapshot().Requests)
}
