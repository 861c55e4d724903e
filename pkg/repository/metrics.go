package repository

import (
	"expvar"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// MetricsRecorder receives per-operation timing and outcome counters from
// an instrumented store. Implementations must be safe for concurrent use.
type MetricsRecorder interface {
	RecordDuration(operation string, seconds float64)
	RecordResult(operation, status string)
}

var expvarSeq uint64

// ExpvarMetricsRecorder publishes aggregate timing and result counters via
// expvar, for deployments that prefer process-local metrics without
// external dependencies. Totals are grouped per operation; durations
// accumulate in seconds, matching the recording interface.
type ExpvarMetricsRecorder struct {
	name string
	mu   sync.Mutex
	ops  map[string]*operationTotals
}

type operationTotals struct {
	seconds  float64
	statuses map[string]int64
}

// OperationMetrics is one operation's aggregated totals.
type OperationMetrics struct {
	DurationSeconds float64          `json:"duration_seconds_total"`
	Statuses        map[string]int64 `json:"statuses"`
}

// ExpvarMetricsSnapshot captures a read-only view of the recorded metrics.
type ExpvarMetricsSnapshot struct {
	Operations map[string]OperationMetrics `json:"operations"`
	RecordedAt time.Time                   `json:"recorded_at"`
}

// NewExpvarMetricsRecorder constructs an expvar-backed recorder and
// publishes it under the supplied name. When name is empty, a unique
// identifier is generated.
func NewExpvarMetricsRecorder(name string) *ExpvarMetricsRecorder {
	if name == "" {
		id := atomic.AddUint64(&expvarSeq, 1)
		name = fmt.Sprintf("repository_metrics_%d", id)
	}
	rec := &ExpvarMetricsRecorder{
		name: name,
		ops:  make(map[string]*operationTotals),
	}
	expvar.Publish(name, expvar.Func(func() any {
		return rec.Snapshot()
	}))
	return rec
}

// Name returns the expvar export name associated with the recorder.
func (r *ExpvarMetricsRecorder) Name() string {
	return r.name
}

func (r *ExpvarMetricsRecorder) totals(operation string) *operationTotals {
	t, ok := r.ops[operation]
	if !ok {
		t = &operationTotals{statuses: make(map[string]int64)}
		r.ops[operation] = t
	}
	return t
}

// RecordDuration accumulates the elapsed time for an operation.
func (r *ExpvarMetricsRecorder) RecordDuration(operation string, seconds float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals(operation).seconds += seconds
}

// RecordResult increments the counter for an operation/status pair.
func (r *ExpvarMetricsRecorder) RecordResult(operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.totals(operation).statuses[status]++
}

// Snapshot returns an immutable copy of the aggregated metrics.
func (r *ExpvarMetricsRecorder) Snapshot() ExpvarMetricsSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	operations := make(map[string]OperationMetrics, len(r.ops))
	for op, totals := range r.ops {
		statuses := make(map[string]int64, len(totals.statuses))
		for status, count := range totals.statuses {
			statuses[status] = count
		}
		operations[op] = OperationMetrics{
			DurationSeconds: totals.seconds,
			Statuses:        statuses,
		}
	}

	return ExpvarMetricsSnapshot{
		Operations: operations,
		RecordedAt: time.Now().UTC(),
	}
}
