package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls       int
	failures    int
	outcomes    map[string]int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about store operations
// and storage calls, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu      sync.Mutex
	stats   map[string]*operationStats
	backend map[string]*operationStats
	invalid map[string]int
	otel    *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:   make(map[string]*operationStats),
		backend: make(map[string]*operationStats),
		invalid: make(map[string]int),
		otel:    otel,
	}
}

// RecordStoreOperation counts one store operation with its outcome and latency.
func (r *Recorder) RecordStoreOperation(operation, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := ensure(r.stats, operation)
	stats.calls++
	stats.lastLatency = duration
	stats.outcomes[outcome]++
	if outcome == OutcomeError {
		stats.failures++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStoreOperation(operation, outcome, duration)
	}
}

// RecordValidationFailure counts each rejected field of a write.
func (r *Recorder) RecordValidationFailure(operation string, fields []string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	for _, f := range fields {
		r.invalid[f]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordValidationFailure(operation, fields)
	}
}

// RecordStorageCall tracks one load or save against a storage backend.
func (r *Recorder) RecordStorageCall(backend, operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	stats := ensure(r.backend, backend+"/"+operation)
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.failures++
		stats.outcomes[OutcomeError]++
	} else {
		stats.outcomes[OutcomeOK]++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordStorageCall(backend, operation, duration, err)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot returns a copy of the current stats for one operation.
type Snapshot struct {
	Calls       int
	Failures    int
	Outcomes    map[string]int
	LastLatency time.Duration
}

// Operation returns the stats recorded for a store operation.
func (r *Recorder) Operation(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotOf(r.stats[operation])
}

// StorageCalls returns the stats recorded for a backend operation.
func (r *Recorder) StorageCalls(backend, operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return snapshotOf(r.backend[backend+"/"+operation])
}

// ValidationFailures returns how often a field has been rejected.
func (r *Recorder) ValidationFailures(field string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invalid[field]
}

func ensure(m map[string]*operationStats, key string) *operationStats {
	stats, ok := m[key]
	if !ok {
		stats = &operationStats{outcomes: make(map[string]int)}
		m[key] = stats
	}
	return stats
}

func snapshotOf(stats *operationStats) Snapshot {
	if stats == nil {
		return Snapshot{Outcomes: map[string]int{}}
	}
	outcomes := make(map[string]int, len(stats.outcomes))
	for k, v := range stats.outcomes {
		outcomes[k] = v
	}
	return Snapshot{
		Calls:       stats.calls,
		Failures:    stats.failures,
		Outcomes:    outcomes,
		LastLatency: stats.lastLatency,
	}
}
