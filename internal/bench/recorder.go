// Package bench issues repeated requests and aggregates their latencies
// into an HDR histogram.
package bench

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Recorder aggregates request outcomes. Latencies go into an HDR histogram
// (1µs to 1 minute, 3 significant figures) for accurate percentiles;
// counters are lock-free so workers never contend on the success path.
type Recorder struct {
	hist   *hdrhistogram.Histogram
	histMu sync.Mutex

	total     atomic.Int64
	successes atomic.Int64
	failures  atomic.Int64
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		hist: hdrhistogram.New(1, time.Minute.Microseconds(), 3),
	}
}

// Record adds one request outcome. Failed requests count toward totals but
// not latency percentiles.
func (r *Recorder) Record(latency time.Duration, success bool) {
	r.total.Add(1)
	if !success {
		r.failures.Add(1)
		return
	}
	r.successes.Add(1)

	r.histMu.Lock()
	r.hist.RecordValue(latency.Microseconds())
	r.histMu.Unlock()
}

// Summary is a point-in-time aggregation of recorded outcomes.
type Summary struct {
	Total     int64
	Successes int64
	Failures  int64

	Min     time.Duration
	Mean    time.Duration
	P50     time.Duration
	P90     time.Duration
	P99     time.Duration
	Max     time.Duration
	Elapsed time.Duration
}

// Summarize computes percentiles over everything recorded so far.
func (r *Recorder) Summarize(elapsed time.Duration) Summary {
	r.histMu.Lock()
	defer r.histMu.Unlock()

	micros := func(v int64) time.Duration {
		return time.Duration(v) * time.Microsecond
	}

	return Summary{
		Total:     r.total.Load(),
		Successes: r.successes.Load(),
		Failures:  r.failures.Load(),
		Min:       micros(r.hist.Min()),
		Mean:      time.Duration(r.hist.Mean()) * time.Microsecond,
		P50:       micros(r.hist.ValueAtQuantile(50)),
		P90:       micros(r.hist.ValueAtQuantile(90)),
		P99:       micros(r.hist.ValueAtQuantile(99)),
		Max:       micros(r.hist.Max()),
		Elapsed:   elapsed,
	}
}
