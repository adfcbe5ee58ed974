package bench

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jjl/ivar/request"
)

func TestRecorder(t *testing.T) {
	recorder := NewRecorder()

	recorder.Record(10*time.Millisecond, true)
	recorder.Record(20*time.Millisecond, true)
	recorder.Record(30*time.Millisecond, true)
	recorder.Record(5*time.Millisecond, false)

	summary := recorder.Summarize(time.Second)

	assert.Equal(t, int64(4), summary.Total)
	assert.Equal(t, int64(3), summary.Successes)
	assert.Equal(t, int64(1), summary.Failures)

	// Failures stay out of the latency distribution.
	assert.GreaterOrEqual(t, summary.Min, 9*time.Millisecond)
	assert.GreaterOrEqual(t, summary.Max, summary.P50)
	assert.GreaterOrEqual(t, summary.P99, summary.P50)
}

func TestRecorder_ConcurrentRecording(t *testing.T) {
	recorder := NewRecorder()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				recorder.Record(time.Millisecond, true)
			}
		}()
	}
	wg.Wait()

	summary := recorder.Summarize(time.Second)
	assert.Equal(t, int64(800), summary.Total)
	assert.Equal(t, int64(800), summary.Successes)
}

func TestRun(t *testing.T) {
	var hits int64
	var mu sync.Mutex
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := request.NewClient(request.WithBaseURL(server.URL))
	summary := Run(context.Background(), client, func() *request.Request {
		return request.NewRequest("GET", "/ping")
	}, Options{Requests: 20, Concurrency: 4})

	require.Equal(t, int64(20), summary.Total)
	assert.Equal(t, int64(20), summary.Successes)
	assert.Equal(t, int64(0), summary.Failures)

	mu.Lock()
	assert.Equal(t, int64(20), hits)
	mu.Unlock()
}

func TestRun_CountsErrorStatusesAsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := request.NewClient(request.WithBaseURL(server.URL))
	summary := Run(context.Background(), client, func() *request.Request {
		return request.NewRequest("GET", "/boom")
	}, Options{Requests: 5, Concurrency: 2})

	require.Equal(t, int64(5), summary.Total)
	assert.Equal(t, int64(5), summary.Failures)
}
