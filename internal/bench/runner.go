package bench

import (
	"context"
	"sync"
	"time"

	"github.com/jjl/ivar/request"
)

// Options controls a bench run.
type Options struct {
	// Requests is the total number of requests to issue.
	Requests int

	// Concurrency is the number of workers issuing them.
	Concurrency int
}

// NewRequest builds a fresh request for each iteration; requests are
// single-chain values and must not be shared between workers.
type NewRequest func() *request.Request

// Run issues opts.Requests requests through client with opts.Concurrency
// workers and returns the aggregated summary. A response counts as a
// success when it arrived with a status below 400. Run stops dispatching
// when ctx is canceled.
func Run(ctx context.Context, client *request.Client, newReq NewRequest, opts Options) Summary {
	if opts.Requests <= 0 {
		opts.Requests = 1
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}

	recorder := NewRecorder()
	jobs := make(chan struct{})
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < opts.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range jobs {
				began := time.Now()
				resp, err := client.Do(ctx, newReq())
				latency := time.Since(began)
				recorder.Record(latency, err == nil && resp != nil && !resp.IsError())
			}
		}()
	}

dispatch:
	for i := 0; i < opts.Requests; i++ {
		select {
		case <-ctx.Done():
			break dispatch
		case jobs <- struct{}{}:
		}
	}
	close(jobs)
	wg.Wait()

	return recorder.Summarize(time.Since(start))
}
