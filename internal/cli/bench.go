package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjl/ivar/internal/bench"
	"github.com/jjl/ivar/request"
)

var benchCmd = &cobra.Command{
	Use:   "bench URL",
	Short: "Issue repeated GET requests and report latency percentiles",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		requests, _ := cmd.Flags().GetInt("requests")
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		headers, _ := cmd.Flags().GetStringArray("header")

		baseURL, path, queryParams := parseURL(args[0])

		client := request.NewClient(
			request.WithBaseURL(baseURL),
			request.WithTimeout(timeout),
		)

		summary := bench.Run(context.Background(), client, func() *request.Request {
			req := request.NewRequest("GET", path)
			for key, values := range queryParams {
				for _, value := range values {
					req.WithQueryParam(key, value)
				}
			}
			for _, header := range headers {
				if key, value, found := strings.Cut(header, ":"); found {
					req.WithHeader(strings.TrimSpace(key), strings.TrimSpace(value))
				}
			}
			return req
		}, bench.Options{Requests: requests, Concurrency: concurrency})

		fmt.Print(formatSummary(summary))
	},
}

func init() {
	benchCmd.Flags().IntP("requests", "n", 100, "Total number of requests to issue")
	benchCmd.Flags().IntP("concurrency", "c", 10, "Number of concurrent workers")
	benchCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Per-request timeout")
	benchCmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
}

func formatSummary(s bench.Summary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Requests:  %d (%d ok, %d failed) in %v\n", s.Total, s.Successes, s.Failures, s.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(&sb, "Latency:   min %v  mean %v  max %v\n", s.Min, s.Mean, s.Max)
	fmt.Fprintf(&sb, "Quantiles: p50 %v  p90 %v  p99 %v\n", s.P50, s.P90, s.P99)
	return sb.String()
}
