package request

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/jjl/ivar/pkg/jsonpath"
)

// TimingInfo stores the time spent in each phase of a request.
type TimingInfo struct {
	// StartTime is when the request started.
	StartTime time.Time

	// DNSLookupTime is the time spent resolving the host.
	DNSLookupTime time.Duration

	// TCPConnectTime is the time spent establishing the TCP connection.
	TCPConnectTime time.Duration

	// TLSHandshakeTime is the time spent in the TLS handshake, for HTTPS.
	TLSHandshakeTime time.Duration

	// TimeToFirstByte is the time from the end of the last setup phase to
	// the first response byte.
	TimeToFirstByte time.Duration

	// ContentTransferTime is the time spent reading the response body.
	ContentTransferTime time.Duration

	// TotalTime is the time from request start to completion.
	TotalTime time.Duration
}

// Response is an HTTP response with timing information.
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       io.ReadCloser

	// Timing contains per-phase timing captured during the exchange.
	Timing TimingInfo

	rawBody []byte
	parsed  bool
}

// GetBody returns the response body as bytes, reading it at most once.
func (r *Response) GetBody() ([]byte, error) {
	if r.parsed {
		return r.rawBody, nil
	}

	defer r.Body.Close()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	r.rawBody = data
	r.parsed = true
	return data, nil
}

// GetBodyAsString returns the response body as a string.
func (r *Response) GetBodyAsString() (string, error) {
	data, err := r.GetBody()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// GetBodyAsJSON unmarshals the response body into v.
func (r *Response) GetBodyAsJSON(v any) error {
	data, err := r.GetBody()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// GetBodyPath extracts a value from a JSON response body using a JSONPath
// expression such as "$.users[0].name".
func (r *Response) GetBodyPath(path string) (string, error) {
	data, err := r.GetBodyAsString()
	if err != nil {
		return "", err
	}
	return jsonpath.Extract(data, path)
}

// GetHeader returns the value of the named response header.
func (r *Response) GetHeader(key string) string {
	return r.Headers.Get(key)
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsRedirect reports whether the status code is in the 3xx range.
func (r *Response) IsRedirect() bool {
	return r.StatusCode >= 300 && r.StatusCode < 400
}

// IsClientError reports whether the status code is in the 4xx range.
func (r *Response) IsClientError() bool {
	return r.StatusCode >= 400 && r.StatusCode < 500
}

// IsServerError reports whether the status code is in the 5xx range.
func (r *Response) IsServerError() bool {
	return r.StatusCode >= 500 && r.StatusCode < 600
}

// IsError reports whether the status code is in the 4xx or 5xx range.
func (r *Response) IsError() bool {
	return r.IsClientError() || r.IsServerError()
}

// GetResponseTimeMillis returns the total exchange time in milliseconds.
func (r *Response) GetResponseTimeMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}

// GetDNSLookupTimeMillis returns the DNS lookup time in milliseconds.
func (r *Response) GetDNSLookupTimeMillis() int64 {
	return r.Timing.DNSLookupTime.Milliseconds()
}

// GetTCPConnectTimeMillis returns the TCP connection time in milliseconds.
func (r *Response) GetTCPConnectTimeMillis() int64 {
	return r.Timing.TCPConnectTime.Milliseconds()
}

// GetTLSHandshakeTimeMillis returns the TLS handshake time in milliseconds.
func (r *Response) GetTLSHandshakeTimeMillis() int64 {
	return r.Timing.TLSHandshakeTime.Milliseconds()
}

// GetTimeToFirstByteMillis returns the time to first byte in milliseconds.
func (r *Response) GetTimeToFirstByteMillis() int64 {
	return r.Timing.TimeToFirstByte.Milliseconds()
}

// GetContentTransferTimeMillis returns the body read time in milliseconds.
func (r *Response) GetContentTransferTimeMillis() int64 {
	return r.Timing.ContentTransferTime.Milliseconds()
}

// GetTotalTimeMillis returns the total time in milliseconds.
func (r *Response) GetTotalTimeMillis() int64 {
	return r.Timing.TotalTime.Milliseconds()
}
