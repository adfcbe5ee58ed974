// Package output renders requests and responses for the terminal.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/jjl/ivar/body"
	"github.com/jjl/ivar/request"
)

// Formatter renders requests and responses as text.
type Formatter struct {
	Verbose bool
	scheme  *ColorScheme
}

// NewFormatter creates a formatter. Color is disabled when noColor is set or
// when stdout is not a terminal.
func NewFormatter(verbose, noColor bool) *Formatter {
	scheme := DefaultColorScheme()
	if noColor || !IsTerminal(os.Stdout) {
		scheme = NoColorScheme()
	}
	return &Formatter{Verbose: verbose, scheme: scheme}
}

// FormatRequest renders an assembled request for display.
func (f *Formatter) FormatRequest(req *request.Request, baseURL string) string {
	var buf strings.Builder

	fullURL := baseURL
	if !strings.HasSuffix(baseURL, "/") && !strings.HasPrefix(req.Path, "/") {
		fullURL += "/"
	}
	fullURL += req.Path
	if len(req.QueryParams) > 0 {
		fullURL += "?" + req.QueryParams.Encode()
	}

	buf.WriteString(fmt.Sprintf("▶ REQUEST: %s %s\n",
		f.scheme.Method.Sprint(req.Method),
		f.scheme.URL.Sprint(fullURL)))

	if f.Verbose || len(req.Headers) > 0 {
		buf.WriteString("  Headers:\n")
		for key, value := range req.Headers {
			buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
		}
	}

	f.formatRequestBody(&buf, req)
	return buf.String()
}

func (f *Formatter) formatRequestBody(buf *strings.Builder, req *request.Request) {
	b := req.Body()
	if b == nil && len(req.Files()) == 0 {
		return
	}

	if b != nil && !b.IsMultipart() {
		buf.WriteString("  Body: ")
		if b.ContentType == "application/json" {
			buf.WriteString(formatJSONString(b.Payload))
		} else {
			buf.WriteString(b.Payload)
		}
		buf.WriteString("\n")
		return
	}

	buf.WriteString("  Parts:\n")
	if b != nil {
		for _, part := range b.Parts {
			switch p := part.(type) {
			case body.Field:
				buf.WriteString(fmt.Sprintf("    field %s=%s\n", p.Name, p.Data))
			case body.File:
				buf.WriteString(fmt.Sprintf("    file  %s\n", p.Filename))
			}
		}
	}
	for _, file := range req.Files() {
		buf.WriteString(fmt.Sprintf("    file  %s\n", file.Filename))
	}
}

// FormatResponse renders a response, including the timing breakdown when
// verbose.
func (f *Formatter) FormatResponse(resp *request.Response) string {
	var buf strings.Builder

	statusColor := f.scheme.StatusError
	if resp.IsSuccess() {
		statusColor = f.scheme.StatusOK
	} else if resp.IsRedirect() {
		statusColor = f.scheme.StatusWarn
	}

	buf.WriteString(fmt.Sprintf("◀ RESPONSE: %s (%dms)\n",
		statusColor.Sprint(resp.Status),
		resp.GetResponseTimeMillis()))

	if f.Verbose {
		buf.WriteString("  Timing:\n")
		buf.WriteString(fmt.Sprintf("    DNS Lookup:         %dms\n", resp.GetDNSLookupTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TCP Connection:     %dms\n", resp.GetTCPConnectTimeMillis()))
		buf.WriteString(fmt.Sprintf("    TLS Handshake:      %dms\n", resp.GetTLSHandshakeTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Time to First Byte: %dms\n", resp.GetTimeToFirstByteMillis()))
		buf.WriteString(fmt.Sprintf("    Content Transfer:   %dms\n", resp.GetContentTransferTimeMillis()))
		buf.WriteString(fmt.Sprintf("    Total:              %dms\n", resp.GetTotalTimeMillis()))

		buf.WriteString("  Headers:\n")
		for key, values := range resp.Headers {
			for _, value := range values {
				buf.WriteString(fmt.Sprintf("    %s: %s\n", f.scheme.HeaderKey.Sprint(key), value))
			}
		}
	}

	if bodyStr, err := resp.GetBodyAsString(); err == nil && bodyStr != "" {
		buf.WriteString("  Body:\n")
		buf.WriteString(formatJSONString(bodyStr))
		buf.WriteString("\n")
	}

	return buf.String()
}

// formatJSONString pretty-prints JSON input and passes anything else
// through unchanged.
func formatJSONString(s string) string {
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, []byte(s), "  ", "  "); err != nil {
		return s
	}
	return pretty.String()
}
