// Package request provides a fluent HTTP request builder with detailed
// timing metrics.
//
// Requests are assembled through chained configuration calls and dispatched
// through a Client:
//
//	client := request.NewClient(
//	    request.WithBaseURL("https://api.example.com"),
//	    request.WithTimeout(30*time.Second),
//	)
//
//	req := request.NewRequest("POST", "/users").
//	    WithBearerToken(token).
//	    WithJSON(map[string]string{"name": "value"})
//
//	resp, err := client.Do(context.Background(), req)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Body serialization is handled by the body package: WithJSON, WithForm,
// WithRaw, and WithMultipart cover the four content modes, and WithFile
// attaches file parts. A link in the chain that fails (a value that cannot
// be JSON-encoded, a malformed multipart part, a body kind that cannot carry
// attached files) records its error on the request; later body calls are
// no-ops and Client.Do returns the error without dispatching anything:
//
//	req := request.NewRequest("POST", "/upload").
//	    WithFile("doc", "a.txt", data).
//	    WithJSON(payload) // files attached: recorded as an error
//
//	if err := req.Err(); err != nil {
//	    // body must be url_encoded or multipart when files are attached
//	}
//
// Thread safety: a Client is safe for concurrent use; each Request belongs
// to a single chain and must not be shared across goroutines.
package request
