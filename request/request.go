package request

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"strings"

	"github.com/jjl/ivar/body"
	"github.com/jjl/ivar/mimetype"
)

// Request is an HTTP request being assembled by a fluent chain. Configuration
// methods return the request so calls can be chained; the first method that
// fails records its error and every later body-affecting link becomes a no-op,
// so a half-built request is never dispatched. Check Err (or the error from
// Build or Client.Do) before sending.
type Request struct {
	Method      string
	Path        string
	QueryParams url.Values
	Headers     map[string]string

	body  *body.Body
	files []body.File
	err   error
}

// NewRequest creates a request for the given method and path. The path is
// joined with the client's base URL at build time.
func NewRequest(method, path string) *Request {
	return &Request{
		Method:      method,
		Path:        path,
		QueryParams: make(url.Values),
		Headers:     make(map[string]string),
	}
}

// Err returns the first error recorded by the fluent chain, or nil.
func (r *Request) Err() error {
	return r.err
}

// Body returns the serialized body, or nil if none has been set.
func (r *Request) Body() *body.Body {
	return r.body
}

// Files returns the file parts attached with WithFile.
func (r *Request) Files() []body.File {
	return r.files
}

// WithHeader sets a header on the request.
func (r *Request) WithHeader(key, value string) *Request {
	r.Headers[key] = value
	return r
}

// WithHeaders sets multiple headers on the request.
func (r *Request) WithHeaders(headers map[string]string) *Request {
	for key, value := range headers {
		r.Headers[key] = value
	}
	return r
}

// WithQueryParam adds a query parameter to the request.
func (r *Request) WithQueryParam(key, value string) *Request {
	r.QueryParams.Add(key, value)
	return r
}

// WithQueryParams adds multiple query parameters to the request.
func (r *Request) WithQueryParams(params map[string]string) *Request {
	for key, value := range params {
		r.QueryParams.Add(key, value)
	}
	return r
}

// WithBasicAuth sets the Authorization header to HTTP basic credentials.
func (r *Request) WithBasicAuth(username, password string) *Request {
	return r.WithHeader("Authorization", BasicAuth(username, password))
}

// WithBearerToken sets the Authorization header to a bearer token.
func (r *Request) WithBearerToken(token string) *Request {
	return r.WithHeader("Authorization", BearerAuth(token))
}

// WithBody serializes content under the given kind and stores the result.
// On failure the request's body is left exactly as it was and the error is
// recorded for Err; the body key is overwritten on every successful call.
func (r *Request) WithBody(content any, kind body.Kind) *Request {
	if r.err != nil {
		return r
	}
	b, err := body.Build(content, kind, len(r.files) > 0)
	if err != nil {
		r.err = err
		return r
	}
	r.body = &b
	return r
}

// WithJSON sets a JSON body. Strings are taken as already-encoded JSON;
// anything else is marshaled.
func (r *Request) WithJSON(content any) *Request {
	return r.WithBody(content, body.KindJSON)
}

// WithForm sets a form URL-encoded body from a string map, url.Values, or an
// already-encoded string.
func (r *Request) WithForm(content any) *Request {
	return r.WithBody(content, body.KindURLEncoded)
}

// WithRaw sets an opaque string payload whose content type is resolved from
// the extension token, falling back to a generic binary type.
func (r *Request) WithRaw(payload, extension string) *Request {
	return r.WithBody(payload, body.Kind(extension))
}

// WithMultipart sets a multipart body from the given parts.
func (r *Request) WithMultipart(parts ...body.Part) *Request {
	return r.WithBody(parts, body.KindMultipart)
}

// WithFile attaches a file part carrying inline content. Files and bodies
// only combine as url_encoded or multipart, in either order: attaching a
// file when a body of any other kind is already set records the same error
// as declaring such a body with files attached.
func (r *Request) WithFile(field, filename string, content []byte) *Request {
	return r.attachFile(body.File{
		Filename: filename,
		Extra:    map[string]any{"name": field, "content": content},
	})
}

// WithFileFromPath attaches a file part whose content is read from path when
// the request is built.
func (r *Request) WithFileFromPath(field, path string) *Request {
	return r.attachFile(body.File{
		Filename: path,
		Extra:    map[string]any{"name": field, "path": path},
	})
}

func (r *Request) attachFile(file body.File) *Request {
	if r.err != nil {
		return r
	}
	if r.body != nil && r.body.Kind != body.KindURLEncoded && r.body.Kind != body.KindMultipart {
		r.err = body.ErrBodyKindWithFiles
		return r
	}
	r.files = append(r.files, file)
	return r
}

// Build constructs an http.Request from the assembled configuration. It
// returns the chain's recorded error, if any, before doing anything else.
//
// This is the transport edge: single-part bodies are written out with their
// content-type header, and multipart bodies get their boundary and
// per-part headers generated here. When files are attached, the request is
// always encoded as multipart/form-data; a url_encoded body contributes its
// pairs as ordinary form fields alongside the files.
func (r *Request) Build(baseURL string) (*http.Request, error) {
	if r.err != nil {
		return nil, r.err
	}

	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if reqURL.Path == "" {
		reqURL.Path = r.Path
	} else {
		reqURL.Path = strings.TrimRight(reqURL.Path, "/") + "/" + strings.TrimLeft(r.Path, "/")
	}

	query := reqURL.Query()
	for key, values := range r.QueryParams {
		for _, value := range values {
			query.Add(key, value)
		}
	}
	reqURL.RawQuery = query.Encode()

	bodyReader, contentType, err := r.buildBody()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(r.Method, reqURL.String(), bodyReader)
	if err != nil {
		return nil, err
	}

	if contentType != "" && r.Headers["Content-Type"] == "" {
		req.Header.Set("Content-Type", contentType)
	}
	for key, value := range r.Headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func (r *Request) buildBody() (io.Reader, string, error) {
	if len(r.files) > 0 || (r.body != nil && r.body.IsMultipart()) {
		return r.buildMultipartBody()
	}
	if r.body == nil {
		return nil, "", nil
	}
	return strings.NewReader(r.body.Payload), r.body.ContentType, nil
}

func (r *Request) buildMultipartBody() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if r.body != nil {
		switch r.body.Kind {
		case body.KindMultipart:
			for _, part := range r.body.Parts {
				if err := writePart(w, part); err != nil {
					return nil, "", err
				}
			}
		case body.KindURLEncoded:
			// Form pairs become ordinary fields next to the attached files.
			form, err := url.ParseQuery(r.body.Payload)
			if err != nil {
				return nil, "", fmt.Errorf("parsing form body for multipart encoding: %w", err)
			}
			for key, values := range form {
				for _, value := range values {
					if err := w.WriteField(key, value); err != nil {
						return nil, "", err
					}
				}
			}
		}
	}

	for _, file := range r.files {
		if err := writePart(w, file); err != nil {
			return nil, "", err
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writePart(w *multipart.Writer, part body.Part) error {
	switch p := part.(type) {
	case body.Field:
		return w.WriteField(p.Name, p.Data)
	case body.File:
		return writeFilePart(w, p)
	default:
		return fmt.Errorf("unsupported part type %T", part)
	}
}

// writeFilePart emits one file part. The field name, inline content, source
// path, and content type come from the part's Extra mapping; extra headers
// are written in order after the generated ones.
func writeFilePart(w *multipart.Writer, file body.File) error {
	field := "file"
	if name, ok := file.Extra["name"].(string); ok && name != "" {
		field = name
	}

	content, err := filePartContent(file)
	if err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, file.Filename))
	header.Set("Content-Type", filePartContentType(file))
	for _, h := range file.Headers {
		header.Add(h.Name, h.Value)
	}

	part, err := w.CreatePart(header)
	if err != nil {
		return err
	}
	_, err = part.Write(content)
	return err
}

func filePartContent(file body.File) ([]byte, error) {
	switch content := file.Extra["content"].(type) {
	case []byte:
		return content, nil
	case string:
		return []byte(content), nil
	}
	if path, ok := file.Extra["path"].(string); ok {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading file part %q: %w", file.Filename, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("file part %q has neither content nor path", file.Filename)
}

func filePartContentType(file body.File) string {
	if ct, ok := file.Extra["content_type"].(string); ok && ct != "" {
		return ct
	}
	ext := file.Filename
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}
	return mimetype.ByExtension(ext)
}
