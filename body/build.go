// Package body serializes request content into a wire-ready body with a
// matching content-type, across four content modes: JSON, form URL-encoded,
// multipart, and raw extension-typed payloads.
//
// Build is a pure function from (content, kind, files-attached) to a Body
// value or an error. It performs no I/O and holds no state, so it is safe to
// call from any number of concurrent request chains. Errors are plain values
// for the fluent layer to inspect; a failed Build leaves the caller's request
// exactly as it was.
package body

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/jjl/ivar/mimetype"
)

// Kind declares how content is serialized. The three named kinds have
// dedicated handling; any other value is treated as a file-extension token
// and resolved against the MIME table.
type Kind string

const (
	KindJSON       Kind = "json"
	KindURLEncoded Kind = "url_encoded"
	KindMultipart  Kind = "multipart"
)

// The form content type is a fixed literal, not an extension-table lookup.
const urlEncodedContentType = "application/x-www-form-urlencoded"

// Body is a serialized request body. Single-part bodies carry a payload and
// content type; multipart bodies carry parts and leave ContentType empty,
// since the boundary (and with it the full content-type value) is generated
// at the transport edge.
type Body struct {
	Kind        Kind
	ContentType string
	Payload     string
	Parts       []Part
}

// IsMultipart reports whether the body is a sequence of parts rather than a
// single serialized payload.
func (b Body) IsMultipart() bool {
	return b.Kind == KindMultipart
}

// Build serializes content according to kind. filesAttached tells the
// builder whether the surrounding request already carries file parts, which
// restricts the legal kinds to url_encoded and multipart.
func Build(content any, kind Kind, filesAttached bool) (Body, error) {
	if filesAttached && kind != KindURLEncoded && kind != KindMultipart {
		return Body{}, ErrBodyKindWithFiles
	}

	switch kind {
	case KindMultipart:
		return buildMultipart(content)
	case KindURLEncoded:
		return buildURLEncoded(content)
	case KindJSON:
		payload, ok := content.(string)
		if !ok {
			encoded, err := json.Marshal(content)
			if err != nil {
				// The encoder's error is the diagnostic; pass it through.
				return Body{}, err
			}
			payload = string(encoded)
		}
		return buildRaw(payload, kind)
	default:
		payload, ok := content.(string)
		if !ok {
			return Body{}, &ContentTypeError{Kind: kind, Content: content}
		}
		return buildRaw(payload, kind)
	}
}

// buildRaw stores an already-serialized payload under the declared kind,
// resolving the content type by extension lookup. Unknown tokens resolve to
// a generic binary type rather than failing.
func buildRaw(payload string, kind Kind) (Body, error) {
	return Body{
		Kind:        kind,
		ContentType: mimetype.ByExtension(string(kind)),
		Payload:     payload,
	}, nil
}

func buildURLEncoded(content any) (Body, error) {
	var payload string
	switch c := content.(type) {
	case string:
		payload = c
	case url.Values:
		payload = c.Encode()
	case map[string]string:
		form := url.Values{}
		for k, v := range c {
			form.Set(k, v)
		}
		payload = form.Encode()
	case map[string]any:
		form := url.Values{}
		for k, v := range c {
			form.Set(k, fmt.Sprint(v))
		}
		payload = form.Encode()
	default:
		return Body{}, &ContentTypeError{Kind: KindURLEncoded, Content: content}
	}
	return Body{
		Kind:        KindURLEncoded,
		ContentType: urlEncodedContentType,
		Payload:     payload,
	}, nil
}

// buildMultipart validates every element before storing any. Invalid
// elements are collected and reported together so the caller sees all
// malformed parts in one pass.
func buildMultipart(content any) (Body, error) {
	specs, err := partSpecs(content)
	if err != nil {
		return Body{}, err
	}

	parts := make([]Part, 0, len(specs))
	var invalid []InvalidPart
	for _, spec := range specs {
		part, ok := validatePart(spec)
		if !ok {
			invalid = append(invalid, InvalidPart{Value: spec, Guidance: PartGuidance})
			continue
		}
		parts = append(parts, part)
	}
	if len(invalid) > 0 {
		return Body{}, &InvalidPartsError{Parts: invalid}
	}

	return Body{Kind: KindMultipart, Parts: parts}, nil
}

func partSpecs(content any) ([]any, error) {
	switch c := content.(type) {
	case []any:
		return c, nil
	case []Part:
		specs := make([]any, len(c))
		for i, p := range c {
			specs[i] = p
		}
		return specs, nil
	case []Field:
		specs := make([]any, len(c))
		for i, p := range c {
			specs[i] = p
		}
		return specs, nil
	case []File:
		specs := make([]any, len(c))
		for i, p := range c {
			specs[i] = p
		}
		return specs, nil
	default:
		return nil, &ContentTypeError{Kind: KindMultipart, Content: content}
	}
}
