package body

import (
	"errors"
	"fmt"
	"strings"
)

// ErrBodyKindWithFiles is returned when files are already attached to the
// request and the declared kind cannot carry them.
var ErrBodyKindWithFiles = errors.New("body must be url_encoded or multipart when files are attached")

// ContentTypeError reports content whose Go type cannot serve the declared
// kind, such as a struct passed for an extension kind that requires a raw
// string payload.
type ContentTypeError struct {
	Kind    Kind
	Content any
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("content of type %T cannot be used for body kind %q", e.Content, e.Kind)
}

// InvalidPartsError reports every multipart element that matched neither
// valid part shape. Validation is all-or-nothing: when this error is
// returned, no parts were stored.
type InvalidPartsError struct {
	Parts []InvalidPart
}

func (e *InvalidPartsError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d invalid multipart part(s): ", len(e.Parts))
	for i, p := range e.Parts {
		if i > 0 {
			sb.WriteString("; ")
		}
		fmt.Fprintf(&sb, "%v (%s)", p.Value, p.Guidance)
	}
	return sb.String()
}
