package body

// PartHeader is a single header line attached to a file part. Order is
// preserved, so repeated names are allowed.
type PartHeader struct {
	Name  string
	Value string
}

// Part is one element of a multipart body: either a Field or a File.
type Part interface {
	isPart()
}

// Field is a plain form field.
type Field struct {
	Name string
	Data string
}

func (Field) isPart() {}

// File is a file attachment. Extra carries caller-defined metadata such as a
// form field name or an explicit content type; Headers are emitted with the
// part in order.
type File struct {
	Filename string
	Extra    map[string]any
	Headers  []PartHeader
}

func (File) isPart() {}

// InvalidPart pairs a value that matched neither part shape with guidance
// describing the shapes that would have been accepted.
type InvalidPart struct {
	Value    any
	Guidance string
}

// PartGuidance describes the two valid part shapes. It accompanies every
// rejected multipart element.
const PartGuidance = "a part must be either a body.Field{Name, Data} or a body.File{Filename, Extra, Headers}"

// validatePart checks one multipart element against the two legal shapes.
// Pointer forms are accepted and flattened to their value forms so stored
// parts are uniform. A typed nil pointer is not a part.
func validatePart(v any) (Part, bool) {
	switch p := v.(type) {
	case Field:
		return p, true
	case *Field:
		if p == nil {
			return nil, false
		}
		return *p, true
	case File:
		return p, true
	case *File:
		if p == nil {
			return nil, false
		}
		return *p, true
	default:
		return nil, false
	}
}
