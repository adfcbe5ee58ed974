package config

import (
	"fmt"
)

// ValidationError is one problem found in a collection, qualified by the
// path to the offending entry.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "PATCH": true,
	"DELETE": true, "HEAD": true, "OPTIONS": true,
}

// Validate checks a collection and returns every problem found, not just
// the first.
func Validate(collection *Collection) []ValidationError {
	var errs []ValidationError

	if len(collection.Environments) == 0 {
		errs = append(errs, ValidationError{
			Path:    "environments",
			Message: "at least one environment is required",
		})
	}
	for name, env := range collection.Environments {
		if env.BaseURL == "" {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("environments.%s.baseUrl", name),
				Message: "baseUrl is required",
			})
		}
	}

	if len(collection.Requests) == 0 {
		errs = append(errs, ValidationError{
			Path:    "requests",
			Message: "at least one request is required",
		})
	}
	for name, req := range collection.Requests {
		if req.Path == "" {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("requests.%s.path", name),
				Message: "path is required",
			})
		}
		if req.Method == "" {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: "method is required",
			})
		} else if !knownMethods[req.Method] {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("requests.%s.method", name),
				Message: fmt.Sprintf("unknown method %q", req.Method),
			})
		}
		if req.BodyKind != "" && req.Body == nil {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("requests.%s.bodyKind", name),
				Message: "bodyKind is set but no body is given",
			})
		}
	}

	return errs
}
