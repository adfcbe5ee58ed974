// Package jsonpath extracts values from JSON documents using JSONPath-style
// expressions, backed by gjson.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract returns the value at a JSONPath expression such as
// "$.users[0].name" as a string. Missing paths are errors; JSON null is
// returned as the string "null".
func Extract(doc, path string) (string, error) {
	if doc == "" {
		return "", fmt.Errorf("empty JSON document")
	}
	if path == "" {
		return "", fmt.Errorf("empty JSONPath expression")
	}

	result := gjson.Get(doc, toGjsonPath(path))
	if !result.Exists() {
		return "", fmt.Errorf("path not found: %s", path)
	}
	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// ExtractAll resolves a set of named JSONPath expressions against one
// document. Every expression is attempted; failures are reported together.
func ExtractAll(doc string, paths map[string]string) (map[string]string, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no JSONPath expressions provided")
	}

	results := make(map[string]string, len(paths))
	var failures []string
	for name, path := range paths {
		value, err := Extract(doc, path)
		if err != nil {
			failures = append(failures, fmt.Sprintf("%s: %v", name, err))
			continue
		}
		results[name] = value
	}
	if len(failures) > 0 {
		return results, fmt.Errorf("extraction errors: %s", strings.Join(failures, "; "))
	}
	return results, nil
}

// toGjsonPath rewrites a JSONPath expression into gjson syntax:
// $.users[0].name becomes users.0.name. Bracketed keys in either quote style
// are flattened. Filter expressions are not supported.
func toGjsonPath(path string) string {
	if path == "$" {
		return "@this"
	}
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")

	replacer := strings.NewReplacer(
		"['", ".", "']", "",
		`["`, ".", `"]`, "",
		"[", ".", "]", "",
	)
	path = replacer.Replace(path)
	return strings.TrimPrefix(path, ".")
}
