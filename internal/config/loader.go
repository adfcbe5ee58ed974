// Package config loads request collection files: named environments and
// requests that the run command executes against an environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Collection is the top-level collection file.
type Collection struct {
	Environments map[string]Environment `yaml:"environments" json:"environments"`
	Requests     map[string]Request     `yaml:"requests" json:"requests"`
}

// Environment is a base URL plus headers shared by every request run
// against it.
type Environment struct {
	BaseURL string            `yaml:"baseUrl" json:"baseUrl"`
	Headers map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// Request is one named request in a collection. BodyKind selects the
// serialization mode: json, url_encoded, multipart, or an extension token;
// it defaults to json when a body is present.
type Request struct {
	Method      string            `yaml:"method" json:"method"`
	Path        string            `yaml:"path" json:"path"`
	Headers     map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	QueryParams map[string]string `yaml:"queryParams,omitempty" json:"queryParams,omitempty"`
	Body        any               `yaml:"body,omitempty" json:"body,omitempty"`
	BodyKind    string            `yaml:"bodyKind,omitempty" json:"bodyKind,omitempty"`
	Extract     map[string]string `yaml:"extract,omitempty" json:"extract,omitempty"`
	Schema      string            `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Load reads and parses a collection file. The format is chosen by
// extension: .json is JSON, everything else is parsed as YAML.
func Load(path string) (*Collection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}
	return Parse(data, path)
}

// Parse parses collection data, using the extension of path to pick the
// format. An empty or unknown extension parses as YAML.
func Parse(data []byte, path string) (*Collection, error) {
	var collection Collection

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, &collection); err != nil {
			return nil, fmt.Errorf("failed to parse JSON collection: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &collection); err != nil {
			return nil, fmt.Errorf("failed to parse YAML collection: %w", err)
		}
	}

	return &collection, nil
}
