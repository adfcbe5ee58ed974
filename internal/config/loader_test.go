package config

import (
	"os"
	"path/filepath"
	"testing"
)

const yamlCollection = `
environments:
  staging:
    baseUrl: https://staging.example.com
    headers:
      X-Env: staging
requests:
  createUser:
    method: POST
    path: /users
    bodyKind: json
    body:
      name: alice
    extract:
      id: $.id
  login:
    method: POST
    path: /login
    bodyKind: url_encoded
    body:
      user: alice
      pass: secret
`

const jsonCollection = `{
	"environments": {
		"prod": {"baseUrl": "https://example.com"}
	},
	"requests": {
		"ping": {"method": "GET", "path": "/ping"}
	}
}`

func TestParse_YAML(t *testing.T) {
	collection, err := Parse([]byte(yamlCollection), "collection.yaml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	env, ok := collection.Environments["staging"]
	if !ok {
		t.Fatal("missing staging environment")
	}
	if env.BaseURL != "https://staging.example.com" {
		t.Errorf("BaseURL = %q", env.BaseURL)
	}
	if env.Headers["X-Env"] != "staging" {
		t.Errorf("Headers = %v", env.Headers)
	}

	req, ok := collection.Requests["createUser"]
	if !ok {
		t.Fatal("missing createUser request")
	}
	if req.Method != "POST" || req.Path != "/users" {
		t.Errorf("request = %+v", req)
	}
	if req.BodyKind != "json" {
		t.Errorf("BodyKind = %q, want json", req.BodyKind)
	}
	if req.Extract["id"] != "$.id" {
		t.Errorf("Extract = %v", req.Extract)
	}

	if collection.Requests["login"].BodyKind != "url_encoded" {
		t.Errorf("login BodyKind = %q", collection.Requests["login"].BodyKind)
	}
}

func TestParse_JSON(t *testing.T) {
	collection, err := Parse([]byte(jsonCollection), "collection.json")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if collection.Environments["prod"].BaseURL != "https://example.com" {
		t.Errorf("Environments = %v", collection.Environments)
	}
	if collection.Requests["ping"].Method != "GET" {
		t.Errorf("Requests = %v", collection.Requests)
	}
}

func TestParse_Invalid(t *testing.T) {
	if _, err := Parse([]byte("{not yaml: ["), "broken.yaml"); err == nil {
		t.Error("expected an error for broken YAML")
	}
	if _, err := Parse([]byte("{broken"), "broken.json"); err == nil {
		t.Error("expected an error for broken JSON")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "collection.yaml")
	if err := os.WriteFile(path, []byte(yamlCollection), 0o600); err != nil {
		t.Fatal(err)
	}

	collection, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(collection.Requests) != 2 {
		t.Errorf("got %d requests, want 2", len(collection.Requests))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
