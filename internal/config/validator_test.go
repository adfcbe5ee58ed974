package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	collection := &Collection{
		Environments: map[string]Environment{
			"staging": {BaseURL: "https://staging.example.com"},
		},
		Requests: map[string]Request{
			"ping": {Method: "GET", Path: "/ping"},
		},
	}

	if errs := Validate(collection); len(errs) != 0 {
		t.Errorf("Validate() = %v, want no errors", errs)
	}
}

func TestValidate_CollectsEveryError(t *testing.T) {
	collection := &Collection{
		Environments: map[string]Environment{
			"broken": {},
		},
		Requests: map[string]Request{
			"bad": {Method: "FETCH", BodyKind: "json"},
		},
	}

	errs := Validate(collection)
	if len(errs) != 4 {
		t.Fatalf("got %d errors, want 4: %v", len(errs), errs)
	}

	joined := make([]string, len(errs))
	for i, e := range errs {
		joined[i] = e.Error()
	}
	all := strings.Join(joined, "\n")
	for _, want := range []string{
		"environments.broken.baseUrl",
		"requests.bad.path",
		"requests.bad.method",
		"requests.bad.bodyKind",
	} {
		if !strings.Contains(all, want) {
			t.Errorf("missing %q in errors:\n%s", want, all)
		}
	}
}

func TestValidate_Empty(t *testing.T) {
	errs := Validate(&Collection{})
	if len(errs) != 2 {
		t.Errorf("got %d errors, want 2 (environments and requests)", len(errs))
	}
}
