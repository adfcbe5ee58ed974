package request

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jjl/ivar/body"
)

func TestClient_Do(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "GET" {
			t.Errorf("Expected method GET, got %s", r.Method)
		}
		if r.URL.Path != "/test" {
			t.Errorf("Expected path /test, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Test-Header") != "test-value" {
			t.Errorf("Expected header X-Test-Header: test-value, got %s", r.Header.Get("X-Test-Header"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"success"}`))
	}))
	defer server.Close()

	client := NewClient(
		WithTimeout(5*time.Second),
		WithHeader("User-Agent", "ivar-test"),
		WithBaseURL(server.URL),
	)

	req := NewRequest("GET", "/test").WithHeader("X-Test-Header", "test-value")

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected status code %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if !resp.IsSuccess() {
		t.Error("Expected IsSuccess() to be true")
	}
	if resp.GetHeader("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type: application/json, got %s", resp.GetHeader("Content-Type"))
	}

	var parsed struct {
		Message string `json:"message"`
	}
	if err := resp.GetBodyAsJSON(&parsed); err != nil {
		t.Fatalf("Error parsing body: %v", err)
	}
	if parsed.Message != "success" {
		t.Errorf("Expected message success, got %s", parsed.Message)
	}

	if resp.Timing.TotalTime <= 0 {
		t.Error("Expected total time to be recorded")
	}
}

func TestClient_DoJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	req := NewRequest("POST", "/users").WithJSON(map[string]string{"name": "value"})

	resp, err := client.Do(context.Background(), req)
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
}

func TestClient_DoRefusesFailedChain(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	req := NewRequest("POST", "/upload").
		WithFile("doc", "a.txt", []byte("hello")).
		WithJSON(map[string]string{"name": "value"})

	_, err := client.Do(context.Background(), req)
	if !errors.Is(err, body.ErrBodyKindWithFiles) {
		t.Errorf("Do() error = %v, want ErrBodyKindWithFiles", err)
	}
	if called {
		t.Error("a request with a failed chain must never reach the wire")
	}
}

func TestClient_DoClientHeadersDoNotOverrideRequest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Scope"); got != "request" {
			t.Errorf("Expected request header to win, got %s", got)
		}
	}))
	defer server.Close()

	client := NewClient(
		WithBaseURL(server.URL),
		WithHeader("X-Scope", "client"),
	)
	req := NewRequest("GET", "/").WithHeader("X-Scope", "request")

	if _, err := client.Do(context.Background(), req); err != nil {
		t.Fatalf("Error executing request: %v", err)
	}
}

func TestResponse_GetBodyPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"users":[{"name":"alice"},{"name":"bob"}]}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	resp, err := client.Do(context.Background(), NewRequest("GET", "/users"))
	if err != nil {
		t.Fatalf("Error executing request: %v", err)
	}

	name, err := resp.GetBodyPath("$.users[1].name")
	if err != nil {
		t.Fatalf("Error extracting path: %v", err)
	}
	if name != "bob" {
		t.Errorf("Expected bob, got %s", name)
	}
}
