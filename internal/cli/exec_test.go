package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jjl/ivar/body"
	"github.com/jjl/ivar/request"
)

func newBodyFlagCommand(args []string) *cobra.Command {
	cmd := &cobra.Command{Use: "test", Run: func(*cobra.Command, []string) {}}
	addBodyFlags(cmd)
	cmd.SetArgs(args)
	cmd.Execute()
	return cmd
}

func TestApplyBodyFlags_JSON(t *testing.T) {
	cmd := newBodyFlagCommand([]string{"--json", `{"name":"value"}`})
	req := request.NewRequest("POST", "/users")
	applyBodyFlags(req, cmd)

	if err := req.Err(); err != nil {
		t.Fatalf("unexpected chain error: %v", err)
	}
	b := req.Body()
	if b == nil || b.Kind != body.KindJSON {
		t.Fatalf("expected JSON body, got %+v", b)
	}
	if b.Payload != `{"name":"value"}` {
		t.Errorf("Payload = %q", b.Payload)
	}
}

func TestApplyBodyFlags_Form(t *testing.T) {
	cmd := newBodyFlagCommand([]string{"-f", "name=value"})
	req := request.NewRequest("POST", "/login")
	applyBodyFlags(req, cmd)

	b := req.Body()
	if b == nil || b.Kind != body.KindURLEncoded {
		t.Fatalf("expected url_encoded body, got %+v", b)
	}
	if b.Payload != "name=value" {
		t.Errorf("Payload = %q", b.Payload)
	}
}

func TestApplyBodyFlags_RawWithKind(t *testing.T) {
	cmd := newBodyFlagCommand([]string{"-d", "<doc/>", "--data-kind", "xml"})
	req := request.NewRequest("POST", "/docs")
	applyBodyFlags(req, cmd)

	b := req.Body()
	if b == nil || b.ContentType != "application/xml" {
		t.Fatalf("expected XML content type, got %+v", b)
	}
}

func TestApplyBodyFlags_MultipartParts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	cmd := newBodyFlagCommand([]string{"--part", "field1=val1", "--part", "doc=@" + path})
	req := request.NewRequest("POST", "/upload")
	applyBodyFlags(req, cmd)

	if err := req.Err(); err != nil {
		t.Fatalf("unexpected chain error: %v", err)
	}
	if len(req.Files()) != 1 {
		t.Fatalf("expected one attached file, got %d", len(req.Files()))
	}
	b := req.Body()
	if b == nil || !b.IsMultipart() {
		t.Fatalf("expected multipart body, got %+v", b)
	}
	if len(b.Parts) != 1 {
		t.Fatalf("expected one field part, got %d", len(b.Parts))
	}

	httpReq, err := req.Build("https://api.example.com")
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if ct := httpReq.Header.Get("Content-Type"); ct == "" {
		t.Error("expected a multipart Content-Type with boundary")
	}
}

func TestApplyBodyFlags_FileWithJSONIsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o600); err != nil {
		t.Fatal(err)
	}

	// Attaching a file then declaring a JSON body violates the body-kind
	// constraint; the chain must record it instead of dispatching.
	req := request.NewRequest("POST", "/upload").
		WithFileFromPath("doc", path).
		WithJSON(map[string]string{"name": "value"})

	if !errors.Is(req.Err(), body.ErrBodyKindWithFiles) {
		t.Errorf("Err() = %v, want ErrBodyKindWithFiles", req.Err())
	}
}
