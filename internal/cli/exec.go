package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjl/ivar/body"
	"github.com/jjl/ivar/internal/output"
	"github.com/jjl/ivar/pkg/jsonschema"
	"github.com/jjl/ivar/request"
)

// addCommonFlags registers the flags shared by every verb command.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("header", "H", []string{}, "HTTP headers to include (can be used multiple times)")
	cmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	cmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	cmd.Flags().Bool("no-color", false, "Disable colored output")
	cmd.Flags().String("user", "", "Basic auth credentials as user:password")
	cmd.Flags().String("bearer", "", "Bearer token for the Authorization header")
	cmd.Flags().StringP("query", "q", "", "JSONPath to extract from the response body")
	cmd.Flags().String("schema", "", "JSON Schema file to validate the response body against")
}

// addBodyFlags registers the body construction flags for verbs that send one.
func addBodyFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("json", "j", "", "JSON data to send in the request body")
	cmd.Flags().StringP("data", "d", "", "Raw data to send in the request body")
	cmd.Flags().String("data-kind", "txt", "Extension token giving the content type for --data")
	cmd.Flags().StringArrayP("form", "f", []string{}, "Form field as key=value (can be used multiple times)")
	cmd.Flags().StringArray("part", []string{}, "Multipart part as field=value, or field=@path to attach a file")
}

// applyBodyFlags translates body flags into fluent calls. Precedence:
// multipart parts, then form fields, then JSON, then raw data.
func applyBodyFlags(req *request.Request, cmd *cobra.Command) {
	jsonData, _ := cmd.Flags().GetString("json")
	data, _ := cmd.Flags().GetString("data")
	dataKind, _ := cmd.Flags().GetString("data-kind")
	forms, _ := cmd.Flags().GetStringArray("form")
	parts, _ := cmd.Flags().GetStringArray("part")

	if len(parts) > 0 {
		var fieldParts []body.Part
		for _, spec := range parts {
			name, value, found := strings.Cut(spec, "=")
			if !found {
				continue
			}
			if path, isFile := strings.CutPrefix(value, "@"); isFile {
				req.WithFileFromPath(name, path)
			} else {
				fieldParts = append(fieldParts, body.Field{Name: name, Data: value})
			}
		}
		for _, spec := range forms {
			if name, value, found := strings.Cut(spec, "="); found {
				fieldParts = append(fieldParts, body.Field{Name: name, Data: value})
			}
		}
		if len(fieldParts) > 0 {
			req.WithMultipart(fieldParts...)
		}
		return
	}

	switch {
	case len(forms) > 0:
		form := make(map[string]string, len(forms))
		for _, spec := range forms {
			if name, value, found := strings.Cut(spec, "="); found {
				form[name] = value
			}
		}
		req.WithForm(form)
	case jsonData != "":
		req.WithJSON(jsonData)
	case data != "":
		req.WithRaw(data, dataKind)
	}
}

// executeRequest is the shared pipeline behind the verb commands: assemble
// the request from flags, dispatch it, render the response, then apply the
// optional JSONPath extraction and schema validation.
func executeRequest(cmd *cobra.Command, method, rawURL string) {
	headers, _ := cmd.Flags().GetStringArray("header")
	verbose, _ := cmd.Flags().GetBool("verbose")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	noColor, _ := cmd.Flags().GetBool("no-color")
	user, _ := cmd.Flags().GetString("user")
	bearer, _ := cmd.Flags().GetString("bearer")
	query, _ := cmd.Flags().GetString("query")
	schemaPath, _ := cmd.Flags().GetString("schema")

	baseURL, path, queryParams := parseURL(rawURL)

	client := request.NewClient(
		request.WithTimeout(timeout),
		request.WithBaseURL(baseURL),
	)

	req := request.NewRequest(method, path)
	for key, values := range queryParams {
		for _, value := range values {
			req.WithQueryParam(key, value)
		}
	}
	for _, header := range headers {
		if key, value, found := strings.Cut(header, ":"); found {
			req.WithHeader(strings.TrimSpace(key), strings.TrimSpace(value))
		}
	}
	if user != "" {
		username, password, _ := strings.Cut(user, ":")
		req.WithBasicAuth(username, password)
	}
	if bearer != "" {
		req.WithBearerToken(bearer)
	}
	if cmd.Flags().Lookup("json") != nil {
		applyBodyFlags(req, cmd)
	}

	if err := req.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	formatter := output.NewFormatter(verbose, noColor)
	fmt.Print(formatter.FormatRequest(req, baseURL))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Do(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(formatter.FormatResponse(resp))

	if query != "" {
		value, err := resp.GetBodyPath(query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("  Query %s: %s\n", query, value)
	}

	if schemaPath != "" {
		if err := validateResponseSchema(resp, schemaPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("  Schema: valid")
	}
}

func validateResponseSchema(resp *request.Response, schemaPath string) error {
	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		return fmt.Errorf("reading schema: %w", err)
	}
	bodyStr, err := resp.GetBodyAsString()
	if err != nil {
		return err
	}
	valid, errs := jsonschema.ValidateWithErrors(bodyStr, string(schemaData))
	if !valid {
		return fmt.Errorf("schema validation failed: %s", errs.Error())
	}
	return nil
}
