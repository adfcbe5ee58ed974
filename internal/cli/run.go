package cli

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jjl/ivar/body"
	"github.com/jjl/ivar/internal/config"
	"github.com/jjl/ivar/internal/output"
	"github.com/jjl/ivar/pkg/jsonpath"
	"github.com/jjl/ivar/pkg/jsonschema"
	"github.com/jjl/ivar/request"
)

var runCmd = &cobra.Command{
	Use:   "run FILE",
	Short: "Run the requests in a collection file against an environment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		envName, _ := cmd.Flags().GetString("env")
		requestName, _ := cmd.Flags().GetString("request")
		verbose, _ := cmd.Flags().GetBool("verbose")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		noColor, _ := cmd.Flags().GetBool("no-color")

		collection, err := config.Load(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if errs := config.Validate(collection); len(errs) > 0 {
			for _, e := range errs {
				fmt.Fprintf(os.Stderr, "Error: %v\n", e)
			}
			os.Exit(1)
		}

		env, ok := collection.Environments[envName]
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown environment %q\n", envName)
			os.Exit(1)
		}

		names := collectionRequestNames(collection, requestName)
		if len(names) == 0 {
			fmt.Fprintf(os.Stderr, "Error: unknown request %q\n", requestName)
			os.Exit(1)
		}

		client := request.NewClient(
			request.WithBaseURL(env.BaseURL),
			request.WithTimeout(timeout),
		)
		formatter := output.NewFormatter(verbose, noColor)

		failed := false
		for _, name := range names {
			fmt.Printf("— %s\n", name)
			if err := runCollectionRequest(client, formatter, env, collection.Requests[name], timeout); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	runCmd.Flags().String("env", "", "Environment name from the collection")
	runCmd.Flags().String("request", "", "Run only the named request")
	runCmd.Flags().BoolP("verbose", "v", false, "Enable verbose output")
	runCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Request timeout")
	runCmd.Flags().Bool("no-color", false, "Disable colored output")
	runCmd.MarkFlagRequired("env")
}

// collectionRequestNames returns the requests to run, sorted for stable
// execution order, or just the one named request.
func collectionRequestNames(collection *config.Collection, only string) []string {
	if only != "" {
		if _, ok := collection.Requests[only]; !ok {
			return nil
		}
		return []string{only}
	}
	names := make([]string, 0, len(collection.Requests))
	for name := range collection.Requests {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildCollectionRequest assembles a fluent request from a collection entry.
func buildCollectionRequest(env config.Environment, cfg config.Request) *request.Request {
	req := request.NewRequest(cfg.Method, cfg.Path)
	req.WithHeaders(env.Headers)
	req.WithHeaders(cfg.Headers)
	req.WithQueryParams(cfg.QueryParams)

	if cfg.Body == nil {
		return req
	}

	kind := body.Kind(cfg.BodyKind)
	if cfg.BodyKind == "" {
		kind = body.KindJSON
	}

	content := cfg.Body
	if kind == body.KindMultipart {
		// YAML gives a mapping; multipart entries become plain fields.
		if fields, ok := cfg.Body.(map[string]any); ok {
			parts := make([]any, 0, len(fields))
			for name, value := range fields {
				parts = append(parts, body.Field{Name: name, Data: fmt.Sprint(value)})
			}
			content = parts
		}
	}

	return req.WithBody(content, kind)
}

func runCollectionRequest(client *request.Client, formatter *output.Formatter, env config.Environment, cfg config.Request, timeout time.Duration) error {
	req := buildCollectionRequest(env, cfg)
	if err := req.Err(); err != nil {
		return err
	}

	fmt.Print(formatter.FormatRequest(req, env.BaseURL))

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	resp, err := client.Do(ctx, req)
	if err != nil {
		return err
	}

	fmt.Print(formatter.FormatResponse(resp))

	if len(cfg.Extract) > 0 {
		bodyStr, err := resp.GetBodyAsString()
		if err != nil {
			return err
		}
		values, err := jsonpath.ExtractAll(bodyStr, cfg.Extract)
		if err != nil {
			return err
		}
		for name, value := range values {
			fmt.Printf("  Extract %s: %s\n", name, value)
		}
	}

	if cfg.Schema != "" {
		schema := cfg.Schema
		if !strings.HasPrefix(strings.TrimSpace(schema), "{") {
			data, err := os.ReadFile(schema)
			if err != nil {
				return fmt.Errorf("reading schema: %w", err)
			}
			schema = string(data)
		}
		bodyStr, err := resp.GetBodyAsString()
		if err != nil {
			return err
		}
		valid, errs := jsonschema.ValidateWithErrors(bodyStr, schema)
		if !valid {
			return fmt.Errorf("schema validation failed: %s", errs.Error())
		}
		fmt.Println("  Schema: valid")
	}

	return nil
}
