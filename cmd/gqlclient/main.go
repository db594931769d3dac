package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/TheRealReal/graphql-client/internal/document"
	"github.com/TheRealReal/graphql-client/internal/eventbus"
	"github.com/TheRealReal/graphql-client/internal/httptp"
	"github.com/TheRealReal/graphql-client/internal/introspection"
	"github.com/TheRealReal/graphql-client/internal/otel"
	"github.com/TheRealReal/graphql-client/internal/transport"
)

const rootUsage = `gqlclient — GraphQL endpoint tools

USAGE:
  gqlclient <command> [flags]

COMMANDS:
  introspect       Fetch and print a server's schema via introspection
  print            Build and print the introspection document without sending it
  help             Show help for any command
`

const introspectUsage = `introspect FLAGS:
  -endpoint <url>          GraphQL endpoint URL (required)
  -header <name:value>     Extra HTTP header. Repeatable
  -timeout <duration>      Request timeout, e.g. 10s (default: 10s)
  -pretty                  Pretty-print the schema JSON
  -types-only              Print only type names, one per line
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: gqlclient)
`

const printUsage = `print FLAGS:
  (none) — writes the introspection query text to stdout
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("gqlclient", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer)) // silence automatic output
	if err := global.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd := remaining[0]
	cmdArgs := remaining[1:]
	switch cmd {
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "print":
		return cmdPrint(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "introspect":
		fmt.Print(introspectUsage)
	case "print":
		fmt.Print(printUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

// headerFlags collects repeatable -header name:value flags.
type headerFlags map[string]string

func (h headerFlags) String() string { return "" }

func (h headerFlags) Set(v string) error {
	name, value, ok := strings.Cut(v, ":")
	if !ok {
		return fmt.Errorf("header must be name:value, got %q", v)
	}
	h[strings.TrimSpace(name)] = strings.TrimSpace(value)
	return nil
}

func cmdIntrospect(args []string) error {
	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	endpoint := fs.String("endpoint", "", "")
	timeout := fs.Duration("timeout", 10*time.Second, "")
	pretty := fs.Bool("pretty", false, "")
	typesOnly := fs.Bool("types-only", false, "")
	otelEndpoint := fs.String("otel.endpoint", "", "")
	otelService := fs.String("otel.service", "gqlclient", "")
	headers := headerFlags{}
	fs.Var(headers, "header", "")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	if *endpoint == "" {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("-endpoint is required")
	}

	eventbus.Use(eventbus.New())
	shutdown, err := otel.Setup(*otelEndpoint, *otelService)
	if err != nil {
		return err
	}
	ctx := context.Background()
	defer shutdown(ctx)

	tp, err := httptp.New(*endpoint, httptp.WithRequestTimeout(*timeout))
	if err != nil {
		return err
	}

	resp, err := tp.Dispatch(ctx, introspection.Query(), nil, transport.Options{Headers: map[string]string(headers)})
	if err != nil {
		return err
	}
	if resp.State() == transport.StateFailure {
		return fmt.Errorf("introspection failed: %s", resp.Errors[0].Message)
	}
	for _, e := range resp.Errors {
		fmt.Fprintf(os.Stderr, "warning: %s\n", e.Message)
	}

	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return err
	}
	var result introspection.Result
	if err := json.Unmarshal(raw, &result); err != nil {
		return fmt.Errorf("decode introspection result: %w", err)
	}

	if *typesOnly {
		for _, typ := range result.Schema.Types {
			fmt.Println(typ.Name)
		}
		return nil
	}

	enc := json.NewEncoder(os.Stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result.Schema)
}

func cmdPrint(args []string) error {
	if len(args) > 0 {
		fmt.Fprint(os.Stderr, printUsage)
		return fmt.Errorf("print takes no arguments")
	}
	fmt.Println(document.Encode(introspection.Query()))
	return nil
}
