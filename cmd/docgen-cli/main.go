package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	docgen "github.com/goliatone/go-docgen"
	"github.com/goliatone/go-docgen/pkg/catalog"
	"github.com/goliatone/go-docgen/pkg/orchestrator"
	"github.com/goliatone/go-docgen/pkg/prompt"
	pkgtemplate "github.com/goliatone/go-docgen/pkg/template"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		runList(os.Args[2:])
	case "render":
		runRender(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: docgen-cli <command> [args]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  list [-dir templates] [-format json|text] [-describe]")
	fmt.Fprintln(os.Stderr, "        list available templates")
	fmt.Fprintln(os.Stderr, "  render [-vars file] [-allow-unresolved] [-interactive] [-output file] <template>")
	fmt.Fprintln(os.Stderr, "        render a template with variables from -vars, stdin, or prompts")
}

func runList(args []string) {
	flags := flag.NewFlagSet("list", flag.ExitOnError)
	dir := flags.String("dir", "templates", "templates directory")
	format := flags.String("format", "json", "output format: json or text")
	describe := flags.Bool("describe", false, "read template metadata for names and descriptions")
	_ = flags.Parse(args)

	var opts []catalog.Option
	if *describe {
		opts = append(opts, catalog.WithMetadata())
	}

	descriptors, err := catalog.Discover(*dir, opts...)
	if err != nil {
		log.Fatalf("Failed to list templates: %v", err)
	}

	switch *format {
	case "json":
		if descriptors == nil {
			descriptors = []catalog.Descriptor{}
		}
		out, err := json.MarshalIndent(descriptors, "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode listing: %v", err)
		}
		fmt.Println(string(out))
	case "text":
		for _, desc := range descriptors {
			line := fmt.Sprintf("%-40s %-12s", desc.ID, desc.Category)
			if desc.Description != "" {
				line += " " + desc.Description
			}
			fmt.Println(strings.TrimRight(line, " "))
		}
	default:
		log.Fatalf("unknown format: %q", *format)
	}
}

func runRender(args []string) {
	flags := flag.NewFlagSet("render", flag.ExitOnError)
	varsPath := flags.String("vars", "", "variables document (JSON or YAML); stdin is read when piped and -vars is omitted")
	allowUnresolved := flags.Bool("allow-unresolved", false, "keep unresolved placeholders instead of failing")
	interactive := flags.Bool("interactive", false, "prompt for missing variables")
	output := flags.String("output", "", "output file (stdout if empty)")
	_ = flags.Parse(args)

	if flags.NArg() < 1 {
		log.Fatalf("Usage: docgen-cli render [flags] <template>")
	}

	src := parseSource(flags.Arg(0))
	if src == nil {
		log.Fatalf("invalid template source: %q", flags.Arg(0))
	}

	variables, err := loadVariables(*varsPath)
	if err != nil {
		log.Fatalf("Failed to load variables: %v", err)
	}

	var opts []orchestrator.Option
	if *interactive {
		opts = append(opts, orchestrator.WithPrompter(prompt.NewFiller(nil)))
	}
	if src.Kind() == pkgtemplate.SourceKindURL {
		opts = append(opts, orchestrator.WithLoader(docgen.NewLoader(pkgtemplate.WithHTTPFallback(30*time.Second))))
	}

	gen := orchestrator.New(opts...)
	rendered, err := gen.Generate(context.Background(), orchestrator.Request{
		Source:          src,
		Variables:       variables,
		AllowUnresolved: *allowUnresolved,
	})
	if err != nil {
		log.Fatalf("Failed to render template: %v", err)
	}

	out, err := json.MarshalIndent(rendered, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode output: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, append(out, '\n'), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		return
	}
	fmt.Println(string(out))
}

// loadVariables resolves the caller variable document: a -vars file when
// given, piped stdin otherwise. Empty or absent input yields the zero Value,
// which renders as an empty variable set.
func loadVariables(path string) (pkgtemplate.Value, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return pkgtemplate.Value{}, err
		}
		if len(bytes.TrimSpace(data)) == 0 {
			return pkgtemplate.Value{}, nil
		}
		doc, err := pkgtemplate.NewDocument(pkgtemplate.SourceFromFile(path), data)
		if err != nil {
			return pkgtemplate.Value{}, err
		}
		return pkgtemplate.Parse(doc)
	}

	stat, err := os.Stdin.Stat()
	if err != nil || stat.Mode()&os.ModeCharDevice != 0 {
		return pkgtemplate.Value{}, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return pkgtemplate.Value{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return pkgtemplate.Value{}, nil
	}

	val, err := pkgtemplate.ParseJSON(data)
	if err != nil {
		return pkgtemplate.Value{}, pkgtemplate.ParseError{Source: "stdin", Err: err}
	}
	return val, nil
}

func parseSource(raw string) pkgtemplate.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		// SourceFromURL panics on malformed input; vet user input first so
		// bad URLs surface as a normal CLI error.
		if _, err := url.ParseRequestURI(path); err != nil {
			return nil
		}
		return pkgtemplate.SourceFromURL(path)
	}
	return pkgtemplate.SourceFromFile(path)
}
