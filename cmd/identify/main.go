package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/modident/catalog"
	"github.com/wippyai/modident/identity"
	"github.com/wippyai/modident/resolve"
	"github.com/wippyai/modident/wasmhost"
)

type options struct {
	wasmFiles string
	module    string
	canon     string
	typeName  string
	resource  string
	highest   bool
	verbose   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.wasmFiles, "wasm", "", "WASM modules to load (comma-separated)")
	flag.StringVar(&opts.module, "module", "", "Module identity to resolve (Name/Major.Minor[.Build[.Revision]])")
	flag.StringVar(&opts.canon, "canon", "", "Type identity to canonicalize")
	flag.StringVar(&opts.typeName, "type", "", "Type identity to resolve against the builtin module")
	flag.StringVar(&opts.resource, "resource", "", "Resource to read from the resolved module")
	flag.BoolVar(&opts.highest, "highest", false, "Prefer the highest version when several modules match")
	flag.BoolVar(&opts.verbose, "v", false, "Debug logging")
	flag.Parse()

	if opts.wasmFiles == "" && opts.module == "" && opts.canon == "" && opts.typeName == "" {
		fmt.Fprintln(os.Stderr, "Usage: identify -canon <type identity>")
		fmt.Fprintln(os.Stderr, "       identify -type <type identity>")
		fmt.Fprintln(os.Stderr, "       identify -wasm a.wasm,b.wasm [-module Name/1.0 [-resource name]] [-highest]")
		os.Exit(1)
	}

	if opts.verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		catalog.SetLogger(logger.Named("catalog"))
		resolve.SetLogger(logger.Named("resolve"))
		wasmhost.SetLogger(logger.Named("wasmhost"))
	}

	p := newPrinter(os.Stdout, term.IsTerminal(int(os.Stdout.Fd())))
	if err := run(context.Background(), opts, p); err != nil {
		fmt.Fprintln(os.Stderr, p.errorf("Error: %v", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, p *printer) error {
	if opts.module != "" && opts.wasmFiles == "" {
		return fmt.Errorf("-module requires -wasm")
	}
	if opts.resource != "" && opts.module == "" {
		return fmt.Errorf("-resource requires -module and -wasm")
	}

	if opts.canon != "" {
		canonical, err := identity.CanonicalizeTypeIdentity(opts.canon)
		if err != nil {
			return err
		}
		p.field("Canonical", canonical)
	}

	if opts.typeName != "" {
		reg := catalog.NewRegistry()
		catalog.RegisterBuiltins(reg)
		t, err := resolve.NewTypeResolver(reg).TryResolveType(opts.typeName)
		if err != nil {
			return err
		}
		p.field("Type", t.String())
		if name, ok := reg.NameOf(t); ok {
			p.field("Qualified", name)
		}
	}

	if opts.wasmFiles == "" {
		return nil
	}

	host, err := wasmhost.NewHost(ctx)
	if err != nil {
		return fmt.Errorf("create host: %w", err)
	}
	defer host.Close(ctx)

	for _, path := range strings.Split(opts.wasmFiles, ",") {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}
		if _, err := host.Load(ctx, moduleName(path), data); err != nil {
			return err
		}
	}

	p.title("Loaded modules")
	for _, m := range host.Modules() {
		p.item(m.Identity().String())
	}

	if opts.module == "" {
		return nil
	}

	cfg := &resolve.Config{}
	if opts.highest {
		cfg.Policy = resolve.PreferHighest
	}
	m, ok, err := resolve.NewModuleResolverWithConfig(host, cfg).ResolveString(opts.module)
	if err != nil {
		return err
	}
	if !ok {
		p.field("Resolved", p.errorf("no loaded module matches %s", opts.module))
		return nil
	}
	p.field("Resolved", m.Identity().String())

	if opts.resource != "" {
		text, err := resolve.ReadResource(m, opts.resource)
		if err != nil {
			return err
		}
		p.title("Resource " + opts.resource)
		fmt.Fprintln(p.w, text)
	}
	return nil
}

// moduleName derives the load name from a file path: "dir/widgets.wasm" loads as "widgets".
func moduleName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
