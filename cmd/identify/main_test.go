package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wippyai/modident/errors"
)

// wasmWithSections builds an empty core module carrying custom sections.
// Names and payloads must be shorter than 128 bytes.
func wasmWithSections(sections ...[2]string) []byte {
	out := []byte{0x00, 'a', 's', 'm', 0x01, 0x00, 0x00, 0x00}
	for _, s := range sections {
		body := append([]byte{byte(len(s[0]))}, s[0]...)
		body = append(body, s[1]...)
		out = append(out, 0x00, byte(len(body)))
		out = append(out, body...)
	}
	return out
}

func writeWasm(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func runCapture(t *testing.T, opts options) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	err := run(context.Background(), opts, newPrinter(&buf, false))
	return buf.String(), err
}

func TestRun_Canon(t *testing.T) {
	out, err := runCapture(t, options{
		canon: "List`1[[string, builtin, Version=1.0.0.0, Culture=neutral]], builtin, Version=1.0.0.0",
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "Canonical: List`1[[string, builtin]]\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}

	out, err = runCapture(t, options{canon: "Foo, Core, Version"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if want := "Canonical: Foo\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_Type(t *testing.T) {
	out, err := runCapture(t, options{typeName: "Map`2[[string, builtin],[int32[], builtin]]"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Type: map[string][]int32\n") {
		t.Errorf("output = %q", out)
	}

	out, err = runCapture(t, options{typeName: "string, builtin, Version=1.0.0.0, Culture=neutral, PublicKeyToken=null"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Qualified: string, builtin, Version=1.0.0.0\n") {
		t.Errorf("output = %q", out)
	}

	if _, err := runCapture(t, options{typeName: "No.Such.Type"}); !errors.IsKind(err, errors.KindTypeNotFound) {
		t.Errorf("unknown type err = %v", err)
	}
}

func TestRun_Modules(t *testing.T) {
	dir := t.TempDir()
	v1 := writeWasm(t, dir, "widgets-v1.wasm", wasmWithSections(
		[2]string{"package", "acme:widgets@1.0.0"},
		[2]string{"notes", "first"},
	))
	v2 := writeWasm(t, dir, "widgets-v2.wasm", wasmWithSections(
		[2]string{"package", "acme:widgets@2.0.0"},
		[2]string{"notes", "second"},
	))
	plain := writeWasm(t, dir, "plain.wasm", wasmWithSections())

	files := strings.Join([]string{v1, v2, plain}, ",")

	out, err := runCapture(t, options{wasmFiles: files})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, want := range []string{"acme:widgets/1.0.0", "acme:widgets/2.0.0", "  plain\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	out, err = runCapture(t, options{wasmFiles: files, module: "acme:widgets/2.0.0", resource: "notes"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Resolved: acme:widgets/2.0.0\n") || !strings.Contains(out, "second\n") {
		t.Errorf("output = %q", out)
	}

	out, err = runCapture(t, options{wasmFiles: files, module: "plain/1.0", highest: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "Resolved: plain\n") {
		t.Errorf("output = %q", out)
	}

	out, err = runCapture(t, options{wasmFiles: files, module: "acme:widgets/3.0"})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(out, "no loaded module matches acme:widgets/3.0") {
		t.Errorf("output = %q", out)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := runCapture(t, options{module: "Acme/1.0"}); err == nil {
		t.Error("-module without -wasm should fail")
	}

	good := writeWasm(t, dir, "good.wasm", wasmWithSections([2]string{"notes", "text"}))
	usage := []struct {
		name string
		opts options
	}{
		{"resource without module", options{wasmFiles: good, resource: "notes"}},
		{"resource without wasm", options{module: "good/1.0", resource: "notes"}},
		{"resource alone", options{canon: "A, B", resource: "notes"}},
	}
	for _, tt := range usage {
		out, err := runCapture(t, tt.opts)
		if err == nil || !strings.Contains(err.Error(), "requires") {
			t.Errorf("%s: err = %v, want usage error", tt.name, err)
		}
		if out != "" {
			t.Errorf("%s: output = %q, want none", tt.name, out)
		}
	}
	if _, err := runCapture(t, options{wasmFiles: filepath.Join(dir, "missing.wasm")}); err == nil {
		t.Error("missing file should fail")
	}
	bad := writeWasm(t, dir, "bad.wasm", []byte("not wasm"))
	if _, err := runCapture(t, options{wasmFiles: bad}); err == nil {
		t.Error("invalid module should fail")
	}
	if _, err := runCapture(t, options{wasmFiles: good, module: "Acme"}); !errors.IsKind(err, errors.KindMalformedIdentity) {
		t.Errorf("malformed module identity err = %v", err)
	}
}

func TestModuleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"widgets.wasm", "widgets"},
		{"/tmp/dir/acme.core.wasm", "acme.core"},
		{"noext", "noext"},
	}
	for _, tt := range tests {
		if got := moduleName(tt.path); got != tt.want {
			t.Errorf("moduleName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}
