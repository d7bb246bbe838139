package generate

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// scaffold creates a module directory with a go.mod, an existing package
// file, and a manifest; returns the package directory.
func scaffold(t *testing.T, manifest string) string {
	t.Helper()

	root := t.TempDir()
	mustWrite(t, filepath.Join(root, "go.mod"), "module example.com/proj\n\ngo 1.24.0\n")

	pkgDir := filepath.Join(root, "internal", "config")
	if err := os.MkdirAll(pkgDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	mustWrite(t, filepath.Join(pkgDir, "config.go"), "package config\n")
	mustWrite(t, filepath.Join(pkgDir, ManifestName), manifest)

	return pkgDir
}

func mustWrite(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

const basicManifest = `
[[var]]
name = "DebugEnabled"
type = "bool"
default = "false"
doc = "DebugEnabled turns on verbose diagnostics."

[[var]]
name = "RequestID"
type = "string"
`

// TestGenerate_WritesFile tests the full pipeline against a scaffolded
// module, including package name inference from the sibling source file.
func TestGenerate_WritesFile(t *testing.T) {
	dir := scaffold(t, basicManifest)

	res, err := Generate(dir)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Vars != 2 {
		t.Errorf("Result.Vars = %d, want 2", res.Vars)
	}
	if want := filepath.Join(dir, DefaultOutput); res.OutputPath != want {
		t.Errorf("Result.OutputPath = %q, want %q", res.OutputPath, want)
	}

	out, err := os.ReadFile(res.OutputPath)
	if err != nil {
		t.Fatalf("read generated file: %v", err)
	}
	src := string(out)

	// Package inferred from config.go, module from go.mod.
	for _, want := range []string{
		"package config",
		"// Module: example.com/proj",
		"var DebugEnabled = fluid.NewWithDefault(func() bool { return false })",
		"var RequestID = fluid.New[string]()",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("generated file missing %q\n----\n%s", want, src)
		}
	}

	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, res.OutputPath, out, parser.ParseComments); err != nil {
		t.Errorf("generated file does not parse: %v", err)
	}
}

// TestGenerate_OutsideModule tests the no-go.mod error path.
func TestGenerate_OutsideModule(t *testing.T) {
	dir := t.TempDir()
	mustWrite(t, filepath.Join(dir, ManifestName), basicManifest)

	// The temp dir may sit under a directory tree that contains a go.mod
	// (go test working directories do not, but be explicit about what is
	// being tested).
	_, err := Generate(dir)
	if err == nil {
		t.Skip("temp dir unexpectedly inside a Go module")
	}
	if !strings.Contains(err.Error(), "go.mod") {
		t.Errorf("error %q does not mention go.mod", err)
	}
}

// TestGenerate_Regeneration tests that regeneration over an existing file
// is clean and idempotent.
func TestGenerate_Regeneration(t *testing.T) {
	dir := scaffold(t, basicManifest)

	if _, err := Generate(dir); err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(dir, DefaultOutput))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if _, err := Generate(dir); err != nil {
		t.Fatalf("second Generate: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(dir, DefaultOutput))
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(first) != string(second) {
		t.Error("regeneration produced different output for unchanged manifest")
	}
}

// TestCheck tests staleness detection across the three states: fresh,
// missing, and edited.
func TestCheck(t *testing.T) {
	dir := scaffold(t, basicManifest)

	res, err := Check(dir)
	if err != nil {
		t.Fatalf("Check before Generate: %v", err)
	}
	if !res.Stale {
		t.Error("Check reported fresh with no generated file on disk")
	}

	if _, err := Generate(dir); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	res, err = Check(dir)
	if err != nil {
		t.Fatalf("Check after Generate: %v", err)
	}
	if res.Stale {
		t.Error("Check reported stale immediately after Generate")
	}

	// Hand-edit the generated file; Check must notice.
	outPath := filepath.Join(dir, DefaultOutput)
	edited, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	mustWrite(t, outPath, string(edited)+"\n// hand edit\n")

	res, err = Check(dir)
	if err != nil {
		t.Fatalf("Check after edit: %v", err)
	}
	if !res.Stale {
		t.Error("Check reported fresh after the generated file was edited")
	}
}

// TestPackageName_Fallbacks tests the inference priority order.
func TestPackageName_Fallbacks(t *testing.T) {
	t.Run("manifest wins", func(t *testing.T) {
		dir := scaffold(t, `package = "override"`+basicManifest)
		m, err := LoadManifest(filepath.Join(dir, ManifestName))
		if err != nil {
			t.Fatalf("LoadManifest: %v", err)
		}
		got, err := packageName(m, dir)
		if err != nil {
			t.Fatalf("packageName: %v", err)
		}
		if got != "override" {
			t.Errorf("packageName = %q, want %q", got, "override")
		}
	})

	t.Run("directory name fallback", func(t *testing.T) {
		root := t.TempDir()
		dir := filepath.Join(root, "settings")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		m := &Manifest{Output: DefaultOutput}
		got, err := packageName(m, dir)
		if err != nil {
			t.Fatalf("packageName: %v", err)
		}
		if got != "settings" {
			t.Errorf("packageName = %q, want %q", got, "settings")
		}
	})
}

// TestSanitizeIdentifier tests directory-name cleanup.
func TestSanitizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"config", "config"},
		{"fluid-let", "fluidlet"},
		{"v2", "v2"},
		{"2fast", "fast"},
		{"---", ""},
		{"_ok", "_ok"},
	}
	for _, tt := range tests {
		if got := sanitizeIdentifier(tt.in); got != tt.want {
			t.Errorf("sanitizeIdentifier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
