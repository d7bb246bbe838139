// Package generate - Go module resolution for the target package.
//
// Generated files record the module they belong to, and generation
// refuses to run outside a module: a declarations file that cannot
// resolve its fluid import would fail in a confusing place later.
package generate

import (
	"fmt"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
)

// modulePath finds the module containing dir.
//
// It walks up from dir looking for go.mod and parses the module directive.
//
// Returns:
//   - module path (e.g. "example.com/myproject")
//   - directory containing go.mod
//   - error when no go.mod is found or it does not parse
func modulePath(dir string) (string, string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("resolve %s: %w", dir, err)
	}

	for d := abs; ; {
		modPath := filepath.Join(d, "go.mod")
		if data, err := os.ReadFile(modPath); err == nil {
			mf, err := modfile.Parse(modPath, data, nil)
			if err != nil {
				return "", "", fmt.Errorf("parse %s: %w", modPath, err)
			}
			if mf.Module == nil {
				return "", "", fmt.Errorf("%s: missing module directive", modPath)
			}
			return mf.Module.Mod.Path, d, nil
		}

		parent := filepath.Dir(d)
		if parent == d {
			// Reached filesystem root.
			return "", "", fmt.Errorf("%s is not inside a Go module (no go.mod found)", dir)
		}
		d = parent
	}
}

// packageName determines the package name for the generated file.
//
// Priority:
//  1. The manifest's explicit package setting.
//  2. The package clause of any existing .go file in dir other than the
//     output file itself.
//  3. The directory base name, sanitized to an identifier.
func packageName(m *Manifest, dir string) (string, error) {
	if m.Package != "" {
		return m.Package, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", dir, err)
	}

	fset := token.NewFileSet()
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".go") {
			continue
		}
		if name == m.Output || strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.PackageClauseOnly)
		if err != nil {
			// A broken sibling file is not fluidgen's problem; the
			// next file may still name the package.
			continue
		}
		return f.Name.Name, nil
	}

	base := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		base = filepath.Base(abs)
	}
	ident := sanitizeIdentifier(base)
	if ident == "" {
		return "", fmt.Errorf("cannot infer package name for %s; set package in %s", dir, ManifestName)
	}
	return ident, nil
}

// sanitizeIdentifier strips characters a directory name may carry but an
// identifier may not ("fluid-let" -> "fluidlet").
func sanitizeIdentifier(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
			b.WriteRune(r)
		case r >= '0' && r <= '9':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
		}
	}
	out := b.String()
	if !token.IsIdentifier(out) {
		return ""
	}
	return out
}
