// Package generate - manifest loading and validation.
//
// This file decodes the fluidgen.toml manifest and validates every entry
// before any code is emitted. Generation is all-or-nothing: a single bad
// entry fails the run with a message naming the offending variable.
package generate

import (
	"fmt"
	"go/parser"
	"go/token"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file fluidgen looks for in the target directory.
const ManifestName = "fluidgen.toml"

// DefaultOutput is the generated file name when the manifest does not
// override it.
const DefaultOutput = "fluid_vars.go"

// Manifest describes the variables to generate for one package.
type Manifest struct {
	// Package overrides the package name of the generated file. When
	// empty, the name is inferred from existing sources in the target
	// directory, falling back to the directory name.
	Package string `toml:"package"`

	// Output is the generated file name, DefaultOutput when empty.
	Output string `toml:"output"`

	// Vars lists the variables, one [[var]] table per declaration.
	Vars []VarDecl `toml:"var"`
}

// VarDecl is one [[var]] manifest entry.
type VarDecl struct {
	// Name is the Go identifier the variable is declared as.
	Name string `toml:"name"`

	// Type is the element type, as a Go type expression ("bool",
	// "[]string", "map[string]int", "*bytes.Buffer").
	Type string `toml:"type"`

	// Default is the initializer body, as a Go expression evaluated
	// lazily at most once per goroutine. Empty means no default: the
	// variable is declared with fluid.New and unbound reads observe nil.
	Default string `toml:"default"`

	// Doc is attached to the declaration as its comment.
	Doc string `toml:"doc"`
}

// LoadManifest reads and validates the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("load manifest: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load manifest: unknown key %q", undecoded[0].String())
	}

	if !meta.IsDefined("output") {
		m.Output = DefaultOutput
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// validate checks every entry for problems a generated file would only
// reveal as a compile error in someone else's build.
func (m *Manifest) validate() error {
	if len(m.Vars) == 0 {
		return fmt.Errorf("manifest declares no variables (no [[var]] tables)")
	}
	if m.Package != "" && !token.IsIdentifier(m.Package) {
		return fmt.Errorf("package %q: not a valid Go identifier", m.Package)
	}
	if m.Output == "" {
		return fmt.Errorf("output: must not be empty")
	}

	seen := make(map[string]bool, len(m.Vars))
	for i, v := range m.Vars {
		where := fmt.Sprintf("var %d (%q)", i+1, v.Name)

		if v.Name == "" {
			return fmt.Errorf("var %d: missing name", i+1)
		}
		if !token.IsIdentifier(v.Name) {
			return fmt.Errorf("%s: name is not a valid Go identifier", where)
		}
		if seen[v.Name] {
			return fmt.Errorf("%s: duplicate name", where)
		}
		seen[v.Name] = true

		if v.Type == "" {
			return fmt.Errorf("%s: missing type", where)
		}
		if _, err := parser.ParseExpr(v.Type); err != nil {
			return fmt.Errorf("%s: type %q does not parse: %w", where, v.Type, err)
		}

		if v.Default != "" {
			if _, err := parser.ParseExpr(v.Default); err != nil {
				return fmt.Errorf("%s: default %q does not parse: %w", where, v.Default, err)
			}
		}
	}
	return nil
}
