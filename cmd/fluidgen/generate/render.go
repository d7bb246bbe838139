// Package generate - declaration file rendering.
//
// This file turns a validated manifest into Go source: a header marking
// the file generated, the package clause, the fluid import, and one
// declaration per entry. The rendered text is parsed back with go/parser
// as a final sanity check and formatted with go/format, so the emitted
// file is always valid, gofmt-clean Go.
package generate

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"strings"
)

// fluidImportPath is the import the generated declarations rely on.
const fluidImportPath = "github.com/ilammy/fluid-let/fluid"

// render produces the generated file contents.
//
// Parameters:
//   - m: validated manifest
//   - pkg: package name for the generated file
//   - modPath: module containing the target package (recorded in the header)
func render(m *Manifest, pkg, modPath string) ([]byte, error) {
	var b bytes.Buffer

	// The standard generated-code marker, recognized by go tooling.
	fmt.Fprintf(&b, "// Code generated by fluidgen from %s; DO NOT EDIT.\n", ManifestName)
	fmt.Fprintf(&b, "//\n")
	fmt.Fprintf(&b, "// Module: %s\n", modPath)
	fmt.Fprintf(&b, "\n")
	fmt.Fprintf(&b, "package %s\n\n", pkg)
	fmt.Fprintf(&b, "import %q\n\n", fluidImportPath)

	for _, v := range m.Vars {
		writeDoc(&b, v.Doc)
		if v.Default != "" {
			fmt.Fprintf(&b, "var %s = fluid.NewWithDefault(func() %s { return %s })\n\n",
				v.Name, v.Type, v.Default)
		} else {
			fmt.Fprintf(&b, "var %s = fluid.New[%s]()\n\n", v.Name, v.Type)
		}
	}

	src := b.Bytes()

	// The manifest was validated expression by expression, but only a
	// whole-file parse catches interactions (a default expression that
	// closes the function literal early, say).
	fset := token.NewFileSet()
	if _, err := parser.ParseFile(fset, m.Output, src, parser.ParseComments); err != nil {
		return nil, fmt.Errorf("rendered file does not parse: %w", err)
	}

	out, err := format.Source(src)
	if err != nil {
		return nil, fmt.Errorf("format rendered file: %w", err)
	}
	return out, nil
}

// writeDoc writes a doc comment, one // line per manifest line.
func writeDoc(b *bytes.Buffer, doc string) {
	if doc == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(doc, "\n"), "\n") {
		if line == "" {
			fmt.Fprintf(b, "//\n")
			continue
		}
		fmt.Fprintf(b, "// %s\n", line)
	}
}
