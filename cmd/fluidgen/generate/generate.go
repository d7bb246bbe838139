// Package generate implements fluid variable declaration generation.
//
// The pipeline: decode and validate fluidgen.toml, resolve the enclosing
// Go module and the package name, render the declarations file, and
// either write it (Generate) or compare it against disk (Check).
package generate

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Result reports what a Generate or Check run did.
type Result struct {
	// OutputPath is the generated file's path.
	OutputPath string

	// Vars is the number of declarations rendered.
	Vars int

	// Stale is set by Check when the on-disk file is missing or differs
	// from the rendered output.
	Stale bool
}

// Generate renders the declarations for dir and writes the output file.
//
// The write goes through a temp file in the same directory followed by a
// rename, so a crashed run never leaves a half-written declarations file.
func Generate(dir string) (*Result, error) {
	src, res, err := run(dir)
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp(dir, ".fluidgen-*")
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}
	if err := os.Rename(tmpName, res.OutputPath); err != nil {
		os.Remove(tmpName)
		return nil, fmt.Errorf("write %s: %w", res.OutputPath, err)
	}

	return res, nil
}

// Check renders the declarations for dir and compares them against the
// file on disk without writing anything.
func Check(dir string) (*Result, error) {
	src, res, err := run(dir)
	if err != nil {
		return nil, err
	}

	onDisk, err := os.ReadFile(res.OutputPath)
	if err != nil {
		if os.IsNotExist(err) {
			res.Stale = true
			return res, nil
		}
		return nil, fmt.Errorf("read %s: %w", res.OutputPath, err)
	}

	res.Stale = !bytes.Equal(onDisk, src)
	return res, nil
}

// run executes the shared pipeline up to the rendered bytes.
func run(dir string) ([]byte, *Result, error) {
	manifestPath := filepath.Join(dir, ManifestName)
	m, err := LoadManifest(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	modPath, _, err := modulePath(dir)
	if err != nil {
		return nil, nil, err
	}

	pkg, err := packageName(m, dir)
	if err != nil {
		return nil, nil, err
	}

	src, err := render(m, pkg, modPath)
	if err != nil {
		return nil, nil, err
	}

	return src, &Result{
		OutputPath: filepath.Join(dir, m.Output),
		Vars:       len(m.Vars),
	}, nil
}
