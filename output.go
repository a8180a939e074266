package depexport

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/albertocavalcante/go-depexport/graph"
)

const (
	// dirPermissions is the mode for created output directories.
	dirPermissions = 0o755

	// filePermissions is the mode for export files. Exports are read by
	// other tools running as the same or another local user.
	filePermissions = 0o644

	fileExtension = ".json"
)

// EncodeRootDir returns the directory segment that identifies a root build
// directory: the standard base64 encoding of its base name. The standard
// alphabet may yield "/", which filepath.Join treats as a separator.
func EncodeRootDir(rootDir string) string {
	return base64.StdEncoding.EncodeToString([]byte(filepath.Base(filepath.Clean(rootDir))))
}

// outputDir returns <base>/.<namespace>/<kind>/<encoded root dir>.
func (c *exportConfig) outputDir() (string, error) {
	if c.rootDir == "" {
		return "", ErrNoRootDir
	}
	base, err := c.resolveOutputBase()
	if err != nil {
		return "", fmt.Errorf("failed to determine output base: %w", err)
	}
	return filepath.Join(base, "."+c.namespace, c.kind, EncodeRootDir(c.rootDir)), nil
}

// outputPath returns the export file for the project named name.
func (c *exportConfig) outputPath(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w %q", ErrInvalidProjectName, name)
	}
	dir, err := c.outputDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, name+fileExtension), nil
}

// writeExport creates the parent directory if needed and writes data to
// path, truncating any existing file. MkdirAll tolerates sibling projects
// creating the same directory concurrently.
func writeExport(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), dirPermissions); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, filePermissions); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// ReadExport reads an export document written by Export and rebuilds its
// graph.
func ReadExport(path string) (*graph.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file: %w", err)
	}
	doc, err := graph.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return graph.FromDocument(doc), nil
}
