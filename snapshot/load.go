package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Load reads a snapshot file, choosing the format by extension. A workspace
// without a root gets the absolute directory of path.
func Load(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var ws *Workspace
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml", ".json":
		ws, err = ParseYAML(data)
	case ".star", ".bzl":
		ws, err = ParseStarlark(filepath.Base(path), data)
	default:
		return nil, fmt.Errorf("%w %q for %s", ErrUnknownFormat, ext, path)
	}
	if err != nil {
		return nil, err
	}

	if ws.Root == "" {
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve snapshot path: %w", err)
		}
		ws.Root = filepath.Dir(abs)
	}
	return ws, nil
}
