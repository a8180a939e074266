package snapshot

import (
	"errors"
	"fmt"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/coord"
)

var (
	// ErrUnknownFormat is returned for snapshot files whose extension names
	// no known format.
	ErrUnknownFormat = errors.New("unknown snapshot format")

	// ErrNotResolvable is the resolution error of configurations declared
	// not resolvable.
	ErrNotResolvable = errors.New("configuration is not resolvable")
)

// Workspace is a loaded snapshot of one multi-project build.
type Workspace struct {
	// Root is the root build directory.
	Root string

	// Projects are the build's projects, in snapshot order.
	Projects []depexport.Project
}

// Project returns the project named name, or nil.
func (w *Workspace) Project(name string) depexport.Project {
	for _, p := range w.Projects {
		if p.Coordinate().Artifact == name {
			return p
		}
	}
	return nil
}

// document is the YAML/JSON snapshot schema.
type document struct {
	Root     string            `yaml:"root"`
	Projects []projectDocument `yaml:"projects"`
}

type projectDocument struct {
	Group          string                  `yaml:"group"`
	Name           string                  `yaml:"name"`
	Version        string                  `yaml:"version"`
	Configurations []configurationDocument `yaml:"configurations"`
}

type configurationDocument struct {
	Name       string               `yaml:"name"`
	Resolvable *bool                `yaml:"resolvable,omitempty"`
	Error      string               `yaml:"error,omitempty"`
	Resolved   []dependencyDocument `yaml:"resolved"`
	Unresolved []string             `yaml:"unresolved"`
}

type dependencyDocument struct {
	Coordinate   string               `yaml:"coordinate"`
	Dependencies []dependencyDocument `yaml:"dependencies,omitempty"`
}

// newConfiguration builds a configuration. A non-empty reason or
// resolvable=false makes it refuse to resolve.
func newConfiguration(name string, resolvable bool, reason string, res *depexport.Resolution) *depexport.StaticConfiguration {
	conf := &depexport.StaticConfiguration{ConfigName: name, Resolution: res}
	switch {
	case reason != "":
		conf.Err = errors.New(reason)
	case !resolvable:
		conf.Err = ErrNotResolvable
	}
	return conf
}

// parseSelectors parses unresolved selector strings.
func parseSelectors(selectors []string) ([]coord.Coordinate, error) {
	out := make([]coord.Coordinate, 0, len(selectors))
	for _, s := range selectors {
		c, err := coord.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("unresolved selector: %w", err)
		}
		out = append(out, c)
	}
	return out, nil
}
