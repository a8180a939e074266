package depexport

import (
	"github.com/albertocavalcante/go-depexport/coord"
	"github.com/albertocavalcante/go-depexport/graph"
)

// ResolvedDependency is an alias for graph.Resolved: a dependency resolved to
// a concrete version, with its transitive children.
type ResolvedDependency = graph.Resolved

// Project is a project of a multi-project build.
type Project interface {
	// Coordinate returns the project's group, name and version. The name
	// becomes the output file name.
	Coordinate() coord.Coordinate

	// Configurations returns every configuration of the project.
	Configurations() []Configuration
}

// Configuration is a named dependency request scope.
type Configuration interface {
	// Name is the scope name recorded on every dependency it yields.
	Name() string

	// ResolveLenient returns the best-effort resolution result. An error
	// means the configuration cannot be resolved at all.
	ResolveLenient() (*Resolution, error)
}

// Resolution is a lenient resolution result, split into what resolved and
// what did not.
type Resolution struct {
	// Resolved are the first-level resolved dependencies.
	Resolved []ResolvedDependency

	// Unresolved are the selectors that could not be satisfied.
	Unresolved []coord.Coordinate
}

// StaticProject is a Project backed by fixed values.
type StaticProject struct {
	Coord   coord.Coordinate
	Configs []Configuration
}

// Coordinate implements Project.
func (p *StaticProject) Coordinate() coord.Coordinate { return p.Coord }

// Configurations implements Project.
func (p *StaticProject) Configurations() []Configuration { return p.Configs }

// StaticConfiguration is a Configuration backed by a fixed result. A non-nil
// Err makes the configuration refuse to resolve.
type StaticConfiguration struct {
	ConfigName string
	Resolution *Resolution
	Err        error
}

// Name implements Configuration.
func (c *StaticConfiguration) Name() string { return c.ConfigName }

// ResolveLenient implements Configuration.
func (c *StaticConfiguration) ResolveLenient() (*Resolution, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Resolution, nil
}

// ConfigurationStatus reports what the exporter did with a configuration.
type ConfigurationStatus string

const (
	// StatusResolved indicates the configuration's result was merged.
	StatusResolved ConfigurationStatus = "resolved"

	// StatusSkipped indicates the configuration could not be resolved and
	// was left out of the export.
	StatusSkipped ConfigurationStatus = "skipped"
)

// ConfigurationResult is the outcome for one configuration.
type ConfigurationResult struct {
	// Name is the configuration name.
	Name string `json:"name"`

	// Status is resolved or skipped.
	Status ConfigurationStatus `json:"status"`

	// Err is the skip reason, wrapping ErrConfigurationSkipped. Nil when
	// resolved.
	Err error `json:"-"`
}

// Result describes one project export.
type Result struct {
	// Project is the exported project's coordinate.
	Project coord.Coordinate

	// Path is the file written. Empty when the graph was built but not
	// written (see Analyze).
	Path string

	// Graph is the merged dependency graph.
	Graph *graph.Graph

	// Configurations has one entry per configuration, in project order.
	Configurations []ConfigurationResult
}

// Skipped returns the configurations that were left out of the export.
func (r *Result) Skipped() []ConfigurationResult {
	var skipped []ConfigurationResult
	for _, c := range r.Configurations {
		if c.Status == StatusSkipped {
			skipped = append(skipped, c)
		}
	}
	return skipped
}
