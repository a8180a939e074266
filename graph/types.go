package graph

import (
	"slices"

	"github.com/albertocavalcante/go-depexport/coord"
)

// Resolved is a dependency that a configuration resolved to a concrete
// module version, together with its transitive children.
type Resolved struct {
	Coordinate coord.Coordinate
	Children   []Resolved
}

// Dependency is a node of the merged graph.
type Dependency struct {
	// Coordinate identifies the module version.
	Coordinate coord.Coordinate

	// Scopes are the configurations that requested this node, sorted.
	Scopes []string

	// Unresolved is true when the request could not be satisfied.
	// Unresolved nodes never have children.
	Unresolved bool

	// Children are the merged transitive dependencies.
	Children []*Dependency
}

// HasScope reports whether the dependency was requested in scope.
func (d *Dependency) HasScope(scope string) bool {
	_, found := slices.BinarySearch(d.Scopes, scope)
	return found
}

// Graph is the merged dependency graph of one project.
type Graph struct {
	// Root is the project coordinate (group, name, version).
	Root coord.Coordinate

	// Resolved are the merged first-level resolved dependencies, sorted by
	// coordinate.
	Resolved []*Dependency

	// Unresolved are the deduplicated unresolved dependencies, sorted by
	// coordinate.
	Unresolved []*Dependency
}

// Stats provides statistics about the graph.
type Stats struct {
	// DirectDependencies is the number of first-level resolved dependencies.
	DirectDependencies int

	// TransitiveDependencies is the number of distinct coordinates reachable
	// below the first level that are not also direct dependencies.
	TransitiveDependencies int

	// UnresolvedDependencies is the number of unresolved dependencies.
	UnresolvedDependencies int

	// MaxDepth is the depth of the deepest resolved node, 1 for direct
	// dependencies and 0 for an empty graph.
	MaxDepth int

	// Scopes lists every scope that appears in the graph, sorted.
	Scopes []string
}
