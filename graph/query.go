package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depexport/coord"
)

// Walk calls fn for every resolved node in depth-first order, then for every
// unresolved node. depth is 1 for first-level dependencies. Returning false
// from fn skips the children of that node.
func (g *Graph) Walk(fn func(dep *Dependency, depth int) bool) {
	var walk func(deps []*Dependency, depth int)
	walk = func(deps []*Dependency, depth int) {
		for _, dep := range deps {
			if fn(dep, depth) {
				walk(dep.Children, depth+1)
			}
		}
	}
	walk(g.Resolved, 1)
	walk(g.Unresolved, 1)
}

// Chain is a path of coordinates from a first-level dependency down to a
// matched node.
type Chain []coord.Coordinate

// String returns the chain joined with arrows.
func (c Chain) String() string {
	parts := make([]string, len(c))
	for i, key := range c {
		parts[i] = key.String()
	}
	return strings.Join(parts, " -> ")
}

// Why returns every chain that leads to a node whose "group:artifact" is
// module. It returns an error if the module does not appear in the graph.
func (g *Graph) Why(module string) ([]Chain, error) {
	var chains []Chain
	var walk func(deps []*Dependency, prefix Chain)
	walk = func(deps []*Dependency, prefix Chain) {
		for _, dep := range deps {
			path := append(slices.Clone(prefix), dep.Coordinate)
			if dep.Coordinate.Module() == module {
				chains = append(chains, path)
			}
			walk(dep.Children, path)
		}
	}
	walk(g.Resolved, nil)
	walk(g.Unresolved, nil)

	if len(chains) == 0 {
		return nil, fmt.Errorf("module %q not found in graph of %s", module, g.Root)
	}
	return chains, nil
}

// Stats returns statistics about the graph.
func (g *Graph) Stats() Stats {
	stats := Stats{
		DirectDependencies:     len(g.Resolved),
		UnresolvedDependencies: len(g.Unresolved),
	}

	direct := make(map[coord.Coordinate]bool, len(g.Resolved))
	for _, dep := range g.Resolved {
		direct[dep.Coordinate] = true
	}

	transitive := make(map[coord.Coordinate]bool)
	var scopes []string
	g.Walk(func(dep *Dependency, depth int) bool {
		scopes = append(scopes, dep.Scopes...)
		if dep.Unresolved {
			return false
		}
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if depth > 1 && !direct[dep.Coordinate] {
			transitive[dep.Coordinate] = true
		}
		return true
	})

	stats.TransitiveDependencies = len(transitive)
	slices.Sort(scopes)
	stats.Scopes = slices.Compact(scopes)
	return stats
}
