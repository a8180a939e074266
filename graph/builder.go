package graph

import (
	"slices"

	"github.com/albertocavalcante/go-depexport/coord"
)

// Builder collects the resolution results of a project's configurations and
// merges them into a Graph.
type Builder struct {
	resolved   []*Dependency
	unresolved map[string]*Dependency
}

// NewBuilder creates a new graph builder.
func NewBuilder() *Builder {
	return &Builder{
		unresolved: make(map[string]*Dependency),
	}
}

// AddResolved records the first-level resolved dependencies of a
// configuration. Every node of every subtree is tagged with scope.
func (b *Builder) AddResolved(scope string, deps ...Resolved) {
	for _, dep := range deps {
		b.resolved = append(b.resolved, tag(dep, scope))
	}
}

// AddUnresolved records the unresolved selectors of a configuration.
// A selector already recorded by an earlier configuration takes the new
// scope.
func (b *Builder) AddUnresolved(scope string, selectors ...coord.Coordinate) {
	for _, c := range selectors {
		b.unresolved[c.String()] = &Dependency{
			Coordinate: c,
			Scopes:     []string{scope},
			Unresolved: true,
			Children:   []*Dependency{},
		}
	}
}

// Build merges everything recorded so far into the graph rooted at project.
// The builder may keep collecting afterwards; Build does not alias its state.
func (b *Builder) Build(project coord.Coordinate) *Graph {
	g := &Graph{
		Root:       project,
		Resolved:   merge(b.resolved),
		Unresolved: make([]*Dependency, 0, len(b.unresolved)),
	}

	for _, dep := range b.unresolved {
		g.Unresolved = append(g.Unresolved, &Dependency{
			Coordinate: dep.Coordinate,
			Scopes:     slices.Clone(dep.Scopes),
			Unresolved: true,
			Children:   []*Dependency{},
		})
	}
	slices.SortFunc(g.Unresolved, byCoordinate)

	return g
}

// tag converts a resolved subtree into graph nodes carrying scope.
func tag(r Resolved, scope string) *Dependency {
	dep := &Dependency{
		Coordinate: r.Coordinate,
		Scopes:     []string{scope},
		Children:   make([]*Dependency, 0, len(r.Children)),
	}
	for _, child := range r.Children {
		dep.Children = append(dep.Children, tag(child, scope))
	}
	return dep
}

// merge sorts deps by coordinate and folds adjacent equal coordinates into a
// single node. The input is not modified.
func merge(deps []*Dependency) []*Dependency {
	sorted := slices.Clone(deps)
	slices.SortStableFunc(sorted, byCoordinate)

	out := make([]*Dependency, 0, len(sorted))
	for _, dep := range sorted {
		if n := len(out); n > 0 && out[n-1].Coordinate == dep.Coordinate {
			last := out[n-1]
			last.Scopes = unionScopes(last.Scopes, dep.Scopes)
			last.Children = append(last.Children, dep.Children...)
			continue
		}
		out = append(out, &Dependency{
			Coordinate: dep.Coordinate,
			Scopes:     unionScopes(nil, dep.Scopes),
			Children:   slices.Clone(dep.Children),
		})
	}

	for _, dep := range out {
		dep.Children = merge(dep.Children)
	}
	return out
}

// unionScopes returns the sorted union of a and b without duplicates.
func unionScopes(a, b []string) []string {
	out := make([]string, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

func byCoordinate(a, b *Dependency) int {
	return coord.Compare(a.Coordinate, b.Coordinate)
}
