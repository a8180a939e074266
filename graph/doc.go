// Package graph builds and serializes the merged dependency graph of a
// single project.
//
// A Builder collects what each configuration of a project resolved. Resolved
// dependencies keep their transitive children; unresolved dependencies are
// request selectors only. Every discovered node carries the name of the
// configuration (its scope) that produced it.
//
// # Merging
//
// Build sorts resolved dependencies by their coordinate string and merges
// adjacent entries with equal coordinates into one node whose scopes are the
// union of the merged entries. The children of merged entries are combined
// and the same rule is applied again at every level, so a module requested by
// several configurations appears once per level with all of its subgraphs.
//
// Unresolved dependencies are deduplicated by coordinate string. The scope of
// the last configuration that reported one wins.
//
// # Output Formats
//
//	g := b.Build(project)
//
//	// Export document, one JSON object per project
//	data, _ := g.ToJSON("")
//
//	// Graphviz DOT format for visualization
//	dot := g.ToDOT()
//
//	// Human-readable tree
//	text := g.ToText()
package graph
