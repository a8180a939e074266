package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/albertocavalcante/go-depexport/coord"
)

const separatorWidth = 60 // Width of separator lines in text output

// Flag is a boolean serialized as the JSON string "true" or "false".
// Consumers of the export format expect "unresolved":"true", not a bare
// boolean. Decoding accepts both forms.
type Flag bool

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	if f {
		return []byte(`"true"`), nil
	}
	return []byte(`"false"`), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = s == "true"
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err != nil {
		return fmt.Errorf("flag must be \"true\", \"false\" or a boolean, got %s", data)
	}
	*f = Flag(b)
	return nil
}

// Node is one object of the export document. The project itself is the root
// node, with empty scopes; its dependencies are the resolved nodes followed by
// the unresolved ones.
type Node struct {
	GroupID      string   `json:"groupId"`
	ArtifactID   string   `json:"artifactId"`
	Version      string   `json:"version"`
	Scopes       []string `json:"scopes"`
	Unresolved   Flag     `json:"unresolved,omitempty"`
	Dependencies []Node   `json:"dependencies"`
}

// Coordinate returns the node's coordinate.
func (n Node) Coordinate() coord.Coordinate {
	return coord.New(n.GroupID, n.ArtifactID, n.Version)
}

// Document returns the export document of the graph.
func (g *Graph) Document() Node {
	root := Node{
		GroupID:      g.Root.Group,
		ArtifactID:   g.Root.Artifact,
		Version:      g.Root.Version,
		Scopes:       []string{},
		Dependencies: make([]Node, 0, len(g.Resolved)+len(g.Unresolved)),
	}
	for _, dep := range g.Resolved {
		root.Dependencies = append(root.Dependencies, toNode(dep))
	}
	for _, dep := range g.Unresolved {
		root.Dependencies = append(root.Dependencies, toNode(dep))
	}
	return root
}

func toNode(dep *Dependency) Node {
	n := Node{
		GroupID:      dep.Coordinate.Group,
		ArtifactID:   dep.Coordinate.Artifact,
		Version:      dep.Coordinate.Version,
		Scopes:       slices.Clone(dep.Scopes),
		Unresolved:   Flag(dep.Unresolved),
		Dependencies: make([]Node, 0, len(dep.Children)),
	}
	if n.Scopes == nil {
		n.Scopes = []string{}
	}
	if dep.Unresolved {
		return n
	}
	for _, child := range dep.Children {
		n.Dependencies = append(n.Dependencies, toNode(child))
	}
	return n
}

// ToJSON outputs the export document. An empty indent produces the compact
// single-line form.
func (g *Graph) ToJSON(indent string) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	if indent != "" {
		encoder.SetIndent("", indent)
	}
	if err := encoder.Encode(g.Document()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseDocument parses an export document.
func ParseDocument(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to parse export document: %w", err)
	}
	return &n, nil
}

// FromDocument rebuilds the graph described by an export document.
func FromDocument(doc *Node) *Graph {
	g := &Graph{
		Root:       doc.Coordinate(),
		Resolved:   []*Dependency{},
		Unresolved: []*Dependency{},
	}
	for _, n := range doc.Dependencies {
		dep := fromNode(n)
		if dep.Unresolved {
			g.Unresolved = append(g.Unresolved, dep)
		} else {
			g.Resolved = append(g.Resolved, dep)
		}
	}
	return g
}

func fromNode(n Node) *Dependency {
	dep := &Dependency{
		Coordinate: n.Coordinate(),
		Scopes:     slices.Clone(n.Scopes),
		Unresolved: bool(n.Unresolved),
		Children:   make([]*Dependency, 0, len(n.Dependencies)),
	}
	if dep.Scopes == nil {
		dep.Scopes = []string{}
	}
	slices.Sort(dep.Scopes)
	for _, child := range n.Dependencies {
		dep.Children = append(dep.Children, fromNode(child))
	}
	return dep
}

// ToDOT outputs the graph in Graphviz DOT format.
func (g *Graph) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	nodes := map[string]string{
		g.Root.String(): dotLabel(g.Root) + ", style=bold",
	}
	edges := make(map[string]bool)

	var visit func(parent coord.Coordinate, deps []*Dependency)
	visit = func(parent coord.Coordinate, deps []*Dependency) {
		for _, dep := range deps {
			key := dep.Coordinate.String()
			if _, ok := nodes[key]; !ok {
				attrs := dotLabel(dep.Coordinate)
				if dep.Unresolved {
					attrs += ", style=dashed"
				}
				nodes[key] = attrs
			}
			edges[fmt.Sprintf("  %q -> %q;\n", parent.String(), key)] = true
			visit(dep.Coordinate, dep.Children)
		}
	}
	visit(g.Root, g.Resolved)
	visit(g.Root, g.Unresolved)

	keys := make([]string, 0, len(nodes))
	for key := range nodes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		buf.WriteString(fmt.Sprintf("  %q [%s];\n", key, nodes[key]))
	}

	buf.WriteString("\n")

	lines := make([]string, 0, len(edges))
	for line := range edges {
		lines = append(lines, line)
	}
	slices.Sort(lines)
	for _, line := range lines {
		buf.WriteString(line)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func dotLabel(c coord.Coordinate) string {
	return fmt.Sprintf(`label="%s\n%s"`, c.Module(), c.Version) //nolint:gocritic // DOT format requires this quote style
}

// ToText outputs a human-readable text representation of the graph.
func (g *Graph) ToText() string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Dependency Graph (project: %s)\n", g.Root.String()))
	buf.WriteString(strings.Repeat("=", separatorWidth) + "\n\n")

	stats := g.Stats()
	buf.WriteString(fmt.Sprintf("Direct dependencies: %d\n", stats.DirectDependencies))
	buf.WriteString(fmt.Sprintf("Transitive dependencies: %d\n", stats.TransitiveDependencies))
	buf.WriteString(fmt.Sprintf("Max depth: %d\n", stats.MaxDepth))
	if stats.UnresolvedDependencies > 0 {
		buf.WriteString(fmt.Sprintf("Unresolved dependencies: %d\n", stats.UnresolvedDependencies))
	}
	if len(stats.Scopes) > 0 {
		buf.WriteString(fmt.Sprintf("Scopes: %s\n", strings.Join(stats.Scopes, ", ")))
	}
	buf.WriteString("\n")

	buf.WriteString("Dependency Tree:\n")
	buf.WriteString(g.Root.String() + "\n")
	all := make([]*Dependency, 0, len(g.Resolved)+len(g.Unresolved))
	all = append(all, g.Resolved...)
	all = append(all, g.Unresolved...)
	printTree(&buf, all, "")

	return buf.String()
}

func printTree(buf *bytes.Buffer, deps []*Dependency, prefix string) {
	for i, dep := range deps {
		isLast := i == len(deps)-1
		connector, childPrefix := "├── ", prefix+"│   "
		if isLast {
			connector, childPrefix = "└── ", prefix+"    "
		}

		buf.WriteString(prefix + connector + dep.Coordinate.String())
		if len(dep.Scopes) > 0 {
			buf.WriteString(" [" + strings.Join(dep.Scopes, ", ") + "]")
		}
		if dep.Unresolved {
			buf.WriteString(" (unresolved)")
		}
		buf.WriteString("\n")

		printTree(buf, dep.Children, childPrefix)
	}
}

// Entry is a flattened graph node, used for tabular output.
type Entry struct {
	Coordinate coord.Coordinate `json:"coordinate"`
	Depth      int              `json:"depth"`
	Scopes     []string         `json:"scopes"`
	Unresolved bool             `json:"unresolved,omitempty"`
}

// ToList flattens the graph in depth-first order.
func (g *Graph) ToList() []Entry {
	var entries []Entry
	g.Walk(func(dep *Dependency, depth int) bool {
		entries = append(entries, Entry{
			Coordinate: dep.Coordinate,
			Depth:      depth,
			Scopes:     dep.Scopes,
			Unresolved: dep.Unresolved,
		})
		return true
	})
	return entries
}
