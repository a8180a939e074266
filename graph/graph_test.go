package graph

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albertocavalcante/go-depexport/coord"
)

var project = coord.MustParse("com.acme:app:1.0")

func leaf(s string) Resolved {
	return Resolved{Coordinate: coord.MustParse(s)}
}

func with(s string, children ...Resolved) Resolved {
	return Resolved{Coordinate: coord.MustParse(s), Children: children}
}

// Helper to create a test graph:
//
//	com.acme:app:1.0
//	├── org.foo:bar:2.0 [compile, testCompile]
//	│   └── org.util:core:1.1 [compile, testCompile]
//	├── org.log:api:1.7 [runtime]
//	└── org.baz:qux:3.0 [testCompile] (unresolved)
func createTestGraph() *Graph {
	b := NewBuilder()
	b.AddResolved("compile", with("org.foo:bar:2.0", leaf("org.util:core:1.1")))
	b.AddResolved("runtime", leaf("org.log:api:1.7"))
	b.AddResolved("testCompile", with("org.foo:bar:2.0", leaf("org.util:core:1.1")))
	b.AddUnresolved("testCompile", coord.MustParse("org.baz:qux:3.0"))
	return b.Build(project)
}

func TestBuild_Scenario(t *testing.T) {
	b := NewBuilder()
	b.AddResolved("compile", leaf("org.foo:bar:2.0"))
	b.AddUnresolved("testCompile", coord.MustParse("org.baz:qux:3.0"))

	data, err := b.Build(project).ToJSON("")
	require.NoError(t, err)

	assert.JSONEq(t, `{"groupId":"com.acme","artifactId":"app","version":"1.0","scopes":[],"dependencies":[
		{"groupId":"org.foo","artifactId":"bar","version":"2.0","scopes":["compile"],"dependencies":[]},
		{"groupId":"org.baz","artifactId":"qux","version":"3.0","scopes":["testCompile"],"unresolved":"true","dependencies":[]}]}`,
		string(data))
}

func TestBuild_ScopesMerged(t *testing.T) {
	b := NewBuilder()
	b.AddResolved("compile", leaf("org.foo:bar:2.0"))
	b.AddResolved("testCompile", leaf("org.foo:bar:2.0"))

	g := b.Build(project)

	require.Len(t, g.Resolved, 1)
	assert.ElementsMatch(t, []string{"compile", "testCompile"}, g.Resolved[0].Scopes)
	assert.True(t, g.Resolved[0].HasScope("compile"))
	assert.False(t, g.Resolved[0].HasScope("runtime"))
}

func TestBuild_NoDuplicateTriples(t *testing.T) {
	g := createTestGraph()

	seen := make(map[string]bool)
	var check func(deps []*Dependency)
	check = func(deps []*Dependency) {
		level := make(map[string]bool)
		for _, dep := range deps {
			key := dep.Coordinate.String()
			assert.False(t, level[key], "duplicate %s at one level", key)
			level[key] = true
			seen[key] = true
			check(dep.Children)
		}
	}
	check(g.Resolved)

	assert.Equal(t, map[string]bool{
		"org.foo:bar:2.0":   true,
		"org.util:core:1.1": true,
		"org.log:api:1.7":   true,
	}, seen)
}

func TestBuild_SortedByName(t *testing.T) {
	b := NewBuilder()
	b.AddResolved("compile", leaf("org.zeta:z:1"), leaf("com.alpha:a:1"), leaf("net.mid:m:1"))

	g := b.Build(project)

	var got []string
	for _, dep := range g.Resolved {
		got = append(got, dep.Coordinate.String())
	}
	assert.Equal(t, []string{"com.alpha:a:1", "net.mid:m:1", "org.zeta:z:1"}, got)
}

func TestBuild_MergesChildrenOfEqualCoordinates(t *testing.T) {
	b := NewBuilder()
	b.AddResolved("compile", with("org.foo:bar:2.0", leaf("org.a:a:1")))
	b.AddResolved("runtime", with("org.foo:bar:2.0", leaf("org.b:b:1"), leaf("org.a:a:1")))

	g := b.Build(project)

	require.Len(t, g.Resolved, 1)
	children := g.Resolved[0].Children
	require.Len(t, children, 2)
	assert.Equal(t, "org.a:a:1", children[0].Coordinate.String())
	assert.Equal(t, []string{"compile", "runtime"}, children[0].Scopes)
	assert.Equal(t, "org.b:b:1", children[1].Coordinate.String())
	assert.Equal(t, []string{"runtime"}, children[1].Scopes)
}

func TestBuild_UnresolvedDeduplicated(t *testing.T) {
	b := NewBuilder()
	qux := coord.MustParse("org.baz:qux:3.0")
	b.AddUnresolved("compile", qux)
	b.AddUnresolved("testCompile", qux, coord.MustParse("org.abc:x:1"))

	g := b.Build(project)

	require.Len(t, g.Unresolved, 2)
	assert.Equal(t, "org.abc:x:1", g.Unresolved[0].Coordinate.String())
	assert.Equal(t, qux, g.Unresolved[1].Coordinate)
	assert.Equal(t, []string{"testCompile"}, g.Unresolved[1].Scopes, "last scope wins")
	for _, dep := range g.Unresolved {
		assert.True(t, dep.Unresolved)
		assert.Empty(t, dep.Children)
	}
}

func TestBuild_Empty(t *testing.T) {
	data, err := NewBuilder().Build(project).ToJSON("")
	require.NoError(t, err)

	assert.JSONEq(t, `{"groupId":"com.acme","artifactId":"app","version":"1.0","scopes":[],"dependencies":[]}`, string(data))
}

func TestBuild_DoesNotAliasBuilderState(t *testing.T) {
	b := NewBuilder()
	b.AddResolved("compile", leaf("org.foo:bar:2.0"))
	first := b.Build(project)

	b.AddResolved("runtime", leaf("org.foo:bar:2.0"))
	second := b.Build(project)

	assert.Equal(t, []string{"compile"}, first.Resolved[0].Scopes)
	assert.Equal(t, []string{"compile", "runtime"}, second.Resolved[0].Scopes)
}

func TestToJSON_Indent(t *testing.T) {
	g := createTestGraph()

	compact, err := g.ToJSON("")
	require.NoError(t, err)
	indented, err := g.ToJSON("  ")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(strings.TrimSpace(string(compact)), "\n")+1)
	assert.Greater(t, strings.Count(string(indented), "\n"), 5)
	assert.JSONEq(t, string(compact), string(indented))
	assert.True(t, json.Valid(compact))
}

func TestToJSON_UnresolvedIsString(t *testing.T) {
	data, err := createTestGraph().ToJSON("")
	require.NoError(t, err)

	assert.Contains(t, string(data), `"unresolved":"true"`)
	assert.NotContains(t, string(data), `"unresolved":true`)
	assert.NotContains(t, string(data), `"unresolved":"false"`)
}

func TestRoundTrip(t *testing.T) {
	g := createTestGraph()
	data, err := g.ToJSON("")
	require.NoError(t, err)

	doc, err := ParseDocument(data)
	require.NoError(t, err)

	assert.Equal(t, g, FromDocument(doc))
}

func TestRoundTrip_IndependentOfConfigurationOrder(t *testing.T) {
	type config struct {
		scope string
		deps  []Resolved
	}
	configs := []config{
		{"compile", []Resolved{with("org.foo:bar:2.0", leaf("org.util:core:1.1"))}},
		{"runtime", []Resolved{leaf("org.log:api:1.7"), leaf("org.foo:bar:2.0")}},
		{"testCompile", []Resolved{with("org.junit:junit:4.13", leaf("org.hamcrest:core:1.3"))}},
	}
	orders := [][]int{{0, 1, 2}, {2, 1, 0}, {1, 0, 2}}

	var docs []string
	for _, order := range orders {
		b := NewBuilder()
		for _, i := range order {
			b.AddResolved(configs[i].scope, configs[i].deps...)
		}
		data, err := b.Build(project).ToJSON("")
		require.NoError(t, err)
		docs = append(docs, string(data))
	}

	for _, doc := range docs[1:] {
		assert.Equal(t, docs[0], doc)
	}
}

func TestParseDocument_Invalid(t *testing.T) {
	_, err := ParseDocument([]byte(`{"groupId":`))
	require.Error(t, err)
}

func TestFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    Flag
		wantErr bool
	}{
		{`"true"`, true, false},
		{`"false"`, false, false},
		{`true`, true, false},
		{`false`, false, false},
		{`"yes"`, false, false},
		{`1`, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var f Flag
			err := f.UnmarshalJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, f)
		})
	}
}

func TestToJSON_ResolvedNodesOmitUnresolvedKey(t *testing.T) {
	data, err := createTestGraph().ToJSON("")
	require.NoError(t, err)

	var root map[string]any
	require.NoError(t, json.Unmarshal(data, &root))
	assert.NotContains(t, root, "unresolved")

	var check func(node map[string]any)
	check = func(node map[string]any) {
		for _, d := range node["dependencies"].([]any) {
			dep := d.(map[string]any)
			if dep["artifactId"] == "qux" {
				assert.Equal(t, "true", dep["unresolved"])
				continue
			}
			assert.NotContains(t, dep, "unresolved", "resolved node %s:%s", dep["groupId"], dep["artifactId"])
			check(dep)
		}
	}
	check(root)
	assert.NotContains(t, string(data), `"false"`)
}

func TestStats(t *testing.T) {
	stats := createTestGraph().Stats()

	assert.Equal(t, 2, stats.DirectDependencies)
	assert.Equal(t, 1, stats.TransitiveDependencies)
	assert.Equal(t, 1, stats.UnresolvedDependencies)
	assert.Equal(t, 2, stats.MaxDepth)
	assert.Equal(t, []string{"compile", "runtime", "testCompile"}, stats.Scopes)
}

func TestWhy(t *testing.T) {
	g := createTestGraph()

	chains, err := g.Why("org.util:core")
	require.NoError(t, err)
	require.Len(t, chains, 1)
	assert.Equal(t, "org.foo:bar:2.0 -> org.util:core:1.1", chains[0].String())

	chains, err = g.Why("org.baz:qux")
	require.NoError(t, err)
	assert.Equal(t, "org.baz:qux:3.0", chains[0].String())

	_, err = g.Why("org.missing:nope")
	require.Error(t, err)
}

func TestToText(t *testing.T) {
	text := createTestGraph().ToText()

	assert.Contains(t, text, "Dependency Graph (project: com.acme:app:1.0)")
	assert.Contains(t, text, "├── org.foo:bar:2.0 [compile, testCompile]")
	assert.Contains(t, text, "│   └── org.util:core:1.1 [compile, testCompile]")
	assert.Contains(t, text, "└── org.baz:qux:3.0 [testCompile] (unresolved)")
	assert.Contains(t, text, "Unresolved dependencies: 1")
}

func TestToDOT(t *testing.T) {
	dot := createTestGraph().ToDOT()

	assert.True(t, strings.HasPrefix(dot, "digraph dependencies {"))
	assert.Contains(t, dot, `"com.acme:app:1.0" -> "org.foo:bar:2.0";`)
	assert.Contains(t, dot, `"org.foo:bar:2.0" -> "org.util:core:1.1";`)
	assert.Contains(t, dot, "style=dashed")
	assert.Contains(t, dot, "style=bold")
	assert.Equal(t, dot, createTestGraph().ToDOT(), "output is deterministic")
}

func TestToList(t *testing.T) {
	entries := createTestGraph().ToList()

	require.Len(t, entries, 4)
	assert.Equal(t, "org.foo:bar:2.0", entries[0].Coordinate.String())
	assert.Equal(t, 1, entries[0].Depth)
	assert.Equal(t, "org.util:core:1.1", entries[1].Coordinate.String())
	assert.Equal(t, 2, entries[1].Depth)
	assert.True(t, entries[3].Unresolved)
}
