package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/coord"
)

func analyze(t *testing.T, p depexport.Project) *depexport.Result {
	t.Helper()
	require.NotNil(t, p)
	result, err := depexport.Analyze(p, depexport.WithRootDir("/work/acme"))
	require.NoError(t, err)
	return result
}

func TestLoad_Formats(t *testing.T) {
	for _, file := range []string{"build.yaml", "DEPS.star"} {
		t.Run(file, func(t *testing.T) {
			ws, err := Load(filepath.Join("testdata", file))
			require.NoError(t, err)

			assert.Equal(t, "/work/acme", ws.Root)
			require.Len(t, ws.Projects, 2)
			assert.Equal(t, coord.MustParse("com.acme:app:1.0"), ws.Projects[0].Coordinate())
			assert.Equal(t, coord.MustParse("com.acme:lib:1.0"), ws.Projects[1].Coordinate())

			result := analyze(t, ws.Project("app"))
			require.Len(t, result.Configurations, 4)

			skipped := result.Skipped()
			require.Len(t, skipped, 2)
			assert.Equal(t, "detached", skipped[0].Name)
			assert.ErrorContains(t, skipped[0].Err, "configuration cannot be resolved")
			assert.Equal(t, "apiElements", skipped[1].Name)
			assert.ErrorIs(t, skipped[1].Err, ErrNotResolvable)

			g := result.Graph
			require.Len(t, g.Resolved, 2)
			assert.Equal(t, "junit:junit:4.13", g.Resolved[0].Coordinate.String())
			assert.Equal(t, []string{"testCompile"}, g.Resolved[0].Scopes)
			require.Len(t, g.Resolved[0].Children, 1)
			assert.Equal(t, "org.hamcrest:hamcrest-core:1.3", g.Resolved[0].Children[0].Coordinate.String())

			bar := g.Resolved[1]
			assert.Equal(t, "org.foo:bar:2.0", bar.Coordinate.String())
			assert.Equal(t, []string{"compile", "testCompile"}, bar.Scopes)
			require.Len(t, bar.Children, 1)
			assert.Equal(t, []string{"compile"}, bar.Children[0].Scopes)

			require.Len(t, g.Unresolved, 1)
			assert.Equal(t, "org.baz:qux:3.0", g.Unresolved[0].Coordinate.String())
		})
	}
}

func TestLoad_FormatsAgree(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "build.yaml"))
	require.NoError(t, err)
	fromStarlark, err := Load(filepath.Join("testdata", "DEPS.star"))
	require.NoError(t, err)

	for _, name := range []string{"app", "lib"} {
		a := analyze(t, fromYAML.Project(name))
		b := analyze(t, fromStarlark.Project(name))
		assert.Equal(t, a.Graph, b.Graph, name)
	}
}

func TestLoad_JSONDefaultsRootToSnapshotDir(t *testing.T) {
	ws, err := Load(filepath.Join("testdata", "build.json"))
	require.NoError(t, err)

	want, err := filepath.Abs("testdata")
	require.NoError(t, err)
	assert.Equal(t, want, ws.Root)
	require.Len(t, ws.Projects, 1)

	result := analyze(t, ws.Projects[0])
	assert.Len(t, result.Graph.Resolved, 1)
	assert.Len(t, result.Graph.Unresolved, 1)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unknown extension", "deps.txt", "", "unknown snapshot format"},
		{"invalid yaml", "deps.yaml", "projects: [", "failed to parse snapshot"},
		{"unknown yaml field", "deps.yaml", "projets: []", "failed to parse snapshot"},
		{
			"invalid resolved coordinate",
			"deps.yaml",
			"projects:\n  - name: app\n    configurations:\n      - name: compile\n        resolved:\n          - coordinate: nope\n",
			"invalid coordinate",
		},
		{
			"invalid unresolved selector",
			"deps.yaml",
			"projects:\n  - name: app\n    configurations:\n      - name: compile\n        unresolved: [nope]\n",
			"unresolved selector",
		},
		{"invalid starlark", "DEPS.star", "project(", "failed to parse DEPS.star"},
		{"configuration before project", "DEPS.star", `configuration(name = "compile")`, "before any project()"},
		{
			"unexpected call in resolved",
			"DEPS.star",
			"project(name = \"app\")\nconfiguration(name = \"compile\", resolved = [module(\"a:b:c\")])\n",
			"want dep(), got module()",
		},
		{
			"unexpected expression in resolved",
			"DEPS.star",
			"project(name = \"app\")\nconfiguration(name = \"compile\", resolved = [42])\n",
			"strings or dep() calls",
		},
		{
			"invalid starlark coordinate",
			"DEPS.star",
			"project(name = \"app\")\nconfiguration(name = \"compile\", resolved = [dep(\"a:b:c:d:e\")])\n",
			"invalid coordinate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseYAML_Empty(t *testing.T) {
	ws, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Empty(t, ws.Projects)
}

func TestParseStarlark_IgnoresOtherStatements(t *testing.T) {
	content := `
X = 1

helper()

project(group = "com.acme", name = "app", version = "1.0")
`
	ws, err := ParseStarlark("DEPS.star", []byte(content))
	require.NoError(t, err)
	require.Len(t, ws.Projects, 1)
	assert.Empty(t, ws.Projects[0].Configurations())
	assert.Empty(t, ws.Root)
}

func TestWorkspaceProject(t *testing.T) {
	ws, err := Load(filepath.Join("testdata", "build.yaml"))
	require.NoError(t, err)

	assert.NotNil(t, ws.Project("lib"))
	assert.Nil(t, ws.Project("missing"))
}
