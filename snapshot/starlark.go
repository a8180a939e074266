package snapshot

import (
	"fmt"

	"github.com/bazelbuild/buildtools/build"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/coord"
	"github.com/albertocavalcante/go-depexport/internal/buildutil"
)

// ParseStarlark parses a Starlark snapshot. filename is used in error
// messages only.
func ParseStarlark(filename string, content []byte) (*Workspace, error) {
	f, err := build.ParseModule(filename, content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	ws := &Workspace{}
	var current *depexport.StaticProject

	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}

		switch buildutil.FuncName(call) {
		case "workspace":
			ws.Root = buildutil.String(call, "root")

		case "project":
			current = &depexport.StaticProject{Coord: coord.New(
				buildutil.String(call, "group"),
				buildutil.String(call, "name"),
				buildutil.String(call, "version"),
			)}
			ws.Projects = append(ws.Projects, current)

		case "configuration":
			if current == nil {
				return nil, fmt.Errorf("%s:%d: configuration() before any project()", filename, line(call))
			}
			conf, err := parseConfiguration(call)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", filename, line(call), err)
			}
			current.Configs = append(current.Configs, conf)
		}
	}

	return ws, nil
}

func parseConfiguration(call *build.CallExpr) (depexport.Configuration, error) {
	name := buildutil.String(call, "name")
	res := &depexport.Resolution{}

	for _, expr := range buildutil.List(call, "resolved") {
		dep, err := parseDep(expr)
		if err != nil {
			return nil, fmt.Errorf("configuration %s: %w", name, err)
		}
		res.Resolved = append(res.Resolved, dep)
	}

	unresolved, err := parseSelectors(buildutil.StringList(call, "unresolved"))
	if err != nil {
		return nil, fmt.Errorf("configuration %s: %w", name, err)
	}
	res.Unresolved = unresolved

	return newConfiguration(
		name,
		buildutil.Bool(call, "resolvable", true),
		buildutil.String(call, "error"),
		res,
	), nil
}

// parseDep accepts a coordinate string or dep("g:a:v", deps = [...]).
func parseDep(expr build.Expr) (depexport.ResolvedDependency, error) {
	switch e := expr.(type) {
	case *build.StringExpr:
		c, err := coord.Parse(e.Value)
		if err != nil {
			return depexport.ResolvedDependency{}, err
		}
		return depexport.ResolvedDependency{Coordinate: c}, nil

	case *build.CallExpr:
		if !buildutil.IsFuncCall(e, "dep") {
			return depexport.ResolvedDependency{}, fmt.Errorf("line %d: want dep(), got %s()", line(e), buildutil.FuncName(e))
		}
		c, err := coord.Parse(buildutil.String(e, ""))
		if err != nil {
			return depexport.ResolvedDependency{}, fmt.Errorf("line %d: %w", line(e), err)
		}
		dep := depexport.ResolvedDependency{Coordinate: c}
		for _, child := range buildutil.List(e, "deps") {
			resolved, err := parseDep(child)
			if err != nil {
				return depexport.ResolvedDependency{}, fmt.Errorf("%s: %w", c, err)
			}
			dep.Children = append(dep.Children, resolved)
		}
		return dep, nil

	default:
		start, _ := expr.Span()
		return depexport.ResolvedDependency{}, fmt.Errorf("line %d: resolved entries must be strings or dep() calls", start.Line)
	}
}

func line(expr build.Expr) int {
	start, _ := expr.Span()
	return start.Line
}
