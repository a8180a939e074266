package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	depexport "github.com/albertocavalcante/go-depexport"
	"github.com/albertocavalcante/go-depexport/coord"
)

// ParseYAML parses a YAML or JSON snapshot.
func ParseYAML(data []byte) (*Workspace, error) {
	var doc document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	ws := &Workspace{Root: doc.Root}
	for _, pd := range doc.Projects {
		project := &depexport.StaticProject{Coord: coord.New(pd.Group, pd.Name, pd.Version)}
		for _, cd := range pd.Configurations {
			res, err := cd.resolution()
			if err != nil {
				return nil, fmt.Errorf("project %s, configuration %s: %w", pd.Name, cd.Name, err)
			}
			resolvable := cd.Resolvable == nil || *cd.Resolvable
			project.Configs = append(project.Configs, newConfiguration(cd.Name, resolvable, cd.Error, res))
		}
		ws.Projects = append(ws.Projects, project)
	}
	return ws, nil
}

func (cd configurationDocument) resolution() (*depexport.Resolution, error) {
	res := &depexport.Resolution{}
	for _, dd := range cd.Resolved {
		dep, err := dd.resolved()
		if err != nil {
			return nil, err
		}
		res.Resolved = append(res.Resolved, dep)
	}

	unresolved, err := parseSelectors(cd.Unresolved)
	if err != nil {
		return nil, err
	}
	res.Unresolved = unresolved
	return res, nil
}

func (dd dependencyDocument) resolved() (depexport.ResolvedDependency, error) {
	c, err := coord.Parse(dd.Coordinate)
	if err != nil {
		return depexport.ResolvedDependency{}, fmt.Errorf("resolved dependency: %w", err)
	}
	dep := depexport.ResolvedDependency{Coordinate: c}
	for _, child := range dd.Dependencies {
		resolved, err := child.resolved()
		if err != nil {
			return depexport.ResolvedDependency{}, fmt.Errorf("%s: %w", c, err)
		}
		dep.Children = append(dep.Children, resolved)
	}
	return dep, nil
}
