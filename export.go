package depexport

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/albertocavalcante/go-depexport/graph"
)

// Analyze builds the merged dependency graph of project without writing it.
// Configurations that fail to resolve are skipped and reported in the
// result.
func Analyze(project Project, opts ...Option) (*Result, error) {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return nil, err
	}
	return analyze(project, cfg), nil
}

func analyze(project Project, cfg *exportConfig) *Result {
	logger := cfg.log().With("project", project.Coordinate().String())

	result := &Result{Project: project.Coordinate()}
	b := graph.NewBuilder()

	for _, conf := range project.Configurations() {
		name := conf.Name()
		res, err := conf.ResolveLenient()
		if err != nil {
			logger.Warn("skipping configuration", "configuration", name, "error", err)
			result.Configurations = append(result.Configurations, ConfigurationResult{
				Name:   name,
				Status: StatusSkipped,
				Err:    fmt.Errorf("%w: %s: %w", ErrConfigurationSkipped, name, err),
			})
			continue
		}

		if res != nil {
			b.AddResolved(name, res.Resolved...)
			b.AddUnresolved(name, res.Unresolved...)
			logger.Debug("merged configuration",
				"configuration", name,
				"resolved", len(res.Resolved),
				"unresolved", len(res.Unresolved))
		}
		result.Configurations = append(result.Configurations, ConfigurationResult{
			Name:   name,
			Status: StatusResolved,
		})
	}

	result.Graph = b.Build(project.Coordinate())
	return result
}

// Export builds the merged dependency graph of project and writes it to
// <project name>.json in the output directory, overwriting any previous
// export. Filesystem failures are returned; configuration failures are not.
func Export(project Project, opts ...Option) (*Result, error) {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return nil, err
	}
	return export(project, cfg)
}

func export(project Project, cfg *exportConfig) (*Result, error) {
	path, err := cfg.outputPath(project.Coordinate().Artifact)
	if err != nil {
		return nil, err
	}

	result := analyze(project, cfg)

	data, err := result.Graph.ToJSON(cfg.indent)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", result.Project, err)
	}
	if err := writeExport(path, data); err != nil {
		return nil, fmt.Errorf("failed to export %s: %w", result.Project, err)
	}

	result.Path = path
	cfg.log().Info("exported dependency graph",
		slog.String("project", result.Project.String()),
		slog.String("path", path),
		slog.Int("skipped", len(result.Skipped())))
	return result, nil
}

// ExportAll exports every project, running up to the configured concurrency
// at once. Projects are independent: a failing project does not stop the
// others. The returned slice is parallel to projects and holds nil for each
// failed project; the error joins every project failure.
func ExportAll(projects []Project, opts ...Option) ([]*Result, error) {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return nil, err
	}

	results := make([]*Result, len(projects))
	errs := make([]error, len(projects))

	var g errgroup.Group
	g.SetLimit(cfg.concurrency)
	for i, project := range projects {
		i, project := i, project
		g.Go(func() error {
			results[i], errs[i] = export(project, cfg)
			return nil
		})
	}
	g.Wait()

	return results, errors.Join(errs...)
}

// OutputPath returns the file Export would write for a project named name.
func OutputPath(name string, opts ...Option) (string, error) {
	cfg, err := newExportConfig(opts...)
	if err != nil {
		return "", err
	}
	return cfg.outputPath(name)
}
