package depexport

import (
	"cmp"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/albertocavalcante/go-depexport/graph"
)

// ModuleChange represents an added or removed module in an export diff.
type ModuleChange struct {
	// Module is "group:artifact".
	Module string `json:"module"`

	// Version is the module version.
	Version string `json:"version"`

	// Scopes are the scopes the module appeared in.
	Scopes []string `json:"scopes"`

	// Unresolved is true if the module was only present as an unresolved
	// request.
	Unresolved bool `json:"unresolved,omitempty"`
}

// ModuleUpgrade represents a version change for an existing module.
type ModuleUpgrade struct {
	// Module is "group:artifact".
	Module string `json:"module"`

	// OldVersion is the version in the old export.
	OldVersion string `json:"old_version"`

	// NewVersion is the version in the new export.
	NewVersion string `json:"new_version"`
}

// ScopeChange represents a module whose version is unchanged but that is
// requested by a different set of configurations.
type ScopeChange struct {
	Module    string   `json:"module"`
	Version   string   `json:"version"`
	OldScopes []string `json:"old_scopes"`
	NewScopes []string `json:"new_scopes"`
}

// ExportDiff describes the differences between two exports of a project.
//
// Example usage:
//
//	oldGraph, _ := ReadExport(oldPath)
//	newGraph, _ := ReadExport(newPath)
//	diff := DiffExports(oldGraph, newGraph)
//
//	if !diff.IsEmpty() {
//	    fmt.Printf("Changes: %d added, %d removed, %d upgraded, %d downgraded\n",
//	        len(diff.Added), len(diff.Removed), len(diff.Upgraded), len(diff.Downgraded))
//	}
type ExportDiff struct {
	// Added contains modules present in new but not in old.
	Added []ModuleChange `json:"added,omitempty"`

	// Removed contains modules present in old but not in new.
	Removed []ModuleChange `json:"removed,omitempty"`

	// Upgraded contains modules where the new version is higher.
	Upgraded []ModuleUpgrade `json:"upgraded,omitempty"`

	// Downgraded contains modules where the new version is lower.
	Downgraded []ModuleUpgrade `json:"downgraded,omitempty"`

	// ScopesChanged contains modules at the same version whose scopes differ.
	ScopesChanged []ScopeChange `json:"scopes_changed,omitempty"`
}

// IsEmpty returns true if there are no differences between the exports.
func (d *ExportDiff) IsEmpty() bool {
	return d.TotalChanges() == 0
}

// TotalChanges returns the total number of changes.
func (d *ExportDiff) TotalChanges() int {
	return len(d.Added) +
		len(d.Removed) +
		len(d.Upgraded) +
		len(d.Downgraded) +
		len(d.ScopesChanged)
}

// moduleState is what one export says about a module.
type moduleState struct {
	version    string
	scopes     []string
	unresolved bool
}

// DiffExports computes the difference between two export graphs. Every node
// at every depth counts. When a module appears at several versions the
// highest wins.
//
// Versions are compared as semantic versions where both parse, and as
// strings otherwise.
//
// Results are sorted by module for consistent output.
func DiffExports(old, new *graph.Graph) *ExportDiff {
	diff := &ExportDiff{}

	oldModules := collectModules(old)
	newModules := collectModules(new)

	for module, n := range newModules {
		o, existedBefore := oldModules[module]
		switch {
		case !existedBefore:
			diff.Added = append(diff.Added, ModuleChange{
				Module:     module,
				Version:    n.version,
				Scopes:     n.scopes,
				Unresolved: n.unresolved,
			})
		case o.version != n.version:
			// Equal under semver but different strings ("1.0" vs "1.0.0")
			// is not reported.
			switch c := compareVersions(n.version, o.version); {
			case c > 0:
				diff.Upgraded = append(diff.Upgraded, ModuleUpgrade{
					Module:     module,
					OldVersion: o.version,
					NewVersion: n.version,
				})
			case c < 0:
				diff.Downgraded = append(diff.Downgraded, ModuleUpgrade{
					Module:     module,
					OldVersion: o.version,
					NewVersion: n.version,
				})
			}
		case !slices.Equal(o.scopes, n.scopes):
			diff.ScopesChanged = append(diff.ScopesChanged, ScopeChange{
				Module:    module,
				Version:   n.version,
				OldScopes: o.scopes,
				NewScopes: n.scopes,
			})
		}
	}

	for module, o := range oldModules {
		if _, existsNow := newModules[module]; !existsNow {
			diff.Removed = append(diff.Removed, ModuleChange{
				Module:     module,
				Version:    o.version,
				Scopes:     o.scopes,
				Unresolved: o.unresolved,
			})
		}
	}

	slices.SortFunc(diff.Added, func(a, b ModuleChange) int { return cmp.Compare(a.Module, b.Module) })
	slices.SortFunc(diff.Removed, func(a, b ModuleChange) int { return cmp.Compare(a.Module, b.Module) })
	slices.SortFunc(diff.Upgraded, func(a, b ModuleUpgrade) int { return cmp.Compare(a.Module, b.Module) })
	slices.SortFunc(diff.Downgraded, func(a, b ModuleUpgrade) int { return cmp.Compare(a.Module, b.Module) })
	slices.SortFunc(diff.ScopesChanged, func(a, b ScopeChange) int { return cmp.Compare(a.Module, b.Module) })

	return diff
}

// collectModules flattens g into group:artifact -> state. A nil graph is
// empty.
func collectModules(g *graph.Graph) map[string]*moduleState {
	modules := make(map[string]*moduleState)
	if g == nil {
		return modules
	}

	g.Walk(func(dep *graph.Dependency, _ int) bool {
		module := dep.Coordinate.Module()
		version := dep.Coordinate.Version

		state, ok := modules[module]
		switch {
		case !ok:
			modules[module] = &moduleState{
				version:    version,
				scopes:     slices.Clone(dep.Scopes),
				unresolved: dep.Unresolved,
			}
			return true
		case compareVersions(version, state.version) > 0:
			state.version = version
			state.scopes = slices.Clone(dep.Scopes)
			state.unresolved = dep.Unresolved
		case version == state.version:
			state.scopes = append(state.scopes, dep.Scopes...)
			slices.Sort(state.scopes)
			state.scopes = slices.Compact(state.scopes)
			state.unresolved = state.unresolved && dep.Unresolved
		}
		return true
	})

	return modules
}

// compareVersions orders two version strings.
func compareVersions(a, b string) int {
	va, errA := semver.NewVersion(a)
	vb, errB := semver.NewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return cmp.Compare(a, b)
}
