// Package depexport exports the dependency graph of a multi-project build to
// JSON files on disk.
//
// The host build tool does the resolution. It hands over, per project, the
// lenient resolution result of every configuration: resolved dependencies
// with their transitive graphs, and unresolved request selectors. The
// exporter merges those results into one graph per project and writes it as
// a single JSON document.
//
// # Quick Start
//
//	project := &depexport.StaticProject{
//	    Coord: coord.MustParse("com.acme:app:1.0"),
//	    Configs: []depexport.Configuration{
//	        &depexport.StaticConfiguration{ConfigName: "compile", Resolution: res},
//	    },
//	}
//
//	result, err := depexport.Export(project, depexport.WithRootDir("/src/acme"))
//	// result.Path == "$HOME/.depexport/dependencies/YWNtZQ==/app.json"
//
// # Output Location
//
// Files are written to
//
//	<home>/.<namespace>/<kind>/<base64(root directory name)>/<project name>.json
//
// The encoded root directory segment keeps checkouts with identical project
// names apart. Every project of one build shares the directory; each writes
// its own file and overwrites any previous export of the same project.
//
// # Skipped Configurations
//
// Some configurations refuse to resolve. Their error is recorded in
// [Result.Configurations] with status [StatusSkipped] and the export carries
// on with the remaining configurations. Only filesystem failures fail an
// export.
//
// # Thread Safety
//
// Export may be called concurrently for different projects. [ExportAll] does
// so with a bounded number of workers.
package depexport
