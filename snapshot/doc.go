// Package snapshot loads the resolution state a host build tool dumped for
// export.
//
// A snapshot describes one multi-project build: the root build directory and,
// per project, the lenient resolution result of every configuration. Two
// formats are accepted.
//
// YAML (or JSON), selected by a .yaml, .yml or .json extension:
//
//	root: /work/acme
//	projects:
//	  - group: com.acme
//	    name: app
//	    version: "1.0"
//	    configurations:
//	      - name: compile
//	        resolved:
//	          - coordinate: org.foo:bar:2.0
//	            dependencies:
//	              - coordinate: org.util:core:1.1
//	        unresolved: [org.baz:qux:3.0]
//	      - name: detached
//	        error: configuration cannot be resolved
//
// Starlark, selected by a .star or .bzl extension:
//
//	workspace(root = "/work/acme")
//
//	project(group = "com.acme", name = "app", version = "1.0")
//
//	configuration(
//	    name = "compile",
//	    resolved = [
//	        dep("org.foo:bar:2.0", deps = ["org.util:core:1.1"]),
//	    ],
//	    unresolved = ["org.baz:qux:3.0"],
//	)
//
//	configuration(name = "api", resolvable = False)
//
// Each project() call opens a project; the configuration() calls that follow
// belong to it. A configuration with an error, or with resolvable set to
// false, refuses to resolve and is skipped by the exporter.
//
// When no root is given, the directory holding the snapshot file is the
// root build directory.
package snapshot
