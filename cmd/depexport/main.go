// Command depexport exports the dependency graph of a multi-project build.
package main

import (
	"os"

	"github.com/albertocavalcante/go-depexport/internal/cli"
)

// version can be set during build with -ldflags
var version = "dev"

func main() {
	os.Exit(cli.Execute(version, os.Args[1:], os.Stdout, os.Stderr))
}
