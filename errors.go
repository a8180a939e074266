package depexport

import "errors"

// Sentinel errors for export failures.
var (
	// ErrConfigurationSkipped wraps the reason a configuration could not be
	// resolved. It never fails an export.
	ErrConfigurationSkipped = errors.New("configuration skipped")

	// ErrInvalidProjectName indicates the project name cannot be used as an
	// output file name.
	ErrInvalidProjectName = errors.New("invalid project name")

	// ErrNoRootDir indicates no root build directory was configured.
	ErrNoRootDir = errors.New("root build directory not set")
)
