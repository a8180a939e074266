// Package coord provides the module coordinate shared by every node of an
// exported dependency graph.
//
// A coordinate is the (group, artifact, version) triple that identifies a
// module in a host build tool's repository layout. Its canonical string form
// is "group:artifact:version". Coordinates are plain values: two coordinates
// with equal fields are the same module.
//
// Fields are deliberately not validated. Whatever the host build tool reports
// is carried through to the export, including empty strings.
package coord

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is returned when a coordinate string cannot be split into its
// components.
var ErrInvalid = errors.New("invalid coordinate")

// separator joins the coordinate components in the string form.
const separator = ":"

// Coordinate identifies a module version.
type Coordinate struct {
	Group    string
	Artifact string
	Version  string
}

// New returns the coordinate for group, artifact and version.
func New(group, artifact, version string) Coordinate {
	return Coordinate{Group: group, Artifact: artifact, Version: version}
}

// Parse parses "group:artifact:version". A two-part "group:artifact" form is
// accepted and yields an empty version, which is how hosts report selectors
// that never pinned one.
func Parse(s string) (Coordinate, error) {
	parts := strings.Split(strings.TrimSpace(s), separator)
	switch len(parts) {
	case 2:
		return Coordinate{Group: parts[0], Artifact: parts[1]}, nil
	case 3:
		return Coordinate{Group: parts[0], Artifact: parts[1], Version: parts[2]}, nil
	default:
		return Coordinate{}, fmt.Errorf("%w %q: want group:artifact:version", ErrInvalid, s)
	}
}

// MustParse parses a coordinate or panics. Use only for constants/tests.
func MustParse(s string) Coordinate {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// String returns the "group:artifact:version" form.
func (c Coordinate) String() string {
	return c.Group + separator + c.Artifact + separator + c.Version
}

// Module returns the "group:artifact" form, which identifies the module
// independently of its version.
func (c Coordinate) Module() string {
	return c.Group + separator + c.Artifact
}

// IsZero reports whether all components are empty.
func (c Coordinate) IsZero() bool {
	return c == Coordinate{}
}

// Compare orders coordinates by their string form.
func Compare(a, b Coordinate) int {
	return cmp.Compare(a.String(), b.String())
}
