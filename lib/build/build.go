// Package build reports how the tapify binary was built. The values are set
// with -ldflags "-X" at release time and keep their development defaults in
// local builds.
package build

import (
	"fmt"
	"runtime"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Version returns the release version, "dev" for local builds.
func Version() string {
	return version
}

// Commit returns the Git commit the binary was built from.
func Commit() string {
	return commit
}

// Date returns the build date.
func Date() string {
	return date
}

// Summary returns a one-line description of the build.
func Summary() string {
	return fmt.Sprintf("%s (%s, commit %s, %s)", version, date, commit, runtime.Version())
}
