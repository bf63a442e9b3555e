// Package build holds information about the binary, set at link time with
// -ldflags "-X github.com/scicrunch/sckan-nli/internal/sckannli/build.ReleaseVersion=...".
package build

import "runtime"

var (
	ReleaseVersion = "UNKNOWN_RELEASE_VERSION"
	GitCommit      = "UNKNOWN_GIT_COMMIT"
	BuildTime      = "UNKNOWN_BUILD_TIME"
	GoVersion      = runtime.Version()
)
