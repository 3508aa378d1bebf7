// Version and build time are injected with go's -ldflags option:
//
//	-X exusiai.dev/forecast-next/internal/pkg/bininfo.Version=...
package bininfo

var (
	// Version is the SemVer version of the binary, with the git commit
	// appended after a plus sign when available.
	Version = "v0.0.0"

	// BuildTime is the time at which the application was built.
	BuildTime = "1970-01-01T00:00:00Z"
)
