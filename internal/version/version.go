package version

import (
	"fmt"

	"github.com/oshokin/verstamp/internal/encoder"
)

var (
	// Version is the dotted version of the build. It can be overridden via ldflags.
	Version = "0.1.0"
	// Commit is the short git SHA embedded at build time (or "none").
	Commit = "none"
	// BuildTime is the UTC build timestamp embedded at build time.
	BuildTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with the packed version,
// commit and build time. A Version that is not a dotted number is shown as is.
func Full() string {
	packed := "n/a"

	if components, err := encoder.ParseDotted(Version); err == nil {
		bcd, err := encoder.EncodeBCD(components[0], components[1], components[2], components[3])
		if err == nil {
			packed = encoder.FormatBCD(bcd, "")
		}
	}

	return fmt.Sprintf("version: %s (%s), commit: %s, built at: %s", Version, packed, Commit, BuildTime)
}
