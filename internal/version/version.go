// Package version exposes the version of the verup binary.
package version

import "runtime/debug"

// version is overridden at build time with
// -ldflags "-X github.com/indaco/verup/internal/version.version=x.y.z".
var version = ""

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the binary version without a leading "v". It falls back
// to the module version recorded by `go install`, then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := readBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			if v[0] == 'v' {
				return v[1:]
			}
			return v
		}
	}
	return "dev"
}
