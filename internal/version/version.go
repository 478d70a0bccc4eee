// Package version reports the cargotag build version.
package version

import "runtime/debug"

// version is set at build time with -ldflags "-X github.com/indaco/cargotag/internal/version.version=1.2.3".
var version = ""

// GetVersion returns the build version without a leading "v", falling back
// to the module version recorded by the Go toolchain and then to "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			if v[0] == 'v' {
				return v[1:]
			}
			return v
		}
	}
	return "dev"
}
