// Package core holds the small set of types shared by every cargotag package:
// the error kinds a release run can fail with and the filesystem abstraction
// used by discovery and the manifest reader/writer.
package core
