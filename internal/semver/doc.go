// Package semver implements the three-part version model used for releases:
// parsing a major.minor.patch triple out of arbitrary text, incrementing one
// part, and formatting it back. Pre-release and build metadata are not modeled.
package semver
