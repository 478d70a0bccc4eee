// Package release runs a release transaction: locate and select manifests,
// compute the new version, check the repository, then write, commit, tag and
// push in that order. The first failure ends the run; effects already applied
// are left in place and the returned Result records how far the run got.
package release
