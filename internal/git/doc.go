// Package git is the repository layer of a release, built on go-git.
//
// Repository bundles the state a release needs from the enclosing git
// repository (its root, the remote to push to and the identity commits are
// made with) and exposes the operations the release pipeline performs:
// working-tree status, tag listing, staging, committing, tagging and pushing.
package git
