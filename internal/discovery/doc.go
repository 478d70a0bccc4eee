// Package discovery finds the manifests a release operates on.
//
// Locate walks up from a start directory until it meets the repository's
// .git directory, recording every manifest on the way, and optionally walks
// down through the start directory's subdirectories. Select then narrows the
// result with a leaf/base/all policy, and DetectMismatches reports manifests
// whose versions disagree.
package discovery
