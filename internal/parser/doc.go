// Package parser reads and rewrites the version field of project manifests.
//
// A manifest is loaded into a Document, a format-preserving view of the file
// that knows where its version value lives. Setting a new version splices only
// those bytes, so key order, comments and whitespace survive the rewrite.
// TOML manifests are handled with go-toml's unstable parser, JSON manifests
// with gjson/sjson.
package parser
