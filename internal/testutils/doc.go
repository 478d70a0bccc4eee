// Package testutils holds helpers shared by package tests: stdout capture,
// temp manifest files and throwaway git repositories with a local bare remote.
package testutils
