// Package config loads, validates and saves the optional .cargotag.yaml
// file holding per-project defaults for release runs.
package config
