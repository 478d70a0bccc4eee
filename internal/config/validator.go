package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/indaco/cargotag/internal/core"
	"github.com/indaco/cargotag/internal/discovery"
	"github.com/indaco/cargotag/internal/parser"
)

// ValidationResult represents the result of a validation check.
type ValidationResult struct {
	// Category is the validation category (e.g., "Selector", "Manifests").
	Category string

	// Passed indicates if the check passed.
	Passed bool

	// Message provides details about the validation result.
	Message string

	// Warning indicates if this is a warning rather than an error.
	Warning bool
}

// Validator validates a loaded configuration.
type Validator struct {
	cfg         *Config
	validations []ValidationResult
}

// NewValidator creates a new configuration validator.
func NewValidator(cfg *Config) *Validator {
	return &Validator{cfg: cfg}
}

// Validate runs all validation checks and returns the results.
func (v *Validator) Validate() []ValidationResult {
	v.validations = make([]ValidationResult, 0)

	v.validateSelector()
	v.validateManifests()
	v.validateExclude()
	v.validateTagPrefix()
	v.validateRemote()

	return v.validations
}

// addValidation adds a validation result to the list.
func (v *Validator) addValidation(category string, passed bool, message string, warning bool) {
	v.validations = append(v.validations, ValidationResult{
		Category: category,
		Passed:   passed,
		Message:  message,
		Warning:  warning,
	})
}

func (v *Validator) validateSelector() {
	sel, err := discovery.ParseSelector(v.cfg.Selector)
	if err != nil {
		v.addValidation("Selector", false, err.Error(), false)
		return
	}
	if sel == discovery.SelectorNone && v.cfg.ScanSubdirs {
		v.addValidation("Selector", true, "scan-subdirs is set without a selector; runs finding several manifests will fail", true)
		return
	}
	if sel == discovery.SelectorNone {
		v.addValidation("Selector", true, "no selector configured", false)
		return
	}
	v.addValidation("Selector", true, fmt.Sprintf("selector %q is valid", sel), false)
}

func (v *Validator) validateManifests() {
	if len(v.cfg.Manifests) == 0 {
		v.addValidation("Manifests", false, "at least one manifest file name is required", false)
		return
	}

	ok := true
	seen := make(map[string]bool, len(v.cfg.Manifests))
	for _, name := range v.cfg.Manifests {
		switch {
		case seen[name]:
			v.addValidation("Manifests", false, fmt.Sprintf("manifest %q is listed more than once", name), false)
			ok = false
			continue
		case strings.TrimSpace(name) == "":
			v.addValidation("Manifests", false, "manifest file names must not be empty", false)
			ok = false
		case strings.ContainsAny(name, `/\`):
			v.addValidation("Manifests", false, fmt.Sprintf("manifest %q must be a file name, not a path", name), false)
			ok = false
		default:
			if _, supported := parser.FormatForFile(name); !supported {
				v.addValidation("Manifests", false, fmt.Sprintf("manifest %q has no supported format (toml, json)", name), false)
				ok = false
			}
		}
		seen[name] = true
	}
	if ok {
		v.addValidation("Manifests", true, fmt.Sprintf("%d manifest name(s) configured", len(v.cfg.Manifests)), false)
	}
}

func (v *Validator) validateExclude() {
	for _, pattern := range v.cfg.Exclude {
		if _, err := filepath.Match(pattern, ""); err != nil {
			v.addValidation("Exclude", false, fmt.Sprintf("invalid exclude pattern %q: %v", pattern, err), false)
			return
		}
	}
	v.addValidation("Exclude", true, fmt.Sprintf("%d exclude pattern(s) configured", len(v.cfg.Exclude)), false)
}

func (v *Validator) validateTagPrefix() {
	if strings.ContainsAny(v.cfg.TagPrefix, " \t\n*?[~^:\\") {
		v.addValidation("Tag Prefix", false, fmt.Sprintf("tag prefix %q contains characters not allowed in git tag names", v.cfg.TagPrefix), false)
		return
	}
	v.addValidation("Tag Prefix", true, fmt.Sprintf("tags look like %s1.2.3", v.cfg.TagPrefix), false)
}

func (v *Validator) validateRemote() {
	if strings.ContainsAny(v.cfg.Remote, " \t\n") {
		v.addValidation("Remote", false, fmt.Sprintf("remote name %q must not contain whitespace", v.cfg.Remote), false)
		return
	}
	v.addValidation("Remote", true, fmt.Sprintf("pushing to %q", v.cfg.Remote), false)
}

// Validate checks cfg and returns every failed check joined into one
// core.ErrConfig error, or nil.
func (c *Config) Validate() error {
	var errs []error
	for _, r := range NewValidator(c).Validate() {
		if !r.Passed && !r.Warning {
			errs = append(errs, fmt.Errorf("%s: %s", r.Category, r.Message))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", core.ErrConfig, errors.Join(errs...))
}

// HasErrors returns true if any validation failed.
func HasErrors(results []ValidationResult) bool {
	return ErrorCount(results) > 0
}

// ErrorCount returns the number of failed validations.
func ErrorCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if !r.Passed && !r.Warning {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warnings.
func WarningCount(results []ValidationResult) int {
	count := 0
	for _, r := range results {
		if r.Warning {
			count++
		}
	}
	return count
}
