// Package project locates and parses the optional dac.toml manifest that
// scopes a check run: default loaded modules and checker limits.
package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed dac.toml.
type Manifest struct {
	Package PackageSection `toml:"package"`
	Modules ModulesSection `toml:"modules"`
	Checker CheckerSection `toml:"checker"`
}

// PackageSection names the project.
type PackageSection struct {
	Name string `toml:"name"`
}

// ModulesSection lists modules loaded for every fixture in this project,
// merged with each fixture's own list.
type ModulesSection struct {
	Loaded []string `toml:"loaded"`
}

// CheckerSection carries checker limits.
type CheckerSection struct {
	MaxDiagnostics int `toml:"max_diagnostics"`
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

// DefaultMaxDiagnostics bounds a run's diagnostic bag when the manifest
// does not say otherwise.
const DefaultMaxDiagnostics = 100

// LoadManifest reads and validates a dac.toml file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- manifest path comes from the caller
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}
	return ParseManifest(raw, path)
}

// ParseManifest decodes manifest bytes; path is used in error messages only.
func ParseManifest(raw []byte, path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.Decode(string(raw), &m)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("manifest %q: %w", path, ErrPackageSectionMissing)
	}
	if m.Package.Name == "" {
		return nil, fmt.Errorf("manifest %q: %w", path, ErrPackageNameMissing)
	}
	if m.Checker.MaxDiagnostics <= 0 {
		m.Checker.MaxDiagnostics = DefaultMaxDiagnostics
	}
	return &m, nil
}
