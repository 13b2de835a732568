// Package util provides utility functions for the backend.
//
//revive:disable-next-line:var-naming
package util

import (
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	npm "github.com/aquasecurity/go-npm-version/pkg"
	pep440 "github.com/aquasecurity/go-pep440-version"
)

// VersionScheme identifies which packaging ecosystem's version rules a
// record's version strings follow.
type VersionScheme string

const (
	// SchemeSemver covers plain semantic versions, the store default.
	SchemeSemver VersionScheme = "semver"
	// SchemeNPM covers npm-published application artifacts.
	SchemeNPM VersionScheme = "npm"
	// SchemePEP440 covers Python-published application artifacts.
	SchemePEP440 VersionScheme = "pep440"
)

// ParseVersionScheme maps a raw scheme string to a known scheme,
// defaulting to semver for anything unrecognized.
func ParseVersionScheme(s string) VersionScheme {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(SchemeNPM):
		return SchemeNPM
	case string(SchemePEP440), "pypi":
		return SchemePEP440
	default:
		return SchemeSemver
	}
}

// ParsedVersion holds parsed semantic version components
type ParsedVersion struct {
	Major *int
	Minor *int
	Patch *int
}

// ParseSemanticVersion parses a version string into numeric components.
// Returns nil values for components that cannot be parsed.
func ParseSemanticVersion(version string) *ParsedVersion {
	if version == "" {
		return &ParsedVersion{}
	}

	// Strip "v" prefix so "v2.1.0" parses the same as "2.1.0"
	cleanVersion := strings.TrimPrefix(version, "v")

	// Try semver parsing first
	v, err := semver.NewVersion(cleanVersion)
	if err == nil {
		major := int(v.Major())
		minor := int(v.Minor())
		patch := int(v.Patch())

		return &ParsedVersion{
			Major: &major,
			Minor: &minor,
			Patch: &patch,
		}
	}

	// Fallback: try to parse manually for versions like "1.2" or "2"
	parts := strings.Split(cleanVersion, ".")
	result := &ParsedVersion{}

	if len(parts) >= 1 {
		if major, err := strconv.Atoi(strings.TrimSpace(parts[0])); err == nil {
			result.Major = &major
		}
	}
	if len(parts) >= 2 {
		if minor, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
			result.Minor = &minor
		}
	}
	if len(parts) >= 3 {
		// Remove any pre-release or build metadata
		patchStr := strings.FieldsFunc(parts[2], func(r rune) bool {
			return r == '-' || r == '+'
		})[0]
		if patch, err := strconv.Atoi(strings.TrimSpace(patchStr)); err == nil {
			result.Patch = &patch
		}
	}

	return result
}

// ClassifyUpdateLevel compares an installed version against the latest
// available version and reports which component the pending update bumps:
// "major", "minor", or "patch". The second return is false when the
// comparison cannot be made or when no update is pending (latest is not
// newer than installed).
//
// Ecosystem-specific parsers decide whether latest is actually newer; the
// component delta itself is always taken from the loose numeric parse so
// that npm and PEP 440 versions classify the same way semver ones do.
func ClassifyUpdateLevel(installed, latest string, scheme VersionScheme) (string, bool) {
	if IsEmpty(installed) || IsEmpty(latest) {
		return "", false
	}

	newer, ok := isNewer(installed, latest, scheme)
	if !ok || !newer {
		return "", false
	}

	from := ParseSemanticVersion(installed)
	to := ParseSemanticVersion(latest)

	if from.Major != nil && to.Major != nil && *to.Major != *from.Major {
		return "major", true
	}
	if from.Minor != nil && to.Minor != nil && *to.Minor != *from.Minor {
		return "minor", true
	}
	// Anything smaller than a minor bump (patch component, pre-release,
	// build metadata) counts as a patch-level update.
	return "patch", true
}

// isNewer reports whether latest sorts after installed under the given scheme.
func isNewer(installed, latest string, scheme VersionScheme) (bool, bool) {
	switch scheme {
	case SchemeNPM:
		from, err := npm.NewVersion(installed)
		if err != nil {
			return isNewerSemver(installed, latest)
		}
		to, err := npm.NewVersion(latest)
		if err != nil {
			return isNewerSemver(installed, latest)
		}
		return from.LessThan(to), true
	case SchemePEP440:
		from, err := pep440.Parse(installed)
		if err != nil {
			return isNewerSemver(installed, latest)
		}
		to, err := pep440.Parse(latest)
		if err != nil {
			return isNewerSemver(installed, latest)
		}
		return from.LessThan(to), true
	default:
		return isNewerSemver(installed, latest)
	}
}

func isNewerSemver(installed, latest string) (bool, bool) {
	from, err := semver.NewVersion(strings.TrimPrefix(installed, "v"))
	if err != nil {
		// Last resort: lexical comparison, same as the store UI falls back to
		return latest > installed, true
	}
	to, err := semver.NewVersion(strings.TrimPrefix(latest, "v"))
	if err != nil {
		return latest > installed, true
	}
	return from.LessThan(to), true
}
