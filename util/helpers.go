// Package util provides utility functions for environment configuration,
// artifact reference normalization, and version-level classification.
//
//revive:disable-next-line:var-naming
package util

import (
	"os"
	"strconv"
	"strings"

	"github.com/package-url/packageurl-go"
)

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key) // get the env var
	if !ex {                     // not found return default
		return defVal
	}
	return val // return value for env var
}

// GetEnvInt returns an environment variable parsed as an integer, or the default
func GetEnvInt(key string, defVal int) int {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return defVal
	}
	return n
}

// GetEnvFloat returns an environment variable parsed as a float, or the default
func GetEnvFloat(key string, defVal float64) float64 {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return defVal
	}
	return f
}

// IsEmpty checks if a string is empty or contains only whitespace
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

// IsNotEmpty checks if a string is not empty
func IsNotEmpty(s string) bool {
	return !IsEmpty(s)
}

// Contains checks if a string slice contains an item
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// SanitizeKey ensures a database key is valid for ArangoDB.
// ArangoDB keys cannot contain spaces, slashes, or brackets.
func SanitizeKey(key string) string {
	key = strings.TrimSpace(key)

	replacer := strings.NewReplacer(
		" ", "-",
		"/", "-",
		"[", "",
		"]", "",
		"(", "",
		")", "",
	)

	return replacer.Replace(key)
}

// NormalizeArtifactRef removes qualifiers from a PURL-style artifact reference
// but preserves the subpath to maintain artifact identity. Duplicate store
// entries for the same application carry the same normalized reference, which
// is what deduplication keys on.
func NormalizeArtifactRef(ref string) (string, error) {
	parsed, err := packageurl.FromString(ref)
	if err != nil {
		return "", err
	}

	cleaned := packageurl.PackageURL{
		Type:      parsed.Type,
		Namespace: parsed.Namespace,
		Name:      parsed.Name,
		Version:   parsed.Version,
		Subpath:   parsed.Subpath,
		// Qualifiers are intentionally omitted to clean the string
	}

	return strings.ToLower(cleaned.ToString()), nil
}
