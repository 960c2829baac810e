package seeder

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// emptyToNull trims s and returns nil when nothing is left.
func emptyToNull(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// parseFloatOrNull is lenient: blank, malformed and non-finite values become nil.
func parseFloatOrNull(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// parseIntOrNull is lenient: blank and malformed values become nil.
func parseIntOrNull(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// parseID parses a required integer identifier.
func parseID(column, s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Errorf("%s is required", column)
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid %s %q", column, s)
	}
	return n, nil
}

// parseRequiredFloat parses a double that must be present and well formed.
func parseRequiredFloat(column, s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.Errorf("%s is required", column)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("invalid %s %q", column, s)
	}
	return f, nil
}

// parseBool is true only for a case-insensitive "true".
func parseBool(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
