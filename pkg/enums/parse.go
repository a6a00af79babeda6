package enums

import (
	"fmt"
	"slices"
	"strings"
)

// lookup finds value among the known members of an enum. fold normalizes input
// before comparison; members are stored already normalized.
func lookup[T ~string](kind, value string, members []T, fold func(string) string) (T, error) {
	normalized := T(fold(strings.TrimSpace(value)))
	if slices.Contains(members, normalized) {
		return normalized, nil
	}
	var zero T
	return zero, fmt.Errorf("invalid %s %q", kind, value)
}
