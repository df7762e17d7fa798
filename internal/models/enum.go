package models

import (
	"fmt"
	"strings"
)

// normalizeKey folds a free-form label into the form used by the lookup tables:
// lower case, single spaces, underscores and hyphens treated as spaces.
func normalizeKey(s string) string {
	s = strings.ToLower(s)
	s = strings.NewReplacer("_", " ", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// enumName returns names[v] or "Kind(n)" when v has no name.
func enumName[T ~int](v T, names []string, kind string) string {
	if int(v) >= 0 && int(v) < len(names) && names[v] != "" {
		return names[v]
	}
	return fmt.Sprintf("%s(%d)", kind, int(v))
}
