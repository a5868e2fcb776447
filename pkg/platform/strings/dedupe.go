// Package strings normalizes the string sets carried on registry records
// (certifications, simulator features, scenario specialties).
package strings

import "strings"

// NormalizeSet trims every value and drops blanks and repeats, keeping the
// first occurrence order. The result is never nil so an empty set encodes
// as [].
func NormalizeSet(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
