package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters subject names by pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName keeps the subjects matching pattern. Patterns with * or ? use
// shell wildcard matching, falling back to matching every non-empty
// *-separated part as a substring (e.g. "*Commons*"); plain patterns match
// as substrings. Matching ignores case.
func (f *Filter) FilterByName(subjects []string, pattern string) []string {
	if pattern == "" {
		return subjects
	}

	pattern = strings.ToLower(pattern)
	hasWildcard := strings.ContainsAny(pattern, "*?")

	var filtered []string
	for _, subject := range subjects {
		name := strings.ToLower(subject)

		if matched, err := filepath.Match(pattern, name); err == nil && matched {
			filtered = append(filtered, subject)
			continue
		}

		if !hasWildcard {
			if strings.Contains(name, pattern) {
				filtered = append(filtered, subject)
			}
			continue
		}

		if partsMatch(name, strings.Split(pattern, "*")) {
			filtered = append(filtered, subject)
		}
	}

	return filtered
}

// partsMatch reports whether name contains every non-empty part, requiring at least one
func partsMatch(name string, parts []string) bool {
	nonEmpty := 0
	for _, part := range parts {
		if part == "" {
			continue
		}
		if strings.Contains(part, "?") || !strings.Contains(name, part) {
			return false
		}
		nonEmpty++
	}
	return nonEmpty > 0
}
