// Package normalize provides input normalization helpers used by stores
// and handlers before values are persisted or compared.
package normalize

import "strings"

// Email lowercases and trims an email address. Returns "" for blank input.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// MemberID trims and uppercases an external member identifier.
func MemberID(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// Tags trims each tag, drops empties, and de-duplicates case-insensitively
// while preserving first-seen casing and order.
func Tags(tags []string) []string {
	if len(tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, t)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
