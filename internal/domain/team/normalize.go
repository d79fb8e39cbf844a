package team

import "strings"

// Normalize maps raw to its canonical nickname. Unknown input is returned
// unchanged.
func Normalize(raw string) string {
	if t, ok := Lookup(raw); ok {
		return t.Nickname
	}
	return raw
}

// IsSame reports whether a and b name the same team. All team equality
// checks go through here because stored names are not consistently cased.
func IsSame(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(Normalize(a)), strings.TrimSpace(Normalize(b)))
}
