package textutil

import "strings"

// ChangeSeparator replaces every occurrence of current in s with replacement.
// An empty current separator leaves s unchanged.
func ChangeSeparator(s, current, replacement string) string {
	if current == "" {
		return s
	}
	return strings.Join(strings.Split(s, current), replacement)
}

// BreakIntoLines puts every space-separated word of s on its own line.
func BreakIntoLines(s string) string {
	return ChangeSeparator(s, " ", "\n")
}
