package textutil

import "strings"

type filterConfig struct {
	exclude bool
	prefix  bool
	suffix  bool
}

// FilterOption adjusts how Filter matches candidates.
type FilterOption func(*filterConfig)

// Excluding keeps the candidates that match none of the required strings
// instead of those that match all of them.
func Excluding() FilterOption {
	return func(c *filterConfig) { c.exclude = true }
}

// MatchPrefix matches candidates that start with a required string. Combined
// with MatchSuffix it requires exact equality.
func MatchPrefix() FilterOption {
	return func(c *filterConfig) { c.prefix = true }
}

// MatchSuffix matches candidates that end with a required string. Combined
// with MatchPrefix it requires exact equality.
func MatchSuffix() FilterOption {
	return func(c *filterConfig) { c.suffix = true }
}

// Filter returns the elements of list that match every string in required,
// or with Excluding, that match none of them.
//
// Matching is substring containment unless MatchPrefix or MatchSuffix is
// given. The result keeps input order and duplicates. An empty required list
// keeps every element.
func Filter(list []string, required []string, opts ...FilterOption) []string {
	var cfg filterConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var match func(s, sub string) bool
	switch {
	case cfg.prefix && !cfg.suffix:
		match = strings.HasPrefix
	case cfg.suffix && !cfg.prefix:
		match = strings.HasSuffix
	case cfg.prefix && cfg.suffix:
		match = func(s, sub string) bool { return s == sub }
	default:
		match = strings.Contains
	}

	filtered := make([]string, 0, len(list))
	for _, s := range list {
		keep := true
		for _, sub := range required {
			if match(s, sub) == cfg.exclude {
				keep = false
				break
			}
		}
		if keep {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterString is Filter with a single required string.
func FilterString(list []string, required string, opts ...FilterOption) []string {
	return Filter(list, []string{required}, opts...)
}
