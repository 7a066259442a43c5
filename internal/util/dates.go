package util

import (
	"time"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate attempts to parse a document date string against the layouts the
// extraction models are prompted to produce, from most to least specific.
// Returns false when the string is empty or matches no known layout.
func ParseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// CompareDates orders two date strings for timeline sorting. Missing or
// unparseable dates sort before parseable ones, so undated records surface at
// the start of a timeline rather than disappearing into the middle.
// Returns -1, 0, or 1.
func CompareDates(a, b string) int {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return -1
	case !okB:
		return 1
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// DateAfter reports whether a is strictly later than b. It is false whenever
// either side is missing or unparseable, so callers never act on dates they
// cannot actually order.
func DateAfter(a, b string) bool {
	ta, okA := ParseDate(a)
	tb, okB := ParseDate(b)
	if !okA || !okB {
		return false
	}
	return ta.After(tb)
}
