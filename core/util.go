package core

import (
	"math"
	"strings"
	"time"
)

// NowFunc is the clock used by the domain packages. Tests may replace it.
var NowFunc = func() time.Time { return time.Now().UTC() }

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// AlmostEqual reports whether a and b differ by less than 1e-9.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
