// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package countries

import (
	"sort"
	"strconv"
	"strings"
)

// RegionStatus is how the map widget shades a geometry feature.
type RegionStatus string

const (
	RegionVisited   RegionStatus = "visited"
	RegionUnvisited RegionStatus = "unvisited"
	// RegionUnknown is the neutral shade for numeric codes missing from the
	// reconciliation table.
	RegionUnknown RegionStatus = "unknown"
)

var alpha2ToNumeric = func() map[string]string {
	m := make(map[string]string, len(numericToAlpha2))
	for num, a2 := range numericToAlpha2 {
		m[a2] = num
	}
	return m
}()

// NormalizeNumeric left-pads a numeric code to three digits ("4" -> "004").
// Non-numeric input is returned trimmed and unchanged.
func NormalizeNumeric(code string) string {
	code = strings.TrimSpace(code)
	n, err := strconv.Atoi(code)
	if err != nil || n < 0 || n > 999 {
		return code
	}
	return strconv.Itoa(1000 + n)[1:]
}

// Alpha2ForNumeric maps an ISO numeric code to alpha-2. ok is false when the
// code is not in the table; callers render such regions as RegionUnknown.
func Alpha2ForNumeric(numeric string) (string, bool) {
	a2, ok := numericToAlpha2[NormalizeNumeric(numeric)]
	return a2, ok
}

// NumericForAlpha2 maps an alpha-2 code back to its ISO numeric code.
func NumericForAlpha2(alpha2 string) (string, bool) {
	num, ok := alpha2ToNumeric[NormalizeCode(alpha2)]
	return num, ok
}

// StatusForNumeric resolves a map region's shade given the visited set.
// Unmapped codes are RegionUnknown, never an error.
func StatusForNumeric(numeric string, visited map[string]bool) RegionStatus {
	a2, ok := Alpha2ForNumeric(numeric)
	if !ok {
		return RegionUnknown
	}
	if visited[a2] {
		return RegionVisited
	}
	return RegionUnvisited
}

// MappedNumericCodes returns the number of entries in the table.
func MappedNumericCodes() int {
	return len(numericToAlpha2)
}

// NumericCodes returns every mapped numeric code in ascending order.
func NumericCodes() []string {
	out := make([]string, 0, len(numericToAlpha2))
	for num := range numericToAlpha2 {
		out = append(out, num)
	}
	sort.Strings(out)
	return out
}
