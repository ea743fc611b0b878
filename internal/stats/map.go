// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package stats

import (
	"github.com/tomtom215/travelworld/internal/countries"
)

// MapRegion is the shading for one geometry feature of the world map.
type MapRegion struct {
	Numeric string                 `json:"numeric"`
	Alpha2  string                 `json:"alpha2,omitempty"`
	Status  countries.RegionStatus `json:"status"`
}

// MapRegions shades the given numeric feature ids. Ids missing from the
// reconciliation table come back as RegionUnknown with no Alpha2. When
// numerics is empty every mapped id is returned.
func MapRegions(numerics, visited []string) []MapRegion {
	if len(numerics) == 0 {
		numerics = countries.NumericCodes()
	}
	set := make(map[string]bool, len(visited))
	for _, code := range visited {
		set[countries.NormalizeCode(code)] = true
	}

	out := make([]MapRegion, 0, len(numerics))
	for _, n := range numerics {
		num := countries.NormalizeNumeric(n)
		a2, _ := countries.Alpha2ForNumeric(num)
		out = append(out, MapRegion{
			Numeric: num,
			Alpha2:  a2,
			Status:  countries.StatusForNumeric(num, set),
		})
	}
	return out
}
