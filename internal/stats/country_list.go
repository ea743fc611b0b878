// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package stats

import (
	"github.com/tomtom215/travelworld/internal/countries"
)

// CountryItem is one row of the "my countries" checklist.
type CountryItem struct {
	Code      string              `json:"code"`
	Name      string              `json:"name"`
	Continent countries.Continent `json:"continent"`
	IsVisited bool                `json:"is_visited"`
	HasTrips  bool                `json:"has_trips"`
	// ManualOnly marks countries that can be unticked: visited solely
	// through a manual marker.
	ManualOnly bool `json:"manual_only"`
}

// ContinentGroup is a continent heading with its countries.
type ContinentGroup struct {
	Continent    countries.Continent `json:"continent"`
	Countries    []CountryItem       `json:"countries"`
	VisitedCount int                 `json:"visited_count"`
	TotalCount   int                 `json:"total_count"`
}

// CountryList is the whole checklist plus its grand total.
type CountryList struct {
	Groups       []ContinentGroup `json:"groups"`
	TotalVisited int              `json:"total_visited"`
	TotalCount   int              `json:"total_count"`
}

// BuildCountryList flags every registry country with its visit sources.
func BuildCountryList(reg *countries.Registry, tripCodes, manual []string) CountryList {
	inTrips := toSet(tripCodes)
	inManual := toSet(manual)

	list := CountryList{Groups: make([]ContinentGroup, 0, len(countries.Continents))}
	for _, continent := range countries.Continents {
		members := reg.InContinent(continent)
		g := ContinentGroup{
			Continent:  continent,
			Countries:  make([]CountryItem, 0, len(members)),
			TotalCount: len(members),
		}
		for _, c := range members {
			_, trip := inTrips[c.Code]
			_, marked := inManual[c.Code]
			item := CountryItem{
				Code:       c.Code,
				Name:       c.Name,
				Continent:  c.Continent,
				IsVisited:  trip || marked,
				HasTrips:   trip,
				ManualOnly: marked && !trip,
			}
			if item.IsVisited {
				g.VisitedCount++
			}
			g.Countries = append(g.Countries, item)
		}
		list.TotalVisited += g.VisitedCount
		list.TotalCount += g.TotalCount
		list.Groups = append(list.Groups, g)
	}
	return list
}

func toSet(codes []string) map[string]struct{} {
	m := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		m[countries.NormalizeCode(c)] = struct{}{}
	}
	return m
}
