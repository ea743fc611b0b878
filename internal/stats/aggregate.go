// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package stats derives visited-country statistics from trips and manual
// markers.
//
// A country is visited when it appears in either source; the result is
// recomputed on every call and never persisted. All functions are pure and
// run over already-fetched snapshots.
package stats

import (
	"math"
	"time"

	"github.com/tomtom215/travelworld/internal/countries"
)

// TripRef is the slice of a trip the aggregator needs.
type TripRef struct {
	CountryCode string
	StartedAt   time.Time
}

// ContinentStat is the visited/total count for one continent.
type ContinentStat struct {
	Name    countries.Continent `json:"name"`
	Visited int                 `json:"visited"`
	Total   int                 `json:"total"`
	// Percent is Visited/Total rounded to a whole number, 0 when Total is 0.
	Percent int `json:"percent"`
}

// MostVisited is the country with the most trips.
type MostVisited struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Dashboard is the aggregate shown on the user's map page.
type Dashboard struct {
	TotalCountries     int             `json:"total_countries"`
	PercentWorld       float64         `json:"percent_world"`
	RegistrySize       int             `json:"registry_size"`
	Continents         []ContinentStat `json:"continents"`
	TotalTrips         int             `json:"total_trips"`
	MostVisitedCountry *MostVisited    `json:"most_visited_country"`
	FirstTripDate      *time.Time      `json:"first_trip_date"`
	LastTripDate       *time.Time      `json:"last_trip_date"`

	// VisitedCodes is the deduplicated union of trip and manual codes.
	VisitedCodes []string `json:"visited_codes"`
	// TripCodes are the distinct codes referenced by trips, in first-seen order.
	TripCodes []string `json:"trip_codes"`
}

// Aggregate computes dashboard statistics.
//
// Codes are normalised to upper case. Codes absent from reg are ignored for
// counting, so TotalCountries never exceeds reg.Len(). Empty input yields zero
// counts and nil MostVisitedCountry, FirstTripDate and LastTripDate.
func Aggregate(reg *countries.Registry, trips []TripRef, manual []string) Dashboard {
	tripCodes := distinctTripCodes(reg, trips)
	visited := VisitedCodes(reg, trips, manual)

	d := Dashboard{
		TotalCountries: len(visited),
		PercentWorld:   Percent(len(visited), reg.Len()),
		RegistrySize:   reg.Len(),
		Continents:     continentStats(reg, visited),
		TotalTrips:     len(trips),
		VisitedCodes:   visited,
		TripCodes:      tripCodes,
	}
	d.MostVisitedCountry = mostVisited(reg, trips)
	d.FirstTripDate, d.LastTripDate = dateRange(trips)
	return d
}

// VisitedCodes returns the union of trip codes and manual codes that exist in
// reg, trip codes first, each in first-seen order.
func VisitedCodes(reg *countries.Registry, trips []TripRef, manual []string) []string {
	seen := make(map[string]struct{}, len(trips)+len(manual))
	out := make([]string, 0, len(trips)+len(manual))
	add := func(code string) {
		code = countries.NormalizeCode(code)
		if _, dup := seen[code]; dup || !reg.Contains(code) {
			return
		}
		seen[code] = struct{}{}
		out = append(out, code)
	}
	for _, t := range trips {
		add(t.CountryCode)
	}
	for _, code := range manual {
		add(code)
	}
	return out
}

// Percent returns part/whole*100 rounded to one decimal place, clamped to
// [0, 100]. A zero whole yields 0.
func Percent(part, whole int) float64 {
	if whole <= 0 || part <= 0 {
		return 0
	}
	if part >= whole {
		return 100
	}
	return math.Round(float64(part)/float64(whole)*1000) / 10
}

func distinctTripCodes(reg *countries.Registry, trips []TripRef) []string {
	return VisitedCodes(reg, trips, nil)
}

func continentStats(reg *countries.Registry, visited []string) []ContinentStat {
	perContinent := make(map[countries.Continent]int, len(countries.Continents))
	for _, code := range visited {
		if c, ok := reg.ContinentOf(code); ok {
			perContinent[c]++
		}
	}

	out := make([]ContinentStat, 0, len(countries.Continents))
	for _, c := range countries.Continents {
		total := len(reg.InContinent(c))
		v := perContinent[c]
		pct := 0
		if total > 0 {
			pct = int(math.Round(float64(v) / float64(total) * 100))
		}
		out = append(out, ContinentStat{Name: c, Visited: v, Total: total, Percent: pct})
	}
	return out
}

// mostVisited counts trips per code. Ties go to the code whose first trip
// appears earliest in trips.
func mostVisited(reg *countries.Registry, trips []TripRef) *MostVisited {
	counts := make(map[string]int, len(trips))
	order := make([]string, 0, len(trips))
	for _, t := range trips {
		code := countries.NormalizeCode(t.CountryCode)
		if code == "" {
			continue
		}
		if counts[code] == 0 {
			order = append(order, code)
		}
		counts[code]++
	}
	if len(order) == 0 {
		return nil
	}

	best := order[0]
	for _, code := range order[1:] {
		if counts[code] > counts[best] {
			best = code
		}
	}
	return &MostVisited{Code: best, Name: reg.Name(best), Count: counts[best]}
}

func dateRange(trips []TripRef) (first, last *time.Time) {
	for _, t := range trips {
		if t.StartedAt.IsZero() {
			continue
		}
		d := t.StartedAt
		if first == nil || d.Before(*first) {
			first = &d
		}
		if last == nil || d.After(*last) {
			last = &d
		}
	}
	return first, last
}
