// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package stats

import (
	"math/rand"
	"testing"
	"time"

	"github.com/tomtom215/travelworld/internal/countries"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func trips(codes ...string) []TripRef {
	out := make([]TripRef, len(codes))
	for i, c := range codes {
		out[i] = TripRef{CountryCode: c, StartedAt: day(2020, 1, 1+i)}
	}
	return out
}

func TestAggregateEmpty(t *testing.T) {
	t.Parallel()

	d := Aggregate(countries.Default(), nil, nil)

	if d.TotalCountries != 0 || d.TotalTrips != 0 {
		t.Errorf("expected zero counts, got %d countries %d trips", d.TotalCountries, d.TotalTrips)
	}
	if d.PercentWorld != 0 {
		t.Errorf("PercentWorld = %v, want 0", d.PercentWorld)
	}
	if d.MostVisitedCountry != nil {
		t.Errorf("MostVisitedCountry = %+v, want nil", d.MostVisitedCountry)
	}
	if d.FirstTripDate != nil || d.LastTripDate != nil {
		t.Error("date range should be nil for empty input")
	}
	if len(d.Continents) != len(countries.Continents) {
		t.Fatalf("got %d continents, want %d", len(d.Continents), len(countries.Continents))
	}
	for _, c := range d.Continents {
		if c.Visited != 0 || c.Percent != 0 {
			t.Errorf("%s: visited=%d percent=%d, want 0", c.Name, c.Visited, c.Percent)
		}
		if c.Total == 0 {
			t.Errorf("%s: total should come from the registry", c.Name)
		}
	}
}

func TestAggregateUnionSemantics(t *testing.T) {
	t.Parallel()

	reg := countries.Default()

	tests := []struct {
		name        string
		trips       []TripRef
		manual      []string
		wantVisited []string
		notVisited  []string
	}{
		{
			name:        "trip-only country is visited",
			trips:       trips("JP"),
			manual:      nil,
			wantVisited: []string{"JP"},
		},
		{
			name:        "manual-only country is visited",
			trips:       nil,
			manual:      []string{"pe"},
			wantVisited: []string{"PE"},
		},
		{
			name:        "country in both sources counted once",
			trips:       trips("FR", "FR"),
			manual:      []string{"FR", "IT"},
			wantVisited: []string{"FR", "IT"},
		},
		{
			name:        "removed manual country without trips is not visited",
			trips:       trips("FR"),
			manual:      []string{},
			wantVisited: []string{"FR"},
			notVisited:  []string{"IT"},
		},
		{
			name:        "unknown codes are ignored",
			trips:       trips("XK"),
			manual:      []string{"ZZ"},
			wantVisited: []string{},
			notVisited:  []string{"XK", "ZZ"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			d := Aggregate(reg, tt.trips, tt.manual)
			if d.TotalCountries != len(tt.wantVisited) {
				t.Errorf("TotalCountries = %d, want %d", d.TotalCountries, len(tt.wantVisited))
			}
			got := map[string]bool{}
			for _, c := range d.VisitedCodes {
				got[c] = true
			}
			for _, c := range tt.wantVisited {
				if !got[c] {
					t.Errorf("%s should be visited; visited=%v", c, d.VisitedCodes)
				}
			}
			for _, c := range tt.notVisited {
				if got[c] {
					t.Errorf("%s should not be visited", c)
				}
			}
		})
	}
}

func TestAggregateMostVisited(t *testing.T) {
	t.Parallel()

	reg := countries.Default()

	tests := []struct {
		name      string
		trips     []TripRef
		wantCode  string
		wantCount int
		wantName  string
	}{
		{"FR beats JP", trips("FR", "JP", "FR", "FR"), "FR", 3, "France"},
		{"tie goes to first encountered", trips("JP", "FR", "FR", "JP"), "JP", 2, "Japan"},
		{"later country overtakes", trips("JP", "FR", "FR"), "FR", 2, "France"},
		{"lowercase codes counted together", trips("fr", "FR"), "FR", 2, "France"},
		{"unknown code falls back to raw name", trips("XK", "XK"), "XK", 2, "XK"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mv := Aggregate(reg, tt.trips, nil).MostVisitedCountry
			if mv == nil {
				t.Fatal("MostVisitedCountry is nil")
			}
			if mv.Code != tt.wantCode || mv.Count != tt.wantCount || mv.Name != tt.wantName {
				t.Errorf("got %+v, want %s/%s x%d", mv, tt.wantCode, tt.wantName, tt.wantCount)
			}
		})
	}
}

func TestAggregateDateRange(t *testing.T) {
	t.Parallel()

	in := []TripRef{
		{CountryCode: "FR", StartedAt: day(2022, 6, 1)},
		{CountryCode: "JP", StartedAt: day(2019, 3, 15)},
		{CountryCode: "BR", StartedAt: day(2024, 12, 31)},
		{CountryCode: "IT"},
	}
	d := Aggregate(countries.Default(), in, nil)

	if d.FirstTripDate == nil || !d.FirstTripDate.Equal(day(2019, 3, 15)) {
		t.Errorf("FirstTripDate = %v", d.FirstTripDate)
	}
	if d.LastTripDate == nil || !d.LastTripDate.Equal(day(2024, 12, 31)) {
		t.Errorf("LastTripDate = %v", d.LastTripDate)
	}
	if d.TotalTrips != 4 {
		t.Errorf("TotalTrips = %d, want 4", d.TotalTrips)
	}
}

func TestAggregateContinents(t *testing.T) {
	t.Parallel()

	d := Aggregate(countries.Default(), trips("FR", "DE", "JP"), []string{"BR", "FR"})

	want := map[countries.Continent]int{
		countries.Europe:       2,
		countries.Asia:         1,
		countries.SouthAmerica: 1,
		countries.Africa:       0,
	}
	for _, c := range d.Continents {
		if w, ok := want[c.Name]; ok && c.Visited != w {
			t.Errorf("%s visited = %d, want %d", c.Name, c.Visited, w)
		}
		if c.Name == countries.SouthAmerica && c.Percent != 8 {
			t.Errorf("South America percent = %d, want 8 (1/12)", c.Percent)
		}
	}
	if d.PercentWorld != 2.1 {
		t.Errorf("PercentWorld = %v, want 2.1 (4/195)", d.PercentWorld)
	}
	if len(d.TripCodes) != 3 || d.TripCodes[0] != "FR" {
		t.Errorf("TripCodes = %v", d.TripCodes)
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		part, whole int
		want        float64
	}{
		{0, 195, 0},
		{1, 195, 0.5},
		{12, 195, 6.2},
		{195, 195, 100},
		{300, 195, 100},
		{5, 0, 0},
		{-1, 10, 0},
		{1, 3, 33.3},
		{2, 3, 66.7},
	}
	for _, tt := range tests {
		if got := Percent(tt.part, tt.whole); got != tt.want {
			t.Errorf("Percent(%d, %d) = %v, want %v", tt.part, tt.whole, got, tt.want)
		}
	}
}

// TestAggregateBounds checks visited <= |R| and percent in [0, 100] over
// random subsets of the registry, including codes outside it.
func TestAggregateBounds(t *testing.T) {
	t.Parallel()

	reg := countries.Default()
	all := reg.All()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 200; i++ {
		var tr []TripRef
		var manual []string
		for n := rng.Intn(400); n > 0; n-- {
			code := all[rng.Intn(len(all))].Code
			if rng.Intn(10) == 0 {
				code = "Q" + string(rune('A'+rng.Intn(26)))
			}
			if rng.Intn(2) == 0 {
				tr = append(tr, TripRef{CountryCode: code, StartedAt: day(2000+rng.Intn(25), 1, 1)})
			} else {
				manual = append(manual, code)
			}
		}

		d := Aggregate(reg, tr, manual)
		if d.TotalCountries > reg.Len() {
			t.Fatalf("iteration %d: visited %d > registry %d", i, d.TotalCountries, reg.Len())
		}
		if d.PercentWorld < 0 || d.PercentWorld > 100 {
			t.Fatalf("iteration %d: percent %v out of range", i, d.PercentWorld)
		}
		sum := 0
		for _, c := range d.Continents {
			if c.Visited > c.Total {
				t.Fatalf("iteration %d: %s visited %d > total %d", i, c.Name, c.Visited, c.Total)
			}
			sum += c.Visited
		}
		if sum != d.TotalCountries {
			t.Fatalf("iteration %d: continent sum %d != total %d", i, sum, d.TotalCountries)
		}
	}
}

func TestAggregateFullRegistry(t *testing.T) {
	t.Parallel()

	reg := countries.Default()
	var manual []string
	for _, c := range reg.All() {
		manual = append(manual, c.Code)
	}

	d := Aggregate(reg, nil, manual)
	if d.TotalCountries != reg.Len() || d.PercentWorld != 100 {
		t.Errorf("got %d countries at %v%%", d.TotalCountries, d.PercentWorld)
	}
	for _, c := range d.Continents {
		if c.Percent != 100 {
			t.Errorf("%s percent = %d", c.Name, c.Percent)
		}
	}
}
