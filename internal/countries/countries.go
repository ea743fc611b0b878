// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package countries holds the static country registry and the ISO numeric to
// alpha-2 reconciliation table used to shade the world map.
//
// Both tables are immutable after package initialisation and safe for
// concurrent use.
package countries

import (
	"sort"
	"strings"
)

// Continent is one of the six groups used for per-continent statistics.
type Continent string

const (
	Africa       Continent = "Africa"
	Asia         Continent = "Asia"
	Europe       Continent = "Europe"
	NorthAmerica Continent = "North America"
	SouthAmerica Continent = "South America"
	Oceania      Continent = "Oceania"
)

// Continents lists the continent groups in display order.
var Continents = []Continent{Africa, Asia, Europe, NorthAmerica, SouthAmerica, Oceania}

// Country is a registry entry keyed by its ISO alpha-2 code.
type Country struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Continent Continent `json:"continent"`
}

// Registry is a read-only view over a country list.
type Registry struct {
	list        []Country
	byCode      map[string]Country
	byContinent map[Continent][]Country
}

// NewRegistry indexes list. Duplicate codes keep the first entry.
func NewRegistry(list []Country) *Registry {
	r := &Registry{
		list:        make([]Country, 0, len(list)),
		byCode:      make(map[string]Country, len(list)),
		byContinent: make(map[Continent][]Country),
	}
	for _, c := range list {
		c.Code = NormalizeCode(c.Code)
		if _, dup := r.byCode[c.Code]; dup {
			continue
		}
		r.list = append(r.list, c)
		r.byCode[c.Code] = c
		r.byContinent[c.Continent] = append(r.byContinent[c.Continent], c)
	}
	return r
}

var defaultRegistry = NewRegistry(registry)

// Default returns the built-in registry of 195 countries.
func Default() *Registry {
	return defaultRegistry
}

// All returns a copy of every country in registry order.
func (r *Registry) All() []Country {
	out := make([]Country, len(r.list))
	copy(out, r.list)
	return out
}

// Len is the registry size, the denominator of the world percentage.
func (r *Registry) Len() int {
	return len(r.list)
}

// Lookup finds a country by alpha-2 code, case-insensitively.
func (r *Registry) Lookup(code string) (Country, bool) {
	c, ok := r.byCode[NormalizeCode(code)]
	return c, ok
}

// Contains reports whether code is in the registry.
func (r *Registry) Contains(code string) bool {
	_, ok := r.Lookup(code)
	return ok
}

// Name returns the display name for code, or the code itself when unknown.
func (r *Registry) Name(code string) string {
	if c, ok := r.Lookup(code); ok {
		return c.Name
	}
	return code
}

// ContinentOf returns the continent of code; ok is false for unknown codes.
func (r *Registry) ContinentOf(code string) (Continent, bool) {
	c, ok := r.Lookup(code)
	return c.Continent, ok
}

// InContinent returns the countries of a continent in registry order.
func (r *Registry) InContinent(c Continent) []Country {
	list := r.byContinent[c]
	out := make([]Country, len(list))
	copy(out, list)
	return out
}

// Search returns countries whose name or code starts with prefix,
// sorted by name. An empty prefix matches nothing.
func (r *Registry) Search(prefix string) []Country {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}
	var out []Country
	for _, c := range r.list {
		if strings.HasPrefix(strings.ToLower(c.Name), prefix) || strings.HasPrefix(strings.ToLower(c.Code), prefix) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NormalizeCode upper-cases and trims an alpha-2 code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
