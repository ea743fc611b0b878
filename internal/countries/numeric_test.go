// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package countries

import "testing"

func TestNormalizeNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"4", "004"},
		{"040", "040"},
		{" 250 ", "250"},
		{"840", "840"},
		{"abc", "abc"},
		{"-1", "-1"},
		{"1000", "1000"},
	}
	for _, tt := range tests {
		if got := NormalizeNumeric(tt.in); got != tt.want {
			t.Errorf("NormalizeNumeric(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestAlpha2ForNumeric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		numeric string
		want    string
		ok      bool
	}{
		{"250", "FR", true},
		{"392", "JP", true},
		{"4", "AF", true},
		{"275", "PS", true},
		{"010", "AQ", true},
		{"999", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := Alpha2ForNumeric(tt.numeric)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Alpha2ForNumeric(%q) = %q, %v; want %q, %v", tt.numeric, got, ok, tt.want, tt.ok)
		}
	}
}

func TestNumericForAlpha2(t *testing.T) {
	t.Parallel()

	if num, ok := NumericForAlpha2("il"); !ok || num != "376" {
		t.Errorf("NumericForAlpha2(il) = %q, %v", num, ok)
	}
	if _, ok := NumericForAlpha2("ZZ"); ok {
		t.Error("ZZ should not resolve")
	}
}

func TestStatusForNumeric(t *testing.T) {
	t.Parallel()

	visited := map[string]bool{"FR": true}
	tests := []struct {
		numeric string
		want    RegionStatus
	}{
		{"250", RegionVisited},
		{"392", RegionUnvisited},
		{"999", RegionUnknown},
		{"not-a-code", RegionUnknown},
	}
	for _, tt := range tests {
		if got := StatusForNumeric(tt.numeric, visited); got != tt.want {
			t.Errorf("StatusForNumeric(%q) = %s, want %s", tt.numeric, got, tt.want)
		}
	}
}

func TestTableIsBijective(t *testing.T) {
	t.Parallel()

	if len(alpha2ToNumeric) != MappedNumericCodes() {
		t.Errorf("reverse table has %d entries, forward has %d", len(alpha2ToNumeric), MappedNumericCodes())
	}
	if len(NumericCodes()) != MappedNumericCodes() {
		t.Errorf("NumericCodes() length mismatch")
	}
}
