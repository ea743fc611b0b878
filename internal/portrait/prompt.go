// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package portrait

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tomtom215/travelworld/internal/models"
)

// SystemPrompt instructs the model to answer in the four-section layout
// that Parse understands.
const SystemPrompt = `You are a perceptive travel writer. From a traveler's trip log, write a short personal portrait.

Answer in Markdown with exactly these four sections, in this order, each introduced by a level-two heading:

## Archetype
One evocative name for this traveler's style, followed by one sentence explaining it.

## Analysis
Two or three paragraphs on patterns in destinations, timing, trip length and mood.

## Insight
One non-obvious observation the traveler may not have noticed about themselves.

## Recommendation
One concrete next destination with a short reason grounded in the log.

Be warm and specific. Do not invent trips that are not in the log. Do not add other headings.`

// maxNoteRunes bounds how much of each trip's notes goes into the prompt.
const maxNoteRunes = 280

// BuildUserPrompt renders trips, oldest first, as a compact log.
func BuildUserPrompt(trips []models.Trip) string {
	sorted := make([]models.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartedAt.Before(sorted[j].StartedAt)
	})

	countries := make(map[string]struct{})
	var b strings.Builder
	fmt.Fprintf(&b, "Trip log (%d trips):\n", len(sorted))
	for i, t := range sorted {
		countries[t.CountryCode] = struct{}{}

		fmt.Fprintf(&b, "%d. %s (%s)", i+1, t.CountryName, t.CountryCode)
		if t.City != nil {
			fmt.Fprintf(&b, ", %s", *t.City)
		}
		fmt.Fprintf(&b, " from %s", t.StartedAt.Format(models.DateLayout))
		if t.EndedAt != nil {
			days := int(t.EndedAt.Sub(t.StartedAt).Hours()/24) + 1
			fmt.Fprintf(&b, " to %s (%d days)", t.EndedAt.Format(models.DateLayout), days)
		}
		if t.Title != nil {
			fmt.Fprintf(&b, "; title: %q", *t.Title)
		}
		if t.Mood != nil {
			fmt.Fprintf(&b, "; mood: %s", *t.Mood)
		}
		if t.Notes != nil {
			fmt.Fprintf(&b, "; notes: %s", truncateRunes(*t.Notes, maxNoteRunes))
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nDistinct countries: %d\n", len(countries))
	return b.String()
}

func truncateRunes(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
