// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

// Package portrait generates and serves the AI "traveler portrait".
//
// Generation is guarded by a Gate (minimum trip count plus cooldown), calls a
// Generator (Gemini over REST behind a circuit breaker), and appends the raw
// model output to the portrait log. Reads parse the newest entry into its
// four sections.
package portrait

import (
	"strings"
)

// Parsed is a portrait split into its sections. Raw always holds the full
// model output so clients can fall back to it when a section is missing.
type Parsed struct {
	Archetype      string `json:"archetype"`
	Analysis       string `json:"analysis"`
	Insight        string `json:"insight"`
	Recommendation string `json:"recommendation"`
	Raw            string `json:"raw"`
}

// Complete reports whether every section was found.
func (p Parsed) Complete() bool {
	return p.Archetype != "" && p.Analysis != "" && p.Insight != "" && p.Recommendation != ""
}

// Section header names, matched case-insensitively as prefixes. The Russian
// names appear in portraits generated before the prompt was translated.
var sectionHeaders = map[string][]string{
	"archetype":      {"archetype", "архетип"},
	"analysis":       {"analysis", "анализ"},
	"insight":        {"insight", "инсайт"},
	"recommendation": {"recommendation", "рекомендация"},
}

type section struct {
	header string
	body   []string
}

// Parse splits model output on lines starting with "## ". Each section's
// header line is dropped and its body trimmed. Unknown or missing sections
// yield empty strings; Parse never fails.
func Parse(text string) Parsed {
	p := Parsed{Raw: text}

	var sections []section
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.HasPrefix(line, "## ") {
			sections = append(sections, section{header: strings.TrimSpace(line[3:])})
			continue
		}
		if len(sections) > 0 {
			cur := &sections[len(sections)-1]
			cur.body = append(cur.body, line)
		}
	}

	find := func(key string) string {
		for _, s := range sections {
			h := strings.ToLower(s.header)
			for _, name := range sectionHeaders[key] {
				if strings.HasPrefix(h, name) {
					return strings.TrimSpace(strings.Join(s.body, "\n"))
				}
			}
		}
		return ""
	}

	p.Archetype = find("archetype")
	p.Analysis = find("analysis")
	p.Insight = find("insight")
	p.Recommendation = find("recommendation")
	return p
}
