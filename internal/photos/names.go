// Travel World - Travel Journal and Visited-Country Map
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/travelworld

package photos

import (
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxNameLen = 80

// foldAccents strips combining marks: "Ñandú" -> "Nandu".
var foldAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// SafeName reduces an uploaded file name to [A-Za-z0-9._-]. Accented
// letters are folded to ASCII, other characters become '_', runs of '_'
// collapse, and the result is never empty.
func SafeName(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	folded, _, err := transform.String(foldAccents, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range folded {
		ok := r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == '-')
		if !ok {
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
			continue
		}
		b.WriteRune(r)
		lastUnderscore = false
	}

	out := strings.Trim(b.String(), "._-")
	if len(out) > maxNameLen {
		out = out[len(out)-maxNameLen:]
	}
	if out == "" || out == "." {
		return "photo"
	}
	return out
}

// StoragePath is the blob key for the i-th file of an upload batch:
// {user}/{trip}/{unixms}_{i}_{safeName}.
func StoragePath(userID, tripID string, at time.Time, i int, filename string) string {
	return fmt.Sprintf("%s/%s/%d_%d_%s", userID, tripID, at.UnixMilli(), i, SafeName(filename))
}
