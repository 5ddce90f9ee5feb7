package normalization

import (
	"strings"
)

// Header artifacts and spreadsheet null markers that must never act
// as a join key.
var absentMarkers = map[string]struct{}{
	"name": {},
	"nan":  {},
	"none": {},
	"null": {},
	"n/a":  {},
	"-":    {},
}

// CleanName canonicalizes a free-text identity string for use as a
// join key: trimmed, lowercased, internal whitespace collapsed.
// ok is false when the input is blank or a known artifact; callers
// must treat such rows as having no identity at all.
func CleanName(raw string) (string, bool) {
	fields := strings.Fields(strings.ToLower(raw))
	if len(fields) == 0 {
		return "", false
	}
	cleaned := strings.Join(fields, " ")
	if _, bad := absentMarkers[cleaned]; bad {
		return "", false
	}
	return cleaned, true
}

// CleanCell trims a raw cell and maps spreadsheet null markers to "".
func CleanCell(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "nan", "none", "null", "n/a":
		return ""
	}
	return trimmed
}
