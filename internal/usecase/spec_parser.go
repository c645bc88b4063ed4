package usecase

import (
	"fmt"
	"strings"

	"github.com/cableworks/storefront/internal/domain"
)

// positionalKeyFormat names specification lines that carry no "Key:" prefix
const positionalKeyFormat = "Specification %d"

// ParseSpecifications turns free-text specification lines into an ordered SpecSheet.
//
// Lines are split on the first colon. Lines without a colon (or with nothing before
// it) get a positional key based on their 1-based line number; a blank line becomes a
// positional "-". A later duplicate key overwrites the earlier value but keeps the
// first spelling and position.
// Parsing never fails; it degrades to positional keys and the "-" sentinel.
func ParseSpecifications(lines []string) domain.SpecSheet {
	sheet := domain.SpecSheet{Entries: make([]domain.SpecEntry, 0, len(lines))}
	index := make(map[string]int, len(lines))

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		key, value := splitSpecLine(trimmed)
		if key == "" {
			key = fmt.Sprintf(positionalKeyFormat, i+1)
			value = trimmed
			if value == "" {
				value = domain.MissingValue
			}
		}

		folded := strings.ToLower(key)
		if pos, ok := index[folded]; ok {
			sheet.Entries[pos].Value = value
			continue
		}
		index[folded] = len(sheet.Entries)
		sheet.Entries = append(sheet.Entries, domain.SpecEntry{Key: key, Value: value})
	}

	return sheet
}

// splitSpecLine splits "Key: Value" on the first colon.
// Returns an empty key when the line has no usable key part.
func splitSpecLine(line string) (string, string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return "", ""
	}

	key := strings.TrimSpace(line[:idx])
	value := strings.TrimSpace(line[idx+1:])
	if value == "" {
		value = domain.MissingValue
	}
	return key, value
}

// LookupSpec resolves target against a parsed sheet using case-insensitive substring
// matching in either direction, so "Conductor" finds "Conductor Type" and "Cable Type"
// finds "Type". The first matching entry in sheet order wins. Returns "-" on no match.
func LookupSpec(sheet domain.SpecSheet, target string) string {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return domain.MissingValue
	}

	for _, entry := range sheet.Entries {
		key := strings.ToLower(entry.Key)
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			return entry.Value
		}
	}
	return domain.MissingValue
}

// SpecKeys returns the sheet keys in first-seen order
func SpecKeys(sheet domain.SpecSheet) []string {
	keys := make([]string, len(sheet.Entries))
	for i, entry := range sheet.Entries {
		keys[i] = entry.Key
	}
	return keys
}
