package shared

import "strings"

// SplitSections parses a delimited text blob (one entry per line, with
// semicolons tolerated as a secondary delimiter) into a list for display.
// Blank entries are dropped. A nil result is never returned so the JSON
// form stays an array.
func SplitSections(blob string) []string {
	items := []string{}
	for _, line := range strings.FieldsFunc(blob, func(r rune) bool {
		return r == '\n' || r == ';' || r == '；'
	}) {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line != "" {
			items = append(items, line)
		}
	}
	return items
}
