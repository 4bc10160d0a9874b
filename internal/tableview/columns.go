package tableview

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

// Alignment classifies a column for styling purposes.
type Alignment int

const (
	AlignNone Alignment = iota
	AlignText
	AlignNumeric
)

// numericPattern matches formatted values that should be right-aligned:
// optional leading dollar signs, digits with grouping separators, decimal
// points or minus signs, and optional unit suffixes.
var numericPattern = regexp.MustCompile(`^\$*[0-9,.\-]+[%xKMG]*$`)

// IsNumericString reports whether a formatted cell value looks numeric.
func IsNumericString(formatted string) bool {
	return numericPattern.MatchString(formatted)
}

// FormatColumnName derives a human display name from a column key:
// a trailing "-id" becomes "ID", "percent"/"pct" become "%", "delta" becomes
// "Δ", "qps" becomes "QPS", and the remaining dash-separated segments are
// capitalized and joined with spaces.
//
//	FormatColumnName("pct-qps")     == "% QPS"
//	FormatColumnName("user-id")     == "User ID"
//	FormatColumnName("spend-delta") == "Spend Δ"
func FormatColumnName(key string) string {
	name := key
	if strings.HasSuffix(name, "-id") {
		name = strings.TrimSuffix(name, "-id") + "-ID"
	}
	name = strings.ReplaceAll(name, "percent", "%")
	name = strings.ReplaceAll(name, "pct", "%")
	name = strings.ReplaceAll(name, "delta", "Δ")
	name = strings.ReplaceAll(name, "qps", "QPS")

	segments := strings.Split(name, "-")
	for i, segment := range segments {
		segments[i] = capitalize(segment)
	}
	return strings.Join(segments, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// resolveKeys returns the ordered column keys for a render: the configured
// list if one was supplied, otherwise the first row's keys. Map iteration
// order is not stable in Go, so the derived order is alphabetical.
func (tv *TableView) resolveKeys(first Row) []string {
	if len(tv.config.Columns) > 0 {
		return tv.config.Columns
	}
	keys := make([]string, 0, len(first))
	for key := range first {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// displayName resolves a column's header text: an explicit override from the
// configuration, or the humanized key.
func (tv *TableView) displayName(key string) string {
	if name, ok := tv.config.ColumnNames[key]; ok {
		return name
	}
	return FormatColumnName(key)
}
