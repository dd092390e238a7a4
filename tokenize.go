package dfrs

import (
	"strings"
	"unicode/utf8"
)

// splitFields splits one line on delim, ignoring delimiters inside double
// quotes. A quote opens a quoted section only at the start of a field;
// elsewhere it is an ordinary character. Quotes are kept in the returned
// fields: column inference treats a quoted field as text and strips them
// there.
func splitFields(line string, delim rune) []string {
	fields := make([]string, 0, strings.Count(line, string(delim))+1)
	inQuotes := false
	start := 0

	for i := 0; i < len(line); {
		c, size := utf8.DecodeRuneInString(line[i:])
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(line) && line[i+1] == '"' {
					size++
				} else {
					inQuotes = false
				}
			}
		case c == '"' && strings.TrimSpace(line[start:i]) == "":
			inQuotes = true
		case c == delim:
			fields = append(fields, line[start:i])
			start = i + size
		}
		i += size
	}
	return append(fields, line[start:])
}

// trimTrailingEmpty drops the empty field left by a trailing delimiter.
func trimTrailingEmpty(fields []string) []string {
	if n := len(fields); n > 1 && strings.TrimSpace(fields[n-1]) == "" {
		return fields[:n-1]
	}
	return fields
}

// quoteField quotes s when it would not survive splitFields unchanged.
func quoteField(s string, delim rune, force bool) string {
	if !force && !strings.ContainsRune(s, delim) && !strings.ContainsRune(s, '"') {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
