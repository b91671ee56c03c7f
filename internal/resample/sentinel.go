package resample

import "strings"

// eofSentinel is the SUB control character some archives embed as a literal
// final data row.
const eofSentinel = "\x1a"

// StripEOF drops the last row of a parsed table when it is an end-of-file
// marker: first field equal to 0x1A and every remaining field empty. Any
// other table, including an empty one, is returned unchanged. No row other
// than the last is ever removed.
func StripEOF(rows [][]string) [][]string {
	if len(rows) == 0 {
		return rows
	}
	last := rows[len(rows)-1]
	if len(last) == 0 || last[0] != eofSentinel {
		return rows
	}
	for _, f := range last[1:] {
		if strings.TrimSpace(f) != "" {
			return rows
		}
	}
	return rows[:len(rows)-1]
}
