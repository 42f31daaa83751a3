package service

import (
	"fmt"
	"strings"
)

// NormalizeHeaders derives the column names for a table grid from its first
// row. columns is the grid's column count, which may exceed the first row's
// length for ragged grids. The returned flag reports whether the first row
// was consumed as a header row and must be excluded from the data rows.
//
// A first row whose cells are all nil or whitespace-only is not a header
// row: the table gets positional names Column_0..Column_{n-1} and keeps all
// rows. A partially filled first row still counts as a header row; its nil
// cells fall back to the positional name for that slot.
func NormalizeHeaders(firstRow []*string, columns int) ([]string, bool) {
	names := make([]string, 0, columns)
	if columns == 0 {
		return names, false
	}

	headerless := true
	for _, cell := range firstRow {
		if cell != nil && strings.TrimSpace(*cell) != "" {
			headerless = false
			break
		}
	}

	if headerless {
		for i := 0; i < columns; i++ {
			names = append(names, fmt.Sprintf("Column_%d", i))
		}
		return names, false
	}

	// Duplicates keep their first occurrence unchanged and suffix later
	// ones with a running count: A, A_1, A_2.
	counts := make(map[string]int)
	for i := 0; i < columns; i++ {
		var cell *string
		if i < len(firstRow) {
			cell = firstRow[i]
		}

		candidate := fmt.Sprintf("Column_%d", i)
		if cell != nil {
			candidate = strings.TrimSpace(*cell)
		}

		if seen, ok := counts[candidate]; ok {
			counts[candidate] = seen + 1
			names = append(names, fmt.Sprintf("%s_%d", candidate, seen+1))
		} else {
			counts[candidate] = 0
			names = append(names, candidate)
		}
	}
	return names, true
}
