package service

import (
	"sort"
	"strings"

	"pdf-table-extractor/internal/domain"
)

// ExtractPageSegments turns one parsed page into its ordered segment list:
// the page text first (when non-blank), then one TableSegment per non-empty
// grid. Grids without rows contribute nothing and do not consume a table
// index, so emitted tables on a page are always numbered 1..k.
func ExtractPageSegments(page domain.ParsedPage) []domain.ContentSegment {
	var segments []domain.ContentSegment

	// The blank check runs on trimmed text but the segment keeps the
	// original text untouched.
	if strings.TrimSpace(page.Text) != "" {
		segments = append(segments, domain.NewTextSegment(page.Number, page.Text))
	}

	tableIndex := 0
	for _, table := range page.Tables {
		if len(table.Cells) == 0 {
			continue
		}

		grid, columns := padGrid(table.Cells)
		names, consumedFirstRow := NormalizeHeaders(grid[0], columns)

		rows := grid
		if consumedFirstRow {
			rows = grid[1:]
		}

		tableIndex++
		segments = append(segments, domain.NewTableSegment(page.Number, tableIndex, names, rows))
	}

	return segments
}

// ExtractDocumentSegments concatenates per-page segments in ascending page
// order. Pages are independent: no table numbering or text state crosses a
// page boundary.
func ExtractDocumentSegments(doc *domain.ParsedDocument) []domain.ContentSegment {
	pages := make([]domain.ParsedPage, len(doc.Pages))
	copy(pages, doc.Pages)
	sort.Slice(pages, func(i, j int) bool {
		return pages[i].Number < pages[j].Number
	})

	var segments []domain.ContentSegment
	for _, page := range pages {
		segments = append(segments, ExtractPageSegments(page)...)
	}
	return segments
}

// padGrid copies a possibly ragged grid into a rectangular one, padding
// short rows with nil cells. Returns the grid and its column count.
func padGrid(cells [][]*string) ([][]*string, int) {
	columns := 0
	for _, row := range cells {
		if len(row) > columns {
			columns = len(row)
		}
	}

	grid := make([][]*string, len(cells))
	for i, row := range cells {
		padded := make([]*string, columns)
		copy(padded, row)
		grid[i] = padded
	}
	return grid, columns
}
