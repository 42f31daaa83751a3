package service

import (
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"

	"pdf-table-extractor/internal/domain"
)

// GridBuilder detects table-like regions on a page from positioned text and
// turns them into rectangular cell grids. Detection is geometric: characters
// are grouped into rows by Y position, rows into cells by X gaps, and runs
// of multi-cell rows whose cell starts line up become tables.
type GridBuilder struct {
	RowTolerance     float64 // max Y distance between texts on the same row
	CellGapThreshold float64 // min X gap separating two cells
	WordGapFraction  float64 // X gap (relative to font size) that inserts a space
	BucketSize       float64 // X bucket width for column alignment voting
	AssignTolerance  float64 // slack when matching a cell to a column start
	MinTableRows     int
	MinTableColumns  int
}

// NewGridBuilder creates a grid builder with defaults tuned for the dense
// column spacing of report tables.
func NewGridBuilder() *GridBuilder {
	return &GridBuilder{
		RowTolerance:     3.0,
		CellGapThreshold: 12.0,
		WordGapFraction:  0.3,
		BucketSize:       20.0,
		AssignTolerance:  15.0,
		MinTableRows:     2,
		MinTableColumns:  2,
	}
}

type textCell struct {
	x    float64
	text string
}

type textRow struct {
	y     float64
	cells []textCell
}

// BuildGrids returns the cell grids for all table regions found on a page,
// top to bottom. Pages without aligned multi-cell rows yield no grids.
func (g *GridBuilder) BuildGrids(texts []pdf.Text) []domain.RawTable {
	filtered := filterTexts(texts)
	if len(filtered) == 0 {
		return nil
	}

	rows := g.buildRows(filtered)

	var tables []domain.RawTable
	flush := func(start, end int) {
		if end-start < g.MinTableRows {
			return
		}
		candidate := rows[start:end]
		boundaries := g.detectColumnStarts(candidate)
		if len(boundaries) < g.MinTableColumns {
			return
		}
		cells := make([][]*string, 0, len(candidate))
		for _, row := range candidate {
			cells = append(cells, g.assignColumns(row, boundaries))
		}
		tables = append(tables, domain.RawTable{Cells: cells})
	}

	runStart := -1
	for i, row := range rows {
		if len(row.cells) >= g.MinTableColumns {
			if runStart == -1 {
				runStart = i
			}
			continue
		}
		if runStart != -1 {
			flush(runStart, i)
			runStart = -1
		}
	}
	if runStart != -1 {
		flush(runStart, len(rows))
	}

	return tables
}

// filterTexts removes empty and whitespace-only text elements.
func filterTexts(texts []pdf.Text) []pdf.Text {
	filtered := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// buildRows groups texts into rows by Y position and merges each row's texts
// into cells. Rows come back top of page first (PDF Y grows upward).
func (g *GridBuilder) buildRows(texts []pdf.Text) []textRow {
	type rowBucket struct {
		yMin, yMax float64
		texts      []pdf.Text
	}

	var buckets []rowBucket
	for _, t := range texts {
		found := false
		for i := range buckets {
			if t.Y >= buckets[i].yMin-g.RowTolerance && t.Y <= buckets[i].yMax+g.RowTolerance {
				buckets[i].texts = append(buckets[i].texts, t)
				if t.Y < buckets[i].yMin {
					buckets[i].yMin = t.Y
				}
				if t.Y > buckets[i].yMax {
					buckets[i].yMax = t.Y
				}
				found = true
				break
			}
		}
		if !found {
			buckets = append(buckets, rowBucket{yMin: t.Y, yMax: t.Y, texts: []pdf.Text{t}})
		}
	}

	sort.Slice(buckets, func(i, j int) bool {
		return buckets[i].yMax > buckets[j].yMax
	})

	rows := make([]textRow, 0, len(buckets))
	for _, bucket := range buckets {
		rows = append(rows, textRow{
			y:     bucket.yMax,
			cells: g.mergeRowCells(bucket.texts),
		})
	}
	return rows
}

// mergeRowCells joins a row's texts, left to right, into cells. A gap wider
// than CellGapThreshold starts a new cell; smaller gaps above the word
// threshold become a single space.
func (g *GridBuilder) mergeRowCells(texts []pdf.Text) []textCell {
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].X < sorted[j].X
	})

	var cells []textCell
	var builder strings.Builder
	cellStart := 0.0

	closeCell := func() {
		text := strings.TrimSpace(builder.String())
		if text != "" {
			cells = append(cells, textCell{x: cellStart, text: text})
		}
		builder.Reset()
	}

	for i, t := range sorted {
		if i == 0 {
			cellStart = t.X
			builder.WriteString(t.S)
			continue
		}

		prev := sorted[i-1]
		gap := t.X - (prev.X + prev.W)
		fontSize := prev.FontSize
		if fontSize == 0 {
			fontSize = 10.0
		}

		switch {
		case gap > g.CellGapThreshold:
			closeCell()
			cellStart = t.X
		case gap > fontSize*g.WordGapFraction:
			builder.WriteString(" ")
		}
		builder.WriteString(t.S)
	}
	closeCell()

	return cells
}

// detectColumnStarts votes on cell start positions across the candidate
// rows. A bucket that collects cells from at least half the rows (minimum
// two) marks a column start; starts closer than two buckets are merged.
func (g *GridBuilder) detectColumnStarts(rows []textRow) []float64 {
	counts := make(map[int]int)
	for _, row := range rows {
		seen := make(map[int]bool)
		for _, cell := range row.cells {
			bucket := int(cell.x / g.BucketSize)
			if !seen[bucket] {
				counts[bucket]++
				seen[bucket] = true
			}
		}
	}

	minHits := len(rows) / 2
	if minHits < 2 {
		minHits = 2
	}

	var starts []float64
	for bucket, count := range counts {
		if count >= minHits {
			starts = append(starts, float64(bucket)*g.BucketSize)
		}
	}
	sort.Float64s(starts)

	merged := make([]float64, 0, len(starts))
	for _, s := range starts {
		if len(merged) == 0 || s-merged[len(merged)-1] > g.BucketSize*2 {
			merged = append(merged, s)
		}
	}
	return merged
}

// assignColumns distributes a row's cells over the detected columns. Cells
// landing in the same column are joined with a space; columns with no cell
// stay nil.
func (g *GridBuilder) assignColumns(row textRow, starts []float64) []*string {
	cells := make([]*string, len(starts))
	for _, cell := range row.cells {
		idx := 0
		for j := len(starts) - 1; j >= 0; j-- {
			if cell.x >= starts[j]-g.AssignTolerance {
				idx = j
				break
			}
		}
		if cells[idx] == nil {
			value := cell.text
			cells[idx] = &value
		} else {
			joined := *cells[idx] + " " + cell.text
			cells[idx] = &joined
		}
	}
	return cells
}
