package service

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"pdf-table-extractor/internal/domain"
	apperrors "pdf-table-extractor/pkg/errors"
)

const (
	// Excel rejects sheet names longer than 31 characters.
	maxSheetNameLength = 31
	maxSheetNameProbes = 10000
)

// XlsxEncoder renders the table segments of a result as a workbook with one
// sheet per table. Text segments are ignored.
type XlsxEncoder struct{}

func NewXlsxEncoder() *XlsxEncoder {
	return &XlsxEncoder{}
}

func (e *XlsxEncoder) Encode(result domain.DocumentResult) ([]byte, error) {
	file := excelize.NewFile()
	taken := make(map[string]bool)
	sheets := 0

	for _, segment := range result.Segments {
		if segment.Kind != domain.SegmentKindTable {
			continue
		}

		base := fmt.Sprintf("Page%d_Table%d", segment.Page, segment.TableIndex)
		name, err := uniqueSheetName(base, taken)
		if err != nil {
			return nil, apperrors.NewEncodingError("failed to name worksheet", err)
		}
		taken[name] = true

		if sheets == 0 {
			// Reuse the default sheet excelize creates with the workbook.
			if err := file.SetSheetName("Sheet1", name); err != nil {
				return nil, apperrors.NewEncodingError("failed to rename worksheet", err)
			}
		} else {
			if _, err := file.NewSheet(name); err != nil {
				return nil, apperrors.NewEncodingError("failed to add worksheet", err)
			}
		}
		sheets++

		if err := writeSheet(file, name, segment); err != nil {
			return nil, apperrors.NewEncodingError("failed to write worksheet", err)
		}
	}

	if sheets == 0 {
		return nil, apperrors.NewEncodingError("result contains no table segments", nil)
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, apperrors.NewEncodingError("failed to serialize workbook", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(file *excelize.File, sheet string, segment domain.ContentSegment) error {
	header := make([]interface{}, len(segment.Columns))
	for i, column := range segment.Columns {
		header[i] = column
	}
	if err := file.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, row := range segment.Rows {
		cells := make([]interface{}, len(row))
		for j, cell := range row {
			if cell != nil {
				cells[j] = *cell
			}
		}
		ref, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := file.SetSheetRow(sheet, ref, &cells); err != nil {
			return err
		}
	}
	return nil
}

// uniqueSheetName truncates base to the sheet-name ceiling and, when the
// truncated name is already taken, shrinks it further to make room for a
// numeric suffix: the first collision of "Quarterly" yields "Quarterly_1",
// the next "Quarterly_2", and so on, always within the ceiling.
func uniqueSheetName(base string, taken map[string]bool) (string, error) {
	name := base
	if len(name) > maxSheetNameLength {
		name = name[:maxSheetNameLength]
	}
	if !taken[name] {
		return name, nil
	}

	for counter := 1; counter <= maxSheetNameProbes; counter++ {
		suffix := strconv.Itoa(counter)
		keep := len(name) - len(suffix) - 1
		if keep > maxSheetNameLength-1 {
			keep = maxSheetNameLength - 1
		}
		if keep < 0 {
			keep = 0
		}
		candidate := name[:keep] + "_" + suffix
		if !taken[candidate] {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no unique sheet name available for %q", base)
}
