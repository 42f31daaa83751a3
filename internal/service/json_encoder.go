package service

import (
	"encoding/json"
	"fmt"

	"pdf-table-extractor/internal/domain"
	apperrors "pdf-table-extractor/pkg/errors"
)

// tableExport is one table rendered for structured-data output. Data holds
// the rows in original order as column-name to cell-value mappings; missing
// cells stay null.
type tableExport struct {
	Page       int                  `json:"page"`
	TableIndex int                  `json:"table_index"`
	Data       []map[string]*string `json:"data"`
}

// JSONEncoder renders the table segments of a result as a JSON object keyed
// by "page_{page}_table_{index}". Text segments are ignored.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Encode(result domain.DocumentResult) ([]byte, error) {
	tables := make(map[string]tableExport)

	for _, segment := range result.Segments {
		if segment.Kind != domain.SegmentKindTable {
			continue
		}

		rows := make([]map[string]*string, 0, len(segment.Rows))
		for _, row := range segment.Rows {
			mapped := make(map[string]*string, len(segment.Columns))
			for j, column := range segment.Columns {
				if j < len(row) {
					mapped[column] = row[j]
				} else {
					mapped[column] = nil
				}
			}
			rows = append(rows, mapped)
		}

		key := fmt.Sprintf("page_%d_table_%d", segment.Page, segment.TableIndex)
		tables[key] = tableExport{
			Page:       segment.Page,
			TableIndex: segment.TableIndex,
			Data:       rows,
		}
	}

	data, err := json.MarshalIndent(tables, "", "  ")
	if err != nil {
		return nil, apperrors.NewEncodingError("failed to serialize tables", err)
	}
	return data, nil
}
