package domain

import "strings"

// SegmentKind represents the type of an extracted content segment
type SegmentKind string

const (
	SegmentKindText  SegmentKind = "text"
	SegmentKindTable SegmentKind = "table"
)

// ContentSegment is one unit of content extracted from a page: either a
// block of page text or a normalized table. Segments preserve the order in
// which they were found (text before tables within a page, pages ascending).
type ContentSegment struct {
	Kind SegmentKind `json:"kind"`
	Page int         `json:"page"`

	// Text payload, only set when Kind == SegmentKindText. Holds the
	// original page text, not the trimmed copy used for the emptiness check.
	Text string `json:"text,omitempty"`

	// Table payload, only set when Kind == SegmentKindTable. TableIndex is
	// 1-based and counts emitted tables within the page. Every row has
	// exactly len(Columns) cells; nil marks a missing value.
	TableIndex int         `json:"table_index,omitempty"`
	Columns    []string    `json:"columns,omitempty"`
	Rows       [][]*string `json:"rows,omitempty"`
}

// NewTextSegment creates a text segment for a page
func NewTextSegment(page int, text string) ContentSegment {
	return ContentSegment{
		Kind: SegmentKindText,
		Page: page,
		Text: text,
	}
}

// NewTableSegment creates a table segment for a page
func NewTableSegment(page, tableIndex int, columns []string, rows [][]*string) ContentSegment {
	return ContentSegment{
		Kind:       SegmentKindTable,
		Page:       page,
		TableIndex: tableIndex,
		Columns:    columns,
		Rows:       rows,
	}
}

// Validate checks the structural invariants of a segment
func (s *ContentSegment) Validate() error {
	if s.Page < 1 {
		return &ValidationError{Field: "page", Message: "page number must be positive"}
	}
	switch s.Kind {
	case SegmentKindText:
		if s.Text == "" {
			return &ValidationError{Field: "text", Message: "text segment requires content"}
		}
	case SegmentKindTable:
		if s.TableIndex < 1 {
			return &ValidationError{Field: "table_index", Message: "table index must be positive"}
		}
		for _, row := range s.Rows {
			if len(row) != len(s.Columns) {
				return &ValidationError{Field: "rows", Message: "row width must match column count"}
			}
		}
	default:
		return &ValidationError{Field: "kind", Message: "unknown segment kind"}
	}
	return nil
}

// DocumentResult holds the outcome of processing one source document. A
// failed source carries a reason instead of segments; it never aborts the
// batch it belongs to.
type DocumentResult struct {
	SourceName        string           `json:"source_name"`
	Segments          []ContentSegment `json:"segments"`
	TextSegmentCount  int              `json:"text_segment_count"`
	TableSegmentCount int              `json:"table_segment_count"`
	Succeeded         bool             `json:"succeeded"`
	FailureReason     string           `json:"failure_reason,omitempty"`
}

// NewDocumentResult creates a successful result and derives the segment counts
func NewDocumentResult(sourceName string, segments []ContentSegment) DocumentResult {
	// Keep segments JSON-friendly: [] rather than null.
	if segments == nil {
		segments = make([]ContentSegment, 0)
	}
	result := DocumentResult{
		SourceName: sourceName,
		Segments:   segments,
		Succeeded:  true,
	}
	for _, segment := range segments {
		switch segment.Kind {
		case SegmentKindText:
			result.TextSegmentCount++
		case SegmentKindTable:
			result.TableSegmentCount++
		}
	}
	return result
}

// NewFailedResult creates a failed result carrying the failure reason
func NewFailedResult(sourceName, reason string) DocumentResult {
	return DocumentResult{
		SourceName:    sourceName,
		Segments:      make([]ContentSegment, 0),
		Succeeded:     false,
		FailureReason: reason,
	}
}

// ArtifactBaseName returns the source name up to the first dot, used to name
// exported artifacts ("report.pdf" and "report.v2.pdf" both yield "report").
func (r *DocumentResult) ArtifactBaseName() string {
	return strings.Split(r.SourceName, ".")[0]
}

// Validate checks the structural invariants of a result
func (r *DocumentResult) Validate() error {
	if r.SourceName == "" {
		return &ValidationError{Field: "source_name", Message: "source name is required"}
	}
	if !r.Succeeded && r.FailureReason == "" {
		return &ValidationError{Field: "failure_reason", Message: "failed result requires a reason"}
	}
	if r.Succeeded && r.FailureReason != "" {
		return &ValidationError{Field: "failure_reason", Message: "successful result must not carry a reason"}
	}
	for i := range r.Segments {
		if err := r.Segments[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}
