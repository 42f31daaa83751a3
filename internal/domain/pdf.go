package domain

// PDFMetadata contains document-level information reported by the parser
type PDFMetadata struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	PageCount int    `json:"page_count"`
	FileSize  int64  `json:"file_size"`
}

// RawTable is a rectangular cell grid as detected on a page, before header
// normalization. Rows may be ragged; nil cells mark missing values.
type RawTable struct {
	Cells [][]*string
}

// ParsedPage is the raw per-page output of a PageParser
type ParsedPage struct {
	Number int // 1-based
	Text   string
	Tables []RawTable
}

// ParsedDocument is the full parser output for one PDF
type ParsedDocument struct {
	Pages    []ParsedPage
	Metadata PDFMetadata
}
