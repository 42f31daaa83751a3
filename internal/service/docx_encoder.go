package service

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"

	"pdf-table-extractor/internal/domain"
)

// Heading sizes are half-points: 40 renders as 20pt, 32 as 16pt.
const (
	docxTitleSize   = "40"
	docxHeadingSize = "32"
)

// DocxEncoder renders the text segments of a result as a Word document,
// one page heading per text segment followed by the segment body.
type DocxEncoder struct{}

func NewDocxEncoder() *DocxEncoder {
	return &DocxEncoder{}
}

func (e *DocxEncoder) Encode(result domain.DocumentResult) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("PDF Text Content - " + result.SourceName).Size(docxTitleSize).Bold()

	for _, segment := range result.Segments {
		if segment.Kind != domain.SegmentKindText {
			continue
		}
		doc.AddParagraph().AddText(fmt.Sprintf("Page %d", segment.Page)).Size(docxHeadingSize).Bold()
		for _, line := range strings.Split(segment.Text, "\n") {
			paragraph := doc.AddParagraph()
			if line != "" {
				paragraph.AddText(line)
			}
		}
	}

	return writeDocx(doc)
}

// EncodeSummary renders one heading per result with its outcome. Encoding
// problems recorded for a source during archive assembly are listed under
// that source's entry.
func (e *DocxEncoder) EncodeSummary(results []domain.DocumentResult, issues map[string]string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	doc.AddParagraph().AddText("PDF Processing Summary").Size(docxTitleSize).Bold()

	for _, result := range results {
		doc.AddParagraph().AddText(result.SourceName).Size(docxHeadingSize).Bold()
		if result.Succeeded {
			doc.AddParagraph().AddText("Successfully processed")
			doc.AddParagraph().AddText(fmt.Sprintf("Text sections: %d", result.TextSegmentCount))
			doc.AddParagraph().AddText(fmt.Sprintf("Tables: %d", result.TableSegmentCount))
			if issue, ok := issues[result.SourceName]; ok {
				doc.AddParagraph().AddText("Artifact encoding failed: " + issue)
			}
		} else {
			doc.AddParagraph().AddText("Processing failed: " + result.FailureReason)
		}
		doc.AddParagraph()
	}

	return writeDocx(doc)
}

func writeDocx(doc *docx.Docx) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
