package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"

	"pdf-table-extractor/internal/domain"
)

// PDFParser implements domain.PageParser on two complementary engines:
// go-fitz supplies page text and document metadata, and the positioned text
// from ledongthuc/pdf feeds table grid detection. A document that opens in
// neither engine is unreadable; a page that fails in one of them degrades to
// whatever the other produced.
type PDFParser struct {
	logger      domain.Logger
	grids       *GridBuilder
	pageTimeout time.Duration
}

// NewPDFParser creates a new PDF parser
func NewPDFParser(logger domain.Logger, pageTimeout time.Duration) *PDFParser {
	return &PDFParser{
		logger:      logger,
		grids:       NewGridBuilder(),
		pageTimeout: pageTimeout,
	}
}

// Parse extracts per-page text and table grids from raw PDF bytes
func (p *PDFParser) Parse(ctx context.Context, data []byte) (*domain.ParsedDocument, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	docMetadata := doc.Metadata()
	numPages := doc.NumPage()
	metadata := domain.PDFMetadata{
		PageCount: numPages,
		FileSize:  int64(len(data)),
	}
	if title, ok := docMetadata["title"]; ok && title != "" {
		metadata.Title = title
	}
	if author, ok := docMetadata["author"]; ok && author != "" {
		metadata.Author = author
	}

	// The positional reader is best-effort: some documents that render fine
	// in fitz have cross-reference quirks it refuses. They lose table
	// detection, not text.
	positionalReader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		p.logger.Warn("Positional reader rejected document; table detection disabled", "error", err)
		positionalReader = nil
	}

	type pageResult struct {
		text string
		err  error
	}

	pages := make([]domain.ParsedPage, 0, numPages)
	for pageNum := 0; pageNum < numPages; pageNum++ {
		p.logger.Debug("Parsing page", "page", pageNum+1, "total", numPages)

		resultCh := make(chan pageResult, 1)
		go func(idx int) {
			t, e := doc.Text(idx)
			resultCh <- pageResult{text: t, err: e}
		}(pageNum)

		var text string
		var pageErr error
		select {
		case res := <-resultCh:
			text, pageErr = res.text, res.err
		case <-ctx.Done():
			go func() { <-resultCh }() // drain so goroutine can exit
			return nil, ctx.Err()
		case <-time.After(p.pageTimeout):
			p.logger.Warn("Page text extraction timeout; using empty page",
				"page", pageNum+1, "total", numPages, "timeout_sec", int(p.pageTimeout.Seconds()))
			text = ""
			pageErr = fmt.Errorf("timeout after %v", p.pageTimeout)
			go func() { <-resultCh }() // drain so goroutine can exit
		}
		if pageErr != nil {
			p.logger.Warn("Failed to extract text from page",
				"page_num", pageNum+1, "total", numPages, "error", pageErr)
			text = ""
		}

		pages = append(pages, domain.ParsedPage{
			Number: pageNum + 1,
			Text:   text,
			Tables: p.pageGrids(positionalReader, pageNum+1),
		})
	}

	return &domain.ParsedDocument{Pages: pages, Metadata: metadata}, nil
}

// pageGrids runs grid detection for one page. Malformed content streams can
// panic deep inside the positional parser, so the page is guarded and
// degrades to no tables.
func (p *PDFParser) pageGrids(reader *pdf.Reader, pageNumber int) (tables []domain.RawTable) {
	if reader == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			p.logger.Warn("Table detection failed on page", "page", pageNumber, "cause", r)
			tables = nil
		}
	}()

	if pageNumber > reader.NumPage() {
		return nil
	}
	page := reader.Page(pageNumber)
	if page.V.IsNull() {
		return nil
	}
	return p.grids.BuildGrids(page.Content().Text)
}
