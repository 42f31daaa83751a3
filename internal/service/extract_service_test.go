package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"pdf-table-extractor/internal/domain"
)

// Mock implementations for testing
type MockLogger struct {
	messages []string
}

func NewMockLogger() *MockLogger {
	return &MockLogger{
		messages: []string{},
	}
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.messages = append(m.messages, "INFO: "+msg)
}

func (m *MockLogger) Error(msg string, err error, args ...interface{}) {
	m.messages = append(m.messages, "ERROR: "+msg+" - "+err.Error())
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.messages = append(m.messages, "DEBUG: "+msg)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.messages = append(m.messages, "WARN: "+msg)
}

type MockPageParser struct {
	doc      *domain.ParsedDocument
	err      error
	panicMsg string
	calls    int
}

func (m *MockPageParser) Parse(ctx context.Context, data []byte) (*domain.ParsedDocument, error) {
	m.calls++
	if m.panicMsg != "" {
		panic(m.panicMsg)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.doc, nil
}

func TestExtractService_ProcessSource(t *testing.T) {
	parser := &MockPageParser{
		doc: &domain.ParsedDocument{
			Pages: []domain.ParsedPage{
				{Number: 1, Text: "first page", Tables: []domain.RawTable{
					{Cells: [][]*string{
						{strPtr("Name"), strPtr("Age")},
						{strPtr("Ann"), strPtr("34")},
					}},
				}},
				{Number: 2, Text: "   "},
			},
			Metadata: domain.PDFMetadata{PageCount: 2},
		},
	}
	logger := NewMockLogger()
	stagingDir := t.TempDir()

	service := NewExtractService(parser, logger, stagingDir)
	result := service.ProcessSource(context.Background(), domain.Source{
		Name: "report.pdf",
		Data: []byte("%PDF-1.4 fake"),
	})

	if !result.Succeeded {
		t.Fatalf("Expected success, got failure: %s", result.FailureReason)
	}
	if result.SourceName != "report.pdf" {
		t.Errorf("Expected source name report.pdf, got %s", result.SourceName)
	}
	if result.TextSegmentCount != 1 {
		t.Errorf("Expected 1 text segment, got %d", result.TextSegmentCount)
	}
	if result.TableSegmentCount != 1 {
		t.Errorf("Expected 1 table segment, got %d", result.TableSegmentCount)
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		t.Fatalf("Failed to read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected staged file to be removed, found %d entries", len(entries))
	}
}

func TestExtractService_ProcessSource_EmptySource(t *testing.T) {
	parser := &MockPageParser{}
	service := NewExtractService(parser, NewMockLogger(), t.TempDir())

	result := service.ProcessSource(context.Background(), domain.Source{Name: "empty.pdf"})

	if result.Succeeded {
		t.Fatal("Expected failure for empty source")
	}
	if !strings.Contains(result.FailureReason, "source data is empty") {
		t.Errorf("Expected empty-source reason, got %q", result.FailureReason)
	}
	if parser.calls != 0 {
		t.Errorf("Expected parser not to be called, got %d calls", parser.calls)
	}
}

func TestExtractService_ProcessSource_UnreadableDocument(t *testing.T) {
	parser := &MockPageParser{err: errors.New("bad xref table")}
	stagingDir := t.TempDir()
	service := NewExtractService(parser, NewMockLogger(), stagingDir)

	result := service.ProcessSource(context.Background(), domain.Source{
		Name: "broken.pdf",
		Data: []byte("not a pdf"),
	})

	if result.Succeeded {
		t.Fatal("Expected failure for unreadable document")
	}
	if !strings.Contains(result.FailureReason, "failed to open document") {
		t.Errorf("Expected open failure reason, got %q", result.FailureReason)
	}

	// The staged copy is removed even when parsing fails.
	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		t.Fatalf("Failed to read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected staged file to be removed on failure, found %d entries", len(entries))
	}
}

func TestExtractService_ProcessSource_Cancelled(t *testing.T) {
	parser := &MockPageParser{err: context.Canceled}
	service := NewExtractService(parser, NewMockLogger(), t.TempDir())

	result := service.ProcessSource(context.Background(), domain.Source{
		Name: "slow.pdf",
		Data: []byte("%PDF"),
	})

	if result.Succeeded {
		t.Fatal("Expected failure for cancelled extraction")
	}
	if !strings.Contains(result.FailureReason, "extraction aborted") {
		t.Errorf("Expected aborted reason, got %q", result.FailureReason)
	}
}

func TestExtractService_ProcessSource_PanicIsolated(t *testing.T) {
	parser := &MockPageParser{panicMsg: "corrupt object stream"}
	stagingDir := t.TempDir()
	service := NewExtractService(parser, NewMockLogger(), stagingDir)

	result := service.ProcessSource(context.Background(), domain.Source{
		Name: "hostile.pdf",
		Data: []byte("%PDF"),
	})

	if result.Succeeded {
		t.Fatal("Expected failure when parsing panics")
	}
	if !strings.Contains(result.FailureReason, "extraction panicked") {
		t.Errorf("Expected panic reason, got %q", result.FailureReason)
	}

	entries, err := os.ReadDir(stagingDir)
	if err != nil {
		t.Fatalf("Failed to read staging dir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected staged file to be removed after panic, found %d entries", len(entries))
	}
}

func TestExtractService_ProcessSource_ZeroPages(t *testing.T) {
	parser := &MockPageParser{doc: &domain.ParsedDocument{}}
	service := NewExtractService(parser, NewMockLogger(), t.TempDir())

	result := service.ProcessSource(context.Background(), domain.Source{
		Name: "blank.pdf",
		Data: []byte("%PDF"),
	})

	if !result.Succeeded {
		t.Fatalf("Expected success for zero-page document, got %s", result.FailureReason)
	}
	if len(result.Segments) != 0 {
		t.Errorf("Expected no segments, got %d", len(result.Segments))
	}
}
