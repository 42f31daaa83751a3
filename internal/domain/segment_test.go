package domain

import (
	"testing"
)

func strPtr(s string) *string {
	return &s
}

// TestContentSegment_Validate tests that the ContentSegment.Validate() method works correctly.
// It tests:
// - Valid text and table segments
// - Page number validation
// - Text segments require content
// - Table segments require a positive index and rectangular rows
func TestContentSegment_Validate(t *testing.T) {
	tests := []struct {
		name    string
		segment ContentSegment
		wantErr bool
		errMsg  string
	}{
		{
			name:    "Valid text segment",
			segment: NewTextSegment(1, "Hello world"),
			wantErr: false,
		},
		{
			name: "Valid table segment",
			segment: NewTableSegment(2, 1,
				[]string{"Name", "Age"},
				[][]*string{{strPtr("Ann"), strPtr("34")}},
			),
			wantErr: false,
		},
		{
			// Tests that a zero page number is rejected
			name:    "Invalid page number",
			segment: NewTextSegment(0, "content"),
			wantErr: true,
			errMsg:  "page: page number must be positive",
		},
		{
			// Tests that text segments cannot be empty
			name:    "Empty text segment",
			segment: NewTextSegment(1, ""),
			wantErr: true,
			errMsg:  "text: text segment requires content",
		},
		{
			// Tests that table indexes start at 1
			name:    "Zero table index",
			segment: NewTableSegment(1, 0, []string{"A"}, nil),
			wantErr: true,
			errMsg:  "table_index: table index must be positive",
		},
		{
			// Tests that every row must match the column count
			name: "Ragged table rows",
			segment: NewTableSegment(1, 1,
				[]string{"A", "B"},
				[][]*string{{strPtr("1")}},
			),
			wantErr: true,
			errMsg:  "rows: row width must match column count",
		},
		{
			name:    "Unknown kind",
			segment: ContentSegment{Kind: "image", Page: 1},
			wantErr: true,
			errMsg:  "kind: unknown segment kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.segment.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("ContentSegment.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("ContentSegment.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

// TestDocumentResult_Validate tests result-level invariants: a source name is
// always required, failed results carry a reason and successful ones do not.
func TestDocumentResult_Validate(t *testing.T) {
	tests := []struct {
		name    string
		result  DocumentResult
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid successful result",
			result: NewDocumentResult("report.pdf", []ContentSegment{
				NewTextSegment(1, "page one"),
			}),
			wantErr: false,
		},
		{
			name:    "Valid failed result",
			result:  NewFailedResult("broken.pdf", "cannot open document"),
			wantErr: false,
		},
		{
			name:    "Missing source name",
			result:  NewDocumentResult("", nil),
			wantErr: true,
			errMsg:  "source_name: source name is required",
		},
		{
			name:    "Failure without reason",
			result:  DocumentResult{SourceName: "broken.pdf"},
			wantErr: true,
			errMsg:  "failure_reason: failed result requires a reason",
		},
		{
			name: "Success with leftover reason",
			result: DocumentResult{
				SourceName:    "report.pdf",
				Succeeded:     true,
				FailureReason: "stale",
			},
			wantErr: true,
			errMsg:  "failure_reason: successful result must not carry a reason",
		},
		{
			// Tests that segment validation cascades through the result
			name: "Invalid segment inside result",
			result: DocumentResult{
				SourceName: "report.pdf",
				Succeeded:  true,
				Segments:   []ContentSegment{NewTextSegment(0, "x")},
			},
			wantErr: true,
			errMsg:  "page: page number must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.result.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("DocumentResult.Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && err != nil && err.Error() != tt.errMsg {
				t.Errorf("DocumentResult.Validate() error = %v, want %v", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestNewDocumentResultCounts(t *testing.T) {
	segments := []ContentSegment{
		NewTextSegment(1, "page one"),
		NewTableSegment(1, 1, []string{"A"}, [][]*string{{strPtr("1")}}),
		NewTableSegment(1, 2, []string{"B"}, nil),
		NewTextSegment(2, "page two"),
	}

	result := NewDocumentResult("report.pdf", segments)

	if !result.Succeeded {
		t.Error("Expected successful result")
	}
	if result.TextSegmentCount != 2 {
		t.Errorf("Expected 2 text segments, got %d", result.TextSegmentCount)
	}
	if result.TableSegmentCount != 2 {
		t.Errorf("Expected 2 table segments, got %d", result.TableSegmentCount)
	}
}

func TestNewFailedResult(t *testing.T) {
	result := NewFailedResult("broken.pdf", "cannot open document")

	if result.Succeeded {
		t.Error("Expected failed result")
	}
	if result.FailureReason != "cannot open document" {
		t.Errorf("Expected failure reason to be preserved, got %q", result.FailureReason)
	}
	if len(result.Segments) != 0 {
		t.Errorf("Expected no segments on failure, got %d", len(result.Segments))
	}
}

func TestArtifactBaseName(t *testing.T) {
	tests := []struct {
		sourceName string
		expected   string
	}{
		{"report.pdf", "report"},
		{"report.v2.pdf", "report"},
		{"noextension", "noextension"},
		{".hidden", ""},
	}

	for _, tt := range tests {
		result := DocumentResult{SourceName: tt.sourceName}
		if got := result.ArtifactBaseName(); got != tt.expected {
			t.Errorf("ArtifactBaseName(%q) = %q, expected %q", tt.sourceName, got, tt.expected)
		}
	}
}
