package service

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"pdf-table-extractor/internal/domain"
	"pdf-table-extractor/internal/metrics"
	apperrors "pdf-table-extractor/pkg/errors"
)

const summaryEntryName = "processing_summary.docx"

// archiveFormats lists the artifact kinds an archive can carry, in the
// order their entries are added per source.
var archiveFormats = []string{"docx", "xlsx", "json"}

// textEncoder is the docx encoder surface the archive needs: per-source
// artifacts plus the cross-source summary document.
type textEncoder interface {
	domain.Encoder
	EncodeSummary(results []domain.DocumentResult, issues map[string]string) ([]byte, error)
}

// ArchiveService encodes batch results into per-source artifacts and bundles
// them, together with a processing summary, into a single zip archive.
type ArchiveService struct {
	text       textEncoder
	tabular    domain.Encoder
	structured domain.Encoder
	logger     domain.Logger
}

func NewArchiveService(text *DocxEncoder, tabular *XlsxEncoder, structured *JSONEncoder, logger domain.Logger) *ArchiveService {
	return &ArchiveService{
		text:       text,
		tabular:    tabular,
		structured: structured,
		logger:     logger,
	}
}

// BuildArchive encodes every successful result into the requested formats
// and assembles the zip. An encoder failure for one source is noted in the
// summary instead of aborting the archive. Passing no formats selects all
// of them.
func (s *ArchiveService) BuildArchive(results []domain.DocumentResult, formats []string) ([]byte, error) {
	requested := normalizeFormats(formats)

	entries := make([]domain.ArchiveEntry, 0, len(results)*3+1)
	issues := make(map[string]string)

	for _, result := range results {
		if !result.Succeeded {
			continue
		}
		base := result.ArtifactBaseName()

		if requested["docx"] {
			if data, err := s.text.Encode(result); err != nil {
				s.recordIssue(issues, result.SourceName, "docx", err)
			} else {
				entries = append(entries, domain.ArchiveEntry{Name: base + "_text.docx", Data: data})
			}
		}

		if result.TableSegmentCount == 0 {
			continue
		}
		if requested["xlsx"] {
			if data, err := s.tabular.Encode(result); err != nil {
				s.recordIssue(issues, result.SourceName, "xlsx", err)
			} else {
				entries = append(entries, domain.ArchiveEntry{Name: base + "_tables.xlsx", Data: data})
			}
		}
		if requested["json"] {
			if data, err := s.structured.Encode(result); err != nil {
				s.recordIssue(issues, result.SourceName, "json", err)
			} else {
				entries = append(entries, domain.ArchiveEntry{Name: base + "_tables.json", Data: data})
			}
		}
	}

	summary, err := s.text.EncodeSummary(results, issues)
	if err != nil {
		return nil, apperrors.NewEncodingError("failed to build processing summary", err)
	}
	entries = append(entries, domain.ArchiveEntry{Name: summaryEntryName, Data: summary})

	data, err := Assemble(entries)
	if err != nil {
		return nil, apperrors.NewEncodingError("failed to assemble archive", err)
	}

	metrics.RecordArchiveBuilt()
	s.logger.Info("Archive assembled",
		"sources", len(results),
		"entries", len(entries),
		"bytes", len(data))
	return data, nil
}

func (s *ArchiveService) recordIssue(issues map[string]string, source, format string, err error) {
	s.logger.Warn("Failed to encode artifact", "filename", source, "format", format, "error", err)
	message := fmt.Sprintf("%s: %v", format, err)
	if existing, ok := issues[source]; ok {
		message = existing + "; " + message
	}
	issues[source] = message
}

// Assemble writes the entries into a deflate-compressed zip in the order
// given. Entry names are taken as-is; keeping them unique is the caller's
// concern.
func Assemble(entries []domain.ArchiveEntry) ([]byte, error) {
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)

	for _, entry := range entries {
		file, err := writer.Create(entry.Name)
		if err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to create archive entry %s: %w", entry.Name, err)
		}
		if _, err := file.Write(entry.Data); err != nil {
			writer.Close()
			return nil, fmt.Errorf("failed to write archive entry %s: %w", entry.Name, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func normalizeFormats(formats []string) map[string]bool {
	requested := make(map[string]bool)
	if len(formats) == 0 {
		for _, known := range archiveFormats {
			requested[known] = true
		}
		return requested
	}
	for _, format := range formats {
		format = strings.ToLower(strings.TrimSpace(format))
		for _, known := range archiveFormats {
			if format == known {
				requested[format] = true
			}
		}
	}
	return requested
}
