package handler

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"pdf-table-extractor/internal/domain"
	apperrors "pdf-table-extractor/pkg/errors"
)

const archiveDownloadName = "pdf_extraction_results.zip"

var artifactContentTypes = map[string]string{
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"json": "application/json",
}

var artifactSuffixes = map[string]string{
	"docx": "_text.docx",
	"xlsx": "_tables.xlsx",
	"json": "_tables.json",
}

// ExtractHandler handles extraction-related HTTP requests
type ExtractHandler struct {
	batch        domain.BatchProcessor
	archiver     domain.Archiver
	encoders     map[string]domain.Encoder
	archiveStore domain.ArchiveStore
	maxFileSize  int64
	logger       domain.Logger
}

// NewExtractHandler creates a new extraction handler. archiveStore may be
// nil, in which case archives are returned inline only.
func NewExtractHandler(
	batch domain.BatchProcessor,
	archiver domain.Archiver,
	encoders map[string]domain.Encoder,
	archiveStore domain.ArchiveStore,
	maxFileSize int64,
	logger domain.Logger,
) *ExtractHandler {
	return &ExtractHandler{
		batch:        batch,
		archiver:     archiver,
		encoders:     encoders,
		archiveStore: archiveStore,
		maxFileSize:  maxFileSize,
		logger:       logger,
	}
}

// ExtractBatch handles multi-file extraction and returns per-source results
func (h *ExtractHandler) ExtractBatch(w http.ResponseWriter, r *http.Request) {
	sources, ok := h.readSources(w, r)
	if !ok {
		return
	}

	results := h.batch.ProcessBatch(r.Context(), sources)
	writeJSON(w, http.StatusOK, results)
}

// ExtractArchive handles multi-file extraction and returns a zip bundling
// every requested artifact plus the processing summary
func (h *ExtractHandler) ExtractArchive(w http.ResponseWriter, r *http.Request) {
	sources, ok := h.readSources(w, r)
	if !ok {
		return
	}

	formats, ok := h.parseFormats(w, r.FormValue("formats"))
	if !ok {
		return
	}

	results := h.batch.ProcessBatch(r.Context(), sources)

	archive, err := h.archiver.BuildArchive(results, formats)
	if err != nil {
		h.logger.Error("Failed to build archive", err)
		writeError(w, apperrors.GetStatusCode(err), "Failed to build archive")
		return
	}

	if h.archiveStore != nil {
		if path, err := h.archiveStore.Save(r.Context(), archiveDownloadName, archive); err != nil {
			h.logger.Warn("Failed to persist archive", "error", err)
		} else {
			w.Header().Set("X-Archive-Path", path)
		}
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, archiveDownloadName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// ExtractFile handles single-file extraction and returns one artifact in
// the format selected by the format query parameter
func (h *ExtractHandler) ExtractFile(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = "docx"
	}
	encoder, ok := h.encoders[format]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format %s. Allowed: docx, xlsx, json.", format))
		return
	}

	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["file"]) == 0 {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}

	source, ok := h.readSource(w, r.MultipartForm.File["file"][0])
	if !ok {
		return
	}

	results := h.batch.ProcessBatch(r.Context(), []domain.Source{source})
	result := results[0]
	if !result.Succeeded {
		writeError(w, http.StatusUnprocessableEntity, result.FailureReason)
		return
	}

	artifact, err := encoder.Encode(result)
	if err != nil {
		h.logger.Error("Failed to encode artifact", err, "filename", result.SourceName, "format", format)
		writeError(w, apperrors.GetStatusCode(err), err.Error())
		return
	}

	filename := result.ArtifactBaseName() + artifactSuffixes[format]
	w.Header().Set("Content-Type", artifactContentTypes[format])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifact)
}

func (h *ExtractHandler) readSources(w http.ResponseWriter, r *http.Request) ([]domain.Source, bool) {
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		writeError(w, http.StatusBadRequest, "At least one file is required")
		return nil, false
	}

	headers := r.MultipartForm.File["files"]
	sources := make([]domain.Source, 0, len(headers))
	for _, header := range headers {
		source, ok := h.readSource(w, header)
		if !ok {
			return nil, false
		}
		sources = append(sources, source)
	}
	return sources, true
}

func (h *ExtractHandler) readSource(w http.ResponseWriter, header *multipart.FileHeader) (domain.Source, bool) {
	// Sanitize filename (strip any path components)
	name := strings.TrimSpace(filepath.Base(header.Filename))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "document.pdf"
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported file type for %s. Allowed: PDF (.pdf).", name))
		return domain.Source{}, false
	}

	if header.Size > h.maxFileSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("File %s is too large. Maximum single file size is %dMB.", name, h.maxFileSize>>20))
		return domain.Source{}, false
	}

	file, err := header.Open()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return domain.Source{}, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return domain.Source{}, false
	}

	return domain.Source{Name: name, Data: data}, true
}

func (h *ExtractHandler) parseFormats(w http.ResponseWriter, raw string) ([]string, bool) {
	if strings.TrimSpace(raw) == "" {
		return nil, true
	}

	formats := make([]string, 0, len(artifactSuffixes))
	for _, format := range strings.Split(raw, ",") {
		format = strings.ToLower(strings.TrimSpace(format))
		if format == "" {
			continue
		}
		if _, known := artifactContentTypes[format]; !known {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format %s. Allowed: docx, xlsx, json.", format))
			return nil, false
		}
		formats = append(formats, format)
	}
	return formats, true
}
