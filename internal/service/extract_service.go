package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pdf-table-extractor/internal/domain"
	"pdf-table-extractor/internal/metrics"
	apperrors "pdf-table-extractor/pkg/errors"
)

// ExtractService processes one source document end to end: stage the bytes,
// parse them, and assemble the segment stream. Every failure is captured in
// the returned result; ProcessSource never lets one source take down the
// batch it belongs to.
type ExtractService struct {
	parser     domain.PageParser
	logger     domain.Logger
	stagingDir string
}

// NewExtractService creates a new extract service
func NewExtractService(parser domain.PageParser, logger domain.Logger, stagingDir string) *ExtractService {
	return &ExtractService{
		parser:     parser,
		logger:     logger,
		stagingDir: stagingDir,
	}
}

// ProcessSource extracts all content segments from one source document
func (s *ExtractService) ProcessSource(ctx context.Context, source domain.Source) (result domain.DocumentResult) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			appErr := apperrors.NewExtractionError("extraction panicked", fmt.Errorf("%v", r))
			s.logger.Error("Source processing panicked", appErr, "source", source.Name)
			metrics.RecordSourceProcessed("failure")
			metrics.ObserveExtraction("failure", time.Since(start))
			result = domain.NewFailedResult(source.Name, appErr.Error())
		}
	}()

	if len(source.Data) == 0 {
		return s.failResult(source, start,
			apperrors.NewSourceUnreadableError("source data is empty", domain.ErrEmptySource))
	}

	stagedPath, err := s.stageSource(source)
	if err != nil {
		return s.failResult(source, start,
			apperrors.NewSourceUnreadableError("failed to stage source", err))
	}
	// Cleanup must run whatever happens after staging; a failed removal is
	// logged, never surfaced.
	defer func() {
		if err := os.Remove(stagedPath); err != nil {
			s.logger.Warn("Failed to remove staged file", "path", stagedPath, "error", err)
		}
	}()

	parsed, err := s.parser.Parse(ctx, source.Data)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return s.failResult(source, start,
				apperrors.NewExtractionError("extraction aborted", err))
		}
		return s.failResult(source, start,
			apperrors.NewSourceUnreadableError("failed to open document", err))
	}

	segments := ExtractDocumentSegments(parsed)
	result = domain.NewDocumentResult(source.Name, segments)

	metrics.RecordSourceProcessed("success")
	metrics.ObserveExtraction("success", time.Since(start))
	metrics.RecordSegments("text", result.TextSegmentCount)
	metrics.RecordSegments("table", result.TableSegmentCount)

	s.logger.Info("Source processed",
		"source", source.Name,
		"pages", parsed.Metadata.PageCount,
		"text_segments", result.TextSegmentCount,
		"table_segments", result.TableSegmentCount)
	return result
}

// stageSource writes the source bytes to the staging directory under a
// unique name and returns the staged path.
func (s *ExtractService) stageSource(source domain.Source) (string, error) {
	if err := os.MkdirAll(s.stagingDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(s.stagingDir, uuid.New().String()+".pdf")
	if err := os.WriteFile(path, source.Data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func (s *ExtractService) failResult(source domain.Source, start time.Time, appErr *apperrors.AppError) domain.DocumentResult {
	s.logger.Error("Source processing failed", appErr, "source", source.Name)
	metrics.RecordSourceProcessed("failure")
	metrics.ObserveExtraction("failure", time.Since(start))
	return domain.NewFailedResult(source.Name, appErr.Error())
}
