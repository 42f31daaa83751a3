package domain

import (
	"context"
	"time"
)

// Source is one input document in a batch
type Source struct {
	Name string
	Data []byte
}

// PageParser turns raw PDF bytes into per-page text and cell grids
type PageParser interface {
	Parse(ctx context.Context, data []byte) (*ParsedDocument, error)
}

// SourceProcessor extracts the segment stream from a single source. Failures
// are captured in the result, never returned.
type SourceProcessor interface {
	ProcessSource(ctx context.Context, source Source) DocumentResult
}

// BatchProcessor runs a batch of sources with per-source fault isolation
type BatchProcessor interface {
	ProcessBatch(ctx context.Context, sources []Source) []DocumentResult
}

// Encoder renders one extraction result into a file artifact
type Encoder interface {
	Encode(result DocumentResult) ([]byte, error)
}

// ArchiveEntry is one file inside a result archive
type ArchiveEntry struct {
	Name string
	Data []byte
}

// Archiver bundles exported artifacts and a processing summary into a zip
type Archiver interface {
	BuildArchive(results []DocumentResult, formats []string) ([]byte, error)
}

// ArchiveStore persists finished archives and returns their storage path
type ArchiveStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadPath() string
	GetMaxFileSize() int64
	GetLogLevel() string
	GetExtractWorkers() int
	GetPageTimeout() time.Duration
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
	GetSupabaseURL() string
	GetSupabaseKey() string
	GetArchiveBucket() string
}
