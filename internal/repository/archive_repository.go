package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"pdf-table-extractor/internal/domain"
	apperrors "pdf-table-extractor/pkg/errors"
)

const (
	uploadAttempts = 3
	uploadDelay    = 500 * time.Millisecond
)

// objectUploader is the slice of the Supabase storage client the
// repository needs; *storage_go.Client satisfies it.
type objectUploader interface {
	UploadFile(bucketID string, relativePath string, data io.Reader, fileOptions ...storage_go.FileOptions) (storage_go.FileUploadResponse, error)
}

// SupabaseArchiveRepository implements the domain.ArchiveStore interface
// on top of Supabase storage.
type SupabaseArchiveRepository struct {
	uploads objectUploader
	bucket  string
	logger  domain.Logger
}

// NewSupabaseArchiveRepository creates a new Supabase archive repository.
// Returns domain.ErrArchiveStoreDisabled when storage is not configured,
// which callers treat as "run without persistence".
func NewSupabaseArchiveRepository(supabaseClient domain.SupabaseClient, bucket string, logger domain.Logger) (domain.ArchiveStore, error) {
	if supabaseClient == nil || bucket == "" {
		return nil, domain.ErrArchiveStoreDisabled
	}
	storage := supabaseClient.Storage()
	if storage == nil {
		return nil, domain.ErrArchiveStoreDisabled
	}
	return &SupabaseArchiveRepository{
		uploads: storage,
		bucket:  bucket,
		logger:  logger,
	}, nil
}

// Save uploads the archive under a collision-free object path and returns
// that path. Transient upload failures are retried before giving up.
func (r *SupabaseArchiveRepository) Save(ctx context.Context, name string, data []byte) (string, error) {
	path := fmt.Sprintf("archives/%s_%s", uuid.New().String(), name)
	contentType := "application/zip"

	err := retry.Do(
		func() error {
			_, err := r.uploads.UploadFile(r.bucket, path, bytes.NewReader(data), storage_go.FileOptions{
				ContentType: &contentType,
			})
			return err
		},
		retry.Context(ctx),
		retry.Attempts(uploadAttempts),
		retry.Delay(uploadDelay),
	)
	if err != nil {
		return "", apperrors.NewNetworkError("failed to store archive", err)
	}

	r.logger.Info("Archive stored", "bucket", r.bucket, "path", path, "bytes", len(data))
	return path, nil
}
