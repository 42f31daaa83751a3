package service

import (
	"context"
	"sync"

	"pdf-table-extractor/internal/domain"
	"pdf-table-extractor/internal/metrics"
)

// BatchService fans a batch of sources over a fixed pool of workers. Each
// source is handed to exactly one worker, and results come back in input
// order regardless of completion order.
type BatchService struct {
	processor domain.SourceProcessor
	logger    domain.Logger
	workers   int
}

// NewBatchService creates a batch service with the given worker count.
// Anything below one worker falls back to sequential processing.
func NewBatchService(processor domain.SourceProcessor, logger domain.Logger, workers int) *BatchService {
	if workers < 1 {
		workers = 1
	}
	return &BatchService{
		processor: processor,
		logger:    logger,
		workers:   workers,
	}
}

// ProcessBatch processes every source and returns one result per source, in
// input order. A failed source yields a failed result; it never aborts the
// rest of the batch. An empty batch yields an empty result list.
func (b *BatchService) ProcessBatch(ctx context.Context, sources []domain.Source) []domain.DocumentResult {
	results := make([]domain.DocumentResult, len(sources))
	if len(sources) == 0 {
		return results
	}

	metrics.IncrementBatchesInFlight()
	defer metrics.DecrementBatchesInFlight()

	b.logger.Info("Processing batch", "sources", len(sources), "workers", b.workers)

	workers := b.workers
	if workers > len(sources) {
		workers = len(sources)
	}

	type job struct {
		index  int
		source domain.Source
	}

	jobs := make(chan job)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.index] = b.processor.ProcessSource(ctx, j.source)
			}
		}()
	}

	for i, source := range sources {
		jobs <- job{index: i, source: source}
	}
	close(jobs)
	wg.Wait()

	return results
}
