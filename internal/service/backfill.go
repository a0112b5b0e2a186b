package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/llm"
	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// DefaultBackfillBatchSize is how many entries are embedded per provider call.
const DefaultBackfillBatchSize = 16

// BackfillResult summarizes an embedding backfill run.
type BackfillResult struct {
	Scanned  int
	Embedded int
	Failed   int
	Errors   []string
}

// ProgressFunc receives backfill progress after each batch.
type ProgressFunc func(done, total int)

// BackfillService fills in embeddings for entries that were captured
// without one.
type BackfillService struct {
	store     Store
	embedder  Embedder
	stats     *metrics.Collector
	BatchSize int
}

// NewBackfillService creates a backfill service.
func NewBackfillService(store Store, embedder Embedder, stats *metrics.Collector) *BackfillService {
	return &BackfillService{
		store:     store,
		embedder:  embedder,
		stats:     stats,
		BatchSize: DefaultBackfillBatchSize,
	}
}

// Run embeds all entries missing a vector, oldest first, in batches.
// Transient batch failures are recorded and skipped; fatal provider errors
// (bad credentials, exhausted quota) abort the run. onProgress may be nil.
func (s *BackfillService) Run(ctx context.Context, onProgress ProgressFunc) (*BackfillResult, error) {
	if s.embedder == nil {
		return nil, fmt.Errorf("embedder not configured")
	}

	pending, err := s.store.ListMissingEmbeddings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}

	result := &BackfillResult{Scanned: len(pending)}
	if len(pending) == 0 {
		return result, nil
	}

	batchSize := s.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBackfillBatchSize
	}

	slog.Info("starting embedding backfill", "pending", len(pending), "batch_size", batchSize)

	done := 0
	for start := 0; start < len(pending); start += batchSize {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, entry := range batch {
			texts[i] = entry.Text
		}

		embedStart := time.Now()
		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if s.stats != nil {
			s.stats.RecordTiming(metrics.OpEmbedding, time.Since(embedStart))
		}
		if err != nil {
			if errors.Is(err, llm.ErrFatalAPI) {
				return result, fmt.Errorf("backfill aborted: %w", err)
			}
			result.Failed += len(batch)
			result.Errors = append(result.Errors, err.Error())
			slog.Warn("batch embedding failed, skipping", "batch_start", start, "error", err)
			done += len(batch)
			if onProgress != nil {
				onProgress(done, len(pending))
			}
			continue
		}

		for i, entry := range batch {
			id := models.MustRecordIDString(entry.ID)
			if err := s.store.UpdateEntryEmbedding(ctx, id, vectors[i]); err != nil {
				result.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", id, err))
				slog.Warn("failed to store embedding", "entry", id, "error", err)
				continue
			}
			result.Embedded++
		}

		done += len(batch)
		if onProgress != nil {
			onProgress(done, len(pending))
		}
	}

	slog.Info("embedding backfill complete",
		"scanned", result.Scanned, "embedded", result.Embedded, "failed", result.Failed)
	return result, nil
}
