package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// JournalService handles entry capture and lifecycle.
type JournalService struct {
	store    Store
	embedder Embedder
	stats    *metrics.Collector
	now      func() time.Time
}

// NewJournalService creates a journal service. The embedder may be nil, in
// which case entries are captured without embeddings and picked up later by
// the backfill.
func NewJournalService(store Store, embedder Embedder, stats *metrics.Collector) *JournalService {
	return &JournalService{
		store:    store,
		embedder: embedder,
		stats:    stats,
		now:      time.Now,
	}
}

// CaptureInput holds the fields for capturing a new entry.
type CaptureInput struct {
	Text   string
	URL    string
	Title  string
	Source string
	// ExternalID deduplicates imported entries. Empty for manual captures.
	ExternalID string
	// Created overrides the capture timestamp; zero means now.
	Created time.Time
}

// Capture stores a new journal entry. The text is trimmed and must be
// non-empty. Embedding is attempted synchronously but failure does not
// block the capture.
func (s *JournalService) Capture(ctx context.Context, input CaptureInput) (*models.JournalEntry, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, fmt.Errorf("entry text is empty")
	}

	created := input.Created
	if created.IsZero() {
		created = s.now()
	}

	entryInput := models.EntryInput{
		Text:    text,
		Source:  input.Source,
		Created: created,
	}
	if input.URL != "" {
		entryInput.URL = &input.URL
	}
	if input.Title != "" {
		entryInput.Title = &input.Title
	}
	if input.ExternalID != "" {
		entryInput.ExternalID = &input.ExternalID
	}

	if s.embedder != nil {
		start := s.now()
		vec, err := s.embedder.Embed(ctx, text)
		if s.stats != nil {
			s.stats.RecordTiming(metrics.OpEmbedding, s.now().Sub(start))
		}
		if err != nil {
			slog.Warn("embedding failed at capture, entry stored without one", "error", err)
		} else {
			entryInput.Embedding = vec
		}
	}

	entry, err := s.store.CreateEntry(ctx, entryInput)
	if err != nil {
		return nil, fmt.Errorf("capture entry: %w", err)
	}

	slog.Info("entry captured", "id", models.MustRecordIDString(entry.ID), "embedded", entry.HasEmbedding())
	return entry, nil
}

// Recent returns the most recent entries up to limit (default 10).
func (s *JournalService) Recent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.store.ListRecent(ctx, limit)
}

// Delete removes an entry by ID. Returns false if it did not exist.
func (s *JournalService) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteEntry(ctx, id)
}

// Count returns the total number of entries.
func (s *JournalService) Count(ctx context.Context) (int, error) {
	return s.store.CountEntries(ctx)
}
