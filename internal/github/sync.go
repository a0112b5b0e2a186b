package github

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// Store is the storage surface the syncer needs. *db.Client satisfies it.
type Store interface {
	CreateEntry(ctx context.Context, input models.EntryInput) (*models.JournalEntry, error)
	GetEntryByExternalID(ctx context.Context, externalID string) (*models.JournalEntry, error)
}

// SyncResult summarizes one import run.
type SyncResult struct {
	Fetched  int
	Imported int
	Skipped  int
}

// Syncer imports merged PRs as journal entries, deduplicating on the PR URL.
type Syncer struct {
	client *Client
	store  Store
	stats  *metrics.Collector
}

// NewSyncer creates a syncer.
func NewSyncer(client *Client, store Store, stats *metrics.Collector) *Syncer {
	return &Syncer{client: client, store: store, stats: stats}
}

// Sync fetches PRs merged since the given time and stores the new ones.
// Already-imported PRs are skipped via their external_id.
func (s *Syncer) Sync(ctx context.Context, user string, since time.Time) (*SyncResult, error) {
	start := time.Now()
	prs, err := s.client.MergedPullRequests(ctx, user, since)
	if s.stats != nil {
		s.stats.RecordTiming(metrics.OpGitHubSync, time.Since(start))
	}
	if err != nil {
		return nil, fmt.Errorf("fetch pull requests: %w", err)
	}

	result := &SyncResult{Fetched: len(prs)}
	for _, pr := range prs {
		existing, err := s.store.GetEntryByExternalID(ctx, pr.HTMLURL)
		if err != nil {
			return result, fmt.Errorf("check existing entry: %w", err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		mergedAt := pr.MergedAt()
		title := pr.Title
		_, err = s.store.CreateEntry(ctx, models.EntryInput{
			Text:       fmt.Sprintf("Merged PR #%d: %s", pr.Number, pr.Title),
			URL:        &pr.HTMLURL,
			Title:      &title,
			Source:     models.SourceGitHub,
			ExternalID: &pr.HTMLURL,
			Created:    mergedAt,
		})
		if err != nil {
			return result, fmt.Errorf("store PR %d: %w", pr.Number, err)
		}
		result.Imported++
	}

	slog.Info("github sync complete",
		"fetched", result.Fetched, "imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}
