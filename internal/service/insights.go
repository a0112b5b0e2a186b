package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/insights"
)

// InsightsService computes dashboard statistics over the journal.
type InsightsService struct {
	store Store
	now   func() time.Time
}

// NewInsightsService creates an insights service.
func NewInsightsService(store Store) *InsightsService {
	return &InsightsService{store: store, now: time.Now}
}

// Dashboard snapshots the journal and computes all insight aggregates.
func (s *InsightsService) Dashboard(ctx context.Context) (*insights.LocalInsights, error) {
	entries, err := s.store.GetAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	result := insights.Compute(entries, s.now())
	return &result, nil
}
