package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/metrics"
	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/parser"
	"github.com/sjha2048/worthkeeping.app/internal/search"
)

// SearchService orchestrates query parsing, retrieval and review synthesis.
type SearchService struct {
	store  Store
	engine *search.Engine
	model  Reviewer
	stats  *metrics.Collector
	now    func() time.Time
}

// NewSearchService creates a search service. The reviewer may be nil, in
// which case Review returns an error.
func NewSearchService(store Store, engine *search.Engine, model Reviewer, stats *metrics.Collector) *SearchService {
	return &SearchService{
		store:  store,
		engine: engine,
		model:  model,
		stats:  stats,
		now:    time.Now,
	}
}

// SearchOptions configures a search operation. Zero values take defaults.
type SearchOptions struct {
	Limit    int
	MinScore float64
}

// Result is a scored match together with the filters the query resolved to.
type Result struct {
	Matches []search.Match        `json:"matches"`
	Time    *parser.ParsedTimeQuery `json:"time,omitempty"`
	Site    string                `json:"site,omitempty"`
}

// Search parses natural-language time and site filters out of the query,
// snapshots the journal and runs the retrieval tiers over it.
func (s *SearchService) Search(ctx context.Context, query string, opts SearchOptions) (*Result, error) {
	timeQuery := parser.ParseTimeQuery(query, s.now())
	site := parser.ParseSiteQuery(query)

	entries, err := s.store.GetAllEntries(ctx)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}

	engineOpts := search.Options{
		Limit:    opts.Limit,
		MinScore: opts.MinScore,
		Site:     site,
	}
	if timeQuery != nil {
		engineOpts.Start = &timeQuery.Start
		engineOpts.End = &timeQuery.End
	}

	start := s.now()
	matches, err := s.engine.Search(ctx, query, entries, engineOpts)
	if s.stats != nil {
		s.stats.RecordTiming(metrics.OpSearch, s.now().Sub(start))
	}
	if err != nil {
		return nil, err
	}

	if timeQuery != nil || site != "" {
		slog.Debug("query filters resolved",
			"time", timeLabel(timeQuery), "site", site, "matches", len(matches))
	}

	return &Result{Matches: matches, Time: timeQuery, Site: site}, nil
}

func timeLabel(q *parser.ParsedTimeQuery) string {
	if q == nil {
		return ""
	}
	return q.Label
}

// Review retrieves entries for the question and asks the LLM to synthesize
// an answer grounded in them.
func (s *SearchService) Review(ctx context.Context, question string) (string, error) {
	if s.model == nil {
		return "", fmt.Errorf("LLM model not configured")
	}

	result, err := s.Search(ctx, question, SearchOptions{Limit: 20})
	if err != nil {
		return "", fmt.Errorf("search: %w", err)
	}

	if len(result.Matches) == 0 {
		return "No journal entries found for this question.", nil
	}

	evidence := buildEvidence(result.Matches)

	start := s.now()
	answer, err := s.model.SynthesizeReview(ctx, question, evidence)
	if s.stats != nil {
		s.stats.RecordTiming(metrics.OpLLMGenerate, s.now().Sub(start))
	}
	return answer, err
}

// buildEvidence formats matches into date-prefixed lines for the LLM.
func buildEvidence(matches []search.Match) string {
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		line := fmt.Sprintf("%s: %s", m.Entry.Created.Format("2006-01-02"), m.Entry.Text)
		if m.Entry.URL != nil {
			line += fmt.Sprintf(" (%s)", *m.Entry.URL)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// EntriesFor returns the raw entries for a parsed time expression, used by
// callers that need the unranked window rather than a ranked search.
func (s *SearchService) EntriesFor(ctx context.Context, timeQuery *parser.ParsedTimeQuery) ([]models.JournalEntry, error) {
	if timeQuery == nil {
		return s.store.GetAllEntries(ctx)
	}
	return s.store.GetEntriesBetween(ctx, timeQuery.Start, timeQuery.End)
}
