package search

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// Defaults for search options.
const (
	DefaultLimit    = 10
	DefaultMinScore = 0.3

	// LexicalScore is the placeholder score assigned to substring matches,
	// where no similarity metric applies.
	LexicalScore = 0.5
)

// Embedder turns text into a fixed-length vector. The engine awaits exactly
// one embedding per query and propagates failures to the caller.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Options scope a search. Zero Limit and MinScore take the defaults; nil
// time bounds mean unbounded; empty Site means no site filter.
type Options struct {
	Limit    int
	MinScore float64
	Start    *time.Time
	End      *time.Time
	Site     string
}

func (o Options) limit() int {
	if o.Limit <= 0 {
		return DefaultLimit
	}
	return o.Limit
}

func (o Options) minScore() float64 {
	if o.MinScore == 0 {
		return DefaultMinScore
	}
	return o.MinScore
}

// Match is one scored result.
type Match struct {
	Entry models.JournalEntry `json:"entry"`
	Score float64             `json:"score"`
}

// Strategy is one retrieval tier. Strategies are tried in order until one
// yields a non-empty result.
type Strategy func(ctx context.Context, query string, entries []models.JournalEntry, opts Options) ([]Match, error)

// Engine ranks entries for a query over a caller-supplied snapshot.
type Engine struct {
	embedder   Embedder
	logger     *slog.Logger
	strategies []Strategy
}

// NewEngine creates an engine with the default strategy order:
// semantic first, lexical substring fallback.
func NewEngine(embedder Embedder, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{embedder: embedder, logger: logger}
	e.strategies = []Strategy{e.Semantic, e.Lexical}
	return e
}

// Search runs the strategy tiers in order and returns the first non-empty
// ranked result set. An empty result from every tier is not an error.
func (e *Engine) Search(ctx context.Context, query string, entries []models.JournalEntry, opts Options) ([]Match, error) {
	for _, strategy := range e.strategies {
		matches, err := strategy(ctx, query, entries, opts)
		if err != nil {
			return nil, err
		}
		if len(matches) > 0 {
			return matches, nil
		}
	}
	return nil, nil
}

// Semantic embeds the query and ranks embedded candidates by cosine
// similarity, dropping scores below the threshold. Entries whose stored
// embedding has the wrong dimensionality are skipped and logged.
func (e *Engine) Semantic(ctx context.Context, query string, entries []models.JournalEntry, opts Options) ([]Match, error) {
	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	minScore := opts.minScore()
	var matches []Match
	for _, entry := range entries {
		if !entry.HasEmbedding() || !inScope(entry, opts) {
			continue
		}
		if len(entry.Embedding) != len(queryVec) {
			e.logger.Warn("skipping entry with mismatched embedding dimension",
				"entry", entry.ID, "got", len(entry.Embedding), "want", len(queryVec))
			continue
		}
		score := Cosine(queryVec, entry.Embedding)
		if score < minScore {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit := opts.limit(); len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Lexical matches the raw query as a case-insensitive substring of entry
// text, within the same filters, with a fixed placeholder score.
func (e *Engine) Lexical(_ context.Context, query string, entries []models.JournalEntry, opts Options) ([]Match, error) {
	needle := strings.ToLower(query)

	var matches []Match
	for _, entry := range entries {
		if !inScope(entry, opts) {
			continue
		}
		if !strings.Contains(strings.ToLower(entry.Text), needle) {
			continue
		}
		matches = append(matches, Match{Entry: entry, Score: LexicalScore})
		if len(matches) >= opts.limit() {
			break
		}
	}
	return matches, nil
}

// inScope applies the time and site filters. Time bounds are inclusive.
func inScope(entry models.JournalEntry, opts Options) bool {
	if opts.Start != nil && entry.Created.Before(*opts.Start) {
		return false
	}
	if opts.End != nil && entry.Created.After(*opts.End) {
		return false
	}
	if opts.Site != "" {
		host := entry.Hostname()
		if host == "" || !strings.Contains(host, opts.Site) {
			return false
		}
	}
	return true
}
