package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/surrealdb/surrealdb.go"
)

// entryFields is the projection shared by entry queries.
const entryFields = "id, text, url, title, source, external_id, embedding, created"

func firstResult(results *[]surrealdb.QueryResult[[]models.JournalEntry]) []models.JournalEntry {
	if results == nil || len(*results) == 0 {
		return []models.JournalEntry{}
	}
	return (*results)[0].Result
}

// CreateEntry stores a new journal entry and returns the stored record.
// A zero Created timestamp defaults to now.
func (c *Client) CreateEntry(ctx context.Context, input models.EntryInput) (*models.JournalEntry, error) {
	created := input.Created
	if created.IsZero() {
		created = time.Now()
	}
	source := input.Source
	if source == "" {
		source = models.SourceManual
	}

	sql := `
		CREATE type::record("entry", $id) SET
			text = $text,
			url = $url,
			title = $title,
			source = $source,
			external_id = $external_id,
			embedding = $embedding,
			created = <datetime>$created
		RETURN AFTER
	`

	vars := map[string]any{
		"id":          uuid.NewString(),
		"text":        input.Text,
		"url":         input.URL,
		"title":       input.Title,
		"source":      source,
		"external_id": input.ExternalID,
		"embedding":   input.Embedding,
		"created":     created.UTC().Format(time.RFC3339Nano),
	}

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, vars)
	if err != nil {
		return nil, wrapQueryError(fmt.Errorf("create entry: %w", err))
	}

	entries := firstResult(results)
	if len(entries) == 0 {
		return nil, fmt.Errorf("create entry: no result returned")
	}
	return &entries[0], nil
}

// GetEntry retrieves an entry by ID. Returns nil if not found.
func (c *Client) GetEntry(ctx context.Context, id string) (*models.JournalEntry, error) {
	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, `
		SELECT * FROM type::record("entry", $id)
	`, map[string]any{"id": id})
	if err != nil {
		return nil, fmt.Errorf("get entry: %w", err)
	}

	entries := firstResult(results)
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

// GetAllEntries returns every entry, newest first. The retrieval and
// insights layers operate over this snapshot.
func (c *Client) GetAllEntries(ctx context.Context) ([]models.JournalEntry, error) {
	sql := fmt.Sprintf(`SELECT %s FROM entry ORDER BY created DESC`, entryFields)

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("get all entries: %w", err)
	}
	return firstResult(results), nil
}

// GetEntriesBetween returns entries created in [start, end], newest first.
func (c *Client) GetEntriesBetween(ctx context.Context, start, end time.Time) ([]models.JournalEntry, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM entry
		WHERE created >= <datetime>$start AND created <= <datetime>$end
		ORDER BY created DESC
	`, entryFields)

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, map[string]any{
		"start": start.UTC().Format(time.RFC3339Nano),
		"end":   end.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, fmt.Errorf("get entries between: %w", err)
	}
	return firstResult(results), nil
}

// ListRecent returns the most recent entries up to limit.
func (c *Client) ListRecent(ctx context.Context, limit int) ([]models.JournalEntry, error) {
	sql := fmt.Sprintf(`SELECT %s FROM entry ORDER BY created DESC LIMIT $limit`, entryFields)

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, map[string]any{
		"limit": limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	return firstResult(results), nil
}

// ListMissingEmbeddings returns entries that have no embedding yet, oldest
// first so the backfill proceeds chronologically.
func (c *Client) ListMissingEmbeddings(ctx context.Context) ([]models.JournalEntry, error) {
	sql := fmt.Sprintf(`
		SELECT %s FROM entry
		WHERE embedding IS NONE OR array::len(embedding) = 0
		ORDER BY created ASC
	`, entryFields)

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, nil)
	if err != nil {
		return nil, fmt.Errorf("list missing embeddings: %w", err)
	}
	return firstResult(results), nil
}

// UpdateEntryEmbedding stores the embedding vector for an entry.
func (c *Client) UpdateEntryEmbedding(ctx context.Context, id string, embedding []float32) error {
	_, err := surrealdb.Query[any](ctx, c.db, `
		UPDATE type::record("entry", $id) SET embedding = $embedding
	`, map[string]any{"id": id, "embedding": embedding})
	if err != nil {
		return fmt.Errorf("update entry embedding: %w", err)
	}
	return nil
}

// DeleteEntry deletes an entry by ID. Returns false if it did not exist.
func (c *Client) DeleteEntry(ctx context.Context, id string) (bool, error) {
	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, `
		DELETE type::record("entry", $id) RETURN BEFORE
	`, map[string]any{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete entry: %w", err)
	}
	return len(firstResult(results)) > 0, nil
}

// CountEntries returns the total number of entries.
func (c *Client) CountEntries(ctx context.Context) (int, error) {
	results, err := surrealdb.Query[[]struct {
		Count int `json:"count"`
	}](ctx, c.db, `SELECT count() AS count FROM entry GROUP ALL`, nil)
	if err != nil {
		return 0, fmt.Errorf("count entries: %w", err)
	}

	if results == nil || len(*results) == 0 || len((*results)[0].Result) == 0 {
		return 0, nil
	}
	return (*results)[0].Result[0].Count, nil
}

// GetEntryByExternalID looks up an entry by its source-system identifier.
// Returns nil if not found. Used to deduplicate imports.
func (c *Client) GetEntryByExternalID(ctx context.Context, externalID string) (*models.JournalEntry, error) {
	sql := fmt.Sprintf(`SELECT %s FROM entry WHERE external_id = $external_id LIMIT 1`, entryFields)

	results, err := surrealdb.Query[[]models.JournalEntry](ctx, c.db, sql, map[string]any{
		"external_id": externalID,
	})
	if err != nil {
		return nil, fmt.Errorf("get entry by external id: %w", err)
	}

	entries := firstResult(results)
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}
