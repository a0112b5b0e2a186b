// Package models defines data structures for the worthkeeping journal.
package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// EmbeddingDim is the expected embedding vector length.
// CRITICAL: Must match the HNSW index dimension in the SurrealDB schema.
const EmbeddingDim = 384

// Entry sources.
const (
	SourceManual = "manual"
	SourceGitHub = "github"
)

// JournalEntry is a single captured accomplishment note.
// Text is trimmed at creation; Created is the capture time and immutable.
// Embedding is absent until the backfill pipeline populates it.
type JournalEntry struct {
	ID         surrealmodels.RecordID `json:"id"`
	Text       string                 `json:"text"`
	URL        *string                `json:"url,omitempty"`
	Title      *string                `json:"title,omitempty"`
	Source     string                 `json:"source,omitempty"`
	ExternalID *string                `json:"external_id,omitempty"`
	Embedding  []float32              `json:"embedding,omitempty"`
	Created    time.Time              `json:"created"`
}

// HasEmbedding reports whether the entry's embedding has been populated.
func (e *JournalEntry) HasEmbedding() bool {
	return len(e.Embedding) > 0
}

// Hostname returns the registrable hostname of the entry's capture URL
// with a leading "www." stripped, or "" if the entry has no parseable URL.
func (e *JournalEntry) Hostname() string {
	if e.URL == nil {
		return ""
	}
	return Hostname(*e.URL)
}

// EntryInput holds the fields for creating a new entry.
type EntryInput struct {
	Text       string
	URL        *string
	Title      *string
	Source     string
	ExternalID *string
	Embedding  []float32
	Created    time.Time
}
