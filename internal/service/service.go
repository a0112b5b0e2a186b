// Package service provides the business logic for journal operations.
package service

import (
	"context"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/models"
)

// Store is the storage surface the services depend on. *db.Client
// satisfies it; tests substitute an in-memory fake.
type Store interface {
	CreateEntry(ctx context.Context, input models.EntryInput) (*models.JournalEntry, error)
	GetAllEntries(ctx context.Context) ([]models.JournalEntry, error)
	GetEntriesBetween(ctx context.Context, start, end time.Time) ([]models.JournalEntry, error)
	ListRecent(ctx context.Context, limit int) ([]models.JournalEntry, error)
	ListMissingEmbeddings(ctx context.Context) ([]models.JournalEntry, error)
	UpdateEntryEmbedding(ctx context.Context, id string, embedding []float32) error
	DeleteEntry(ctx context.Context, id string) (bool, error)
	CountEntries(ctx context.Context) (int, error)
	GetEntryByExternalID(ctx context.Context, externalID string) (*models.JournalEntry, error)
}

// Embedder produces embedding vectors. *llm.Embedder satisfies it.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// Reviewer synthesizes prose answers from journal evidence. *llm.Model
// satisfies it.
type Reviewer interface {
	SynthesizeReview(ctx context.Context, question, evidence string) (string, error)
}
