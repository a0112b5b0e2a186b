package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/llm"
	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/sjha2048/worthkeeping.app/internal/search"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

func newTestEngine(vec []float32) *search.Engine {
	return search.NewEngine(&fakeEmbedder{vec: vec}, slog.New(slog.DiscardHandler))
}

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	entries []models.JournalEntry
	nextID  int

	createErr error
	updateErr error
}

func newFakeStore(entries ...models.JournalEntry) *fakeStore {
	return &fakeStore{entries: entries}
}

func recordID(id string) surrealmodels.RecordID {
	return surrealmodels.RecordID{Table: "entry", ID: id}
}

func (f *fakeStore) CreateEntry(_ context.Context, input models.EntryInput) (*models.JournalEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	entry := models.JournalEntry{
		ID:         recordID(fmt.Sprintf("e%d", f.nextID)),
		Text:       input.Text,
		URL:        input.URL,
		Title:      input.Title,
		Source:     input.Source,
		ExternalID: input.ExternalID,
		Embedding:  input.Embedding,
		Created:    input.Created,
	}
	if entry.Source == "" {
		entry.Source = models.SourceManual
	}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeStore) GetAllEntries(_ context.Context) ([]models.JournalEntry, error) {
	return f.entries, nil
}

func (f *fakeStore) GetEntriesBetween(_ context.Context, start, end time.Time) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range f.entries {
		if !e.Created.Before(start) && !e.Created.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]models.JournalEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func (f *fakeStore) ListMissingEmbeddings(_ context.Context) ([]models.JournalEntry, error) {
	var out []models.JournalEntry
	for _, e := range f.entries {
		if !e.HasEmbedding() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateEntryEmbedding(_ context.Context, id string, embedding []float32) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.entries {
		if models.MustRecordIDString(f.entries[i].ID) == id {
			f.entries[i].Embedding = embedding
			return nil
		}
	}
	return fmt.Errorf("entry not found: %s", id)
}

func (f *fakeStore) DeleteEntry(_ context.Context, id string) (bool, error) {
	for i := range f.entries {
		if models.MustRecordIDString(f.entries[i].ID) == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) CountEntries(_ context.Context) (int, error) {
	return len(f.entries), nil
}

func (f *fakeStore) GetEntryByExternalID(_ context.Context, externalID string) (*models.JournalEntry, error) {
	for i := range f.entries {
		if f.entries[i].ExternalID != nil && *f.entries[i].ExternalID == externalID {
			return &f.entries[i], nil
		}
	}
	return nil, nil
}

// fakeEmbedder returns a fixed vector, or errors.
type fakeEmbedder struct {
	vec      []float32
	err      error
	batchErr error
	calls    int
}

func (f *fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	f.calls++
	return f.vec, f.err
}

func (f *fakeEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = f.vec
	}
	return out, nil
}

func TestCaptureTrimsAndStores(t *testing.T) {
	store := newFakeStore()
	svc := NewJournalService(store, &fakeEmbedder{vec: []float32{1, 0}}, nil)

	entry, err := svc.Capture(context.Background(), CaptureInput{
		Text: "  shipped the importer  ",
		URL:  "https://github.com/acme/api/pull/7",
	})
	if err != nil {
		t.Fatal(err)
	}

	if entry.Text != "shipped the importer" {
		t.Errorf("Text = %q, want trimmed", entry.Text)
	}
	if entry.URL == nil {
		t.Error("URL should be stored")
	}
	if !entry.HasEmbedding() {
		t.Error("entry should be embedded at capture")
	}
	if entry.Created.IsZero() {
		t.Error("Created should default to now")
	}
}

func TestCaptureEmptyTextRejected(t *testing.T) {
	svc := NewJournalService(newFakeStore(), nil, nil)

	if _, err := svc.Capture(context.Background(), CaptureInput{Text: "   "}); err == nil {
		t.Error("expected error for whitespace-only text")
	}
}

func TestCaptureSurvivesEmbedFailure(t *testing.T) {
	store := newFakeStore()
	svc := NewJournalService(store, &fakeEmbedder{err: errors.New("ollama down")}, nil)

	entry, err := svc.Capture(context.Background(), CaptureInput{Text: "note"})
	if err != nil {
		t.Fatal(err)
	}
	if entry.HasEmbedding() {
		t.Error("entry should be stored without embedding when embed fails")
	}
}

func TestSearchAppliesParsedTimeWindow(t *testing.T) {
	now := time.Date(2026, time.March, 18, 14, 30, 0, 0, time.UTC)
	vec := []float32{1, 0, 0}

	mk := func(id, text string, created time.Time) models.JournalEntry {
		return models.JournalEntry{ID: recordID(id), Text: text, Embedding: vec, Created: created}
	}
	store := newFakeStore(
		mk("e1", "standup notes", now),                     // today
		mk("e2", "standup notes old", now.AddDate(0, 0, -10)), // outside today
	)

	svc := NewSearchService(store, newTestEngine(vec), nil, nil)
	svc.now = func() time.Time { return now }

	result, err := svc.Search(context.Background(), "standup today", SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Time == nil || result.Time.Label != "today" {
		t.Fatalf("time filter = %+v, want today", result.Time)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("got %d matches, want 1", len(result.Matches))
	}
	if result.Matches[0].Entry.Text != "standup notes" {
		t.Errorf("match = %q", result.Matches[0].Entry.Text)
	}
}

func TestSearchResolvesSiteFilter(t *testing.T) {
	vec := []float32{1, 0, 0}
	gh := "https://github.com/acme/api/pull/1"
	docs := "https://docs.google.com/doc/1"

	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "review", URL: &gh, Embedding: vec, Created: time.Now()},
		models.JournalEntry{ID: recordID("e2"), Text: "review", URL: &docs, Embedding: vec, Created: time.Now()},
	)

	svc := NewSearchService(store, newTestEngine(vec), nil, nil)

	result, err := svc.Search(context.Background(), "review on github", SearchOptions{})
	if err != nil {
		t.Fatal(err)
	}

	if result.Site != "github.com" {
		t.Errorf("Site = %q, want github.com", result.Site)
	}
	if len(result.Matches) != 1 || result.Matches[0].Entry.URL == nil || *result.Matches[0].Entry.URL != gh {
		t.Errorf("matches = %+v, want only the github entry", result.Matches)
	}
}

// fakeReviewer records its inputs and returns a canned answer.
type fakeReviewer struct {
	question string
	evidence string
}

func (f *fakeReviewer) SynthesizeReview(_ context.Context, question, evidence string) (string, error) {
	f.question = question
	f.evidence = evidence
	return "You shipped things.", nil
}

func TestReviewBuildsDatedEvidence(t *testing.T) {
	vec := []float32{1, 0, 0}
	url := "https://github.com/acme/api/pull/9"
	created := time.Date(2026, time.March, 12, 9, 0, 0, 0, time.UTC)

	store := newFakeStore(models.JournalEntry{
		ID: recordID("e1"), Text: "merged retry logic", URL: &url, Embedding: vec, Created: created,
	})

	reviewer := &fakeReviewer{}
	svc := NewSearchService(store, newTestEngine(vec), reviewer, nil)

	answer, err := svc.Review(context.Background(), "what did I accomplish")
	if err != nil {
		t.Fatal(err)
	}
	if answer != "You shipped things." {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(reviewer.evidence, "2026-03-12: merged retry logic") {
		t.Errorf("evidence = %q, want dated line", reviewer.evidence)
	}
	if !strings.Contains(reviewer.evidence, url) {
		t.Errorf("evidence should include the entry URL")
	}
}

func TestReviewWithoutModel(t *testing.T) {
	svc := NewSearchService(newFakeStore(), newTestEngine([]float32{1}), nil, nil)

	if _, err := svc.Review(context.Background(), "anything"); err == nil {
		t.Error("expected error when no model is configured")
	}
}

func TestDashboard(t *testing.T) {
	now := time.Date(2026, time.March, 18, 14, 0, 0, 0, time.UTC)
	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "deployment pipeline work", Created: now},
		models.JournalEntry{ID: recordID("e2"), Text: "deployment review", Created: now.Add(-time.Hour)},
	)

	svc := NewInsightsService(store)
	svc.now = func() time.Time { return now }

	dash, err := svc.Dashboard(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dash.TotalEntries != 2 {
		t.Errorf("TotalEntries = %d, want 2", dash.TotalEntries)
	}
	if dash.TodayCount != 2 {
		t.Errorf("TodayCount = %d, want 2", dash.TodayCount)
	}
}

func TestBackfillEmbedsPending(t *testing.T) {
	vec := []float32{0.5, 0.5}
	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "one", Created: time.Now()},
		models.JournalEntry{ID: recordID("e2"), Text: "two", Created: time.Now()},
		models.JournalEntry{ID: recordID("e3"), Text: "embedded", Embedding: vec, Created: time.Now()},
	)

	svc := NewBackfillService(store, &fakeEmbedder{vec: vec}, nil)

	var progress []int
	result, err := svc.Run(context.Background(), func(done, total int) {
		progress = append(progress, done)
		if total != 2 {
			t.Errorf("total = %d, want 2", total)
		}
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Scanned != 2 || result.Embedded != 2 || result.Failed != 0 {
		t.Errorf("result = %+v", result)
	}
	if len(progress) == 0 || progress[len(progress)-1] != 2 {
		t.Errorf("progress = %v, want final 2", progress)
	}
	remaining, _ := store.ListMissingEmbeddings(context.Background())
	if len(remaining) != 0 {
		t.Errorf("%d entries still missing embeddings", len(remaining))
	}
}

func TestBackfillAbortsOnFatalError(t *testing.T) {
	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "one", Created: time.Now()},
	)
	embedder := &fakeEmbedder{batchErr: fmt.Errorf("%w: invalid api key", llm.ErrFatalAPI)}

	svc := NewBackfillService(store, embedder, nil)

	_, err := svc.Run(context.Background(), nil)
	if !errors.Is(err, llm.ErrFatalAPI) {
		t.Errorf("err = %v, want ErrFatalAPI", err)
	}
}

func TestBackfillSkipsTransientBatchFailure(t *testing.T) {
	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "one", Created: time.Now()},
		models.JournalEntry{ID: recordID("e2"), Text: "two", Created: time.Now()},
	)
	embedder := &fakeEmbedder{batchErr: errors.New("connection reset")}

	svc := NewBackfillService(store, embedder, nil)

	result, err := svc.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Failed != 2 || result.Embedded != 0 {
		t.Errorf("result = %+v, want 2 failed", result)
	}
	if len(result.Errors) != 1 {
		t.Errorf("errors = %v", result.Errors)
	}
}

func TestBackfillNothingPending(t *testing.T) {
	store := newFakeStore(
		models.JournalEntry{ID: recordID("e1"), Text: "done", Embedding: []float32{1}, Created: time.Now()},
	)
	embedder := &fakeEmbedder{vec: []float32{1}}

	svc := NewBackfillService(store, embedder, nil)

	result, err := svc.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if result.Scanned != 0 {
		t.Errorf("Scanned = %d, want 0", result.Scanned)
	}
	if embedder.calls != 0 {
		t.Error("embedder should not be called with nothing pending")
	}
}
