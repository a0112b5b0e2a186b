// Integration tests for SurrealDB entry storage.
package db

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"github.com/sjha2048/worthkeeping.app/internal/models"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDB *Client
var testContainer testcontainers.Container

// TestMain sets up and tears down the SurrealDB container for all tests.
func TestMain(m *testing.M) {
	// Disable ryuk (cleanup container) as it can cause issues in some environments
	os.Setenv("TESTCONTAINERS_RYUK_DISABLED", "true")

	ctx := context.Background()

	var err error
	testContainer, err = testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "surrealdb/surrealdb:v3.0.0-beta.1",
			ExposedPorts: []string{"8000/tcp"},
			Cmd:          []string{"start", "--log", "info", "--user", "root", "--pass", "root"},
			WaitingFor:   wait.ForLog("Started web server").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		log.Fatalf("Failed to start SurrealDB container: %v", err)
	}

	host, err := testContainer.Host(ctx)
	if err != nil {
		log.Fatalf("Failed to get container host: %v", err)
	}
	// Workaround: testcontainers may return "null" as host in some environments
	if host == "" || host == "null" {
		host = "localhost"
	}
	mappedPort, err := testContainer.MappedPort(ctx, "8000")
	if err != nil {
		log.Fatalf("Failed to get mapped port: %v", err)
	}

	testDB, err = NewClient(ctx, Config{
		URL:       fmt.Sprintf("ws://%s:%s/rpc", host, mappedPort.Port()),
		Namespace: "test",
		Database:  "test",
		Username:  "root",
		Password:  "root",
		AuthLevel: "root",
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := testDB.InitSchema(ctx, models.EmbeddingDim); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	code := m.Run()

	_ = testDB.Close(ctx)
	_ = testContainer.Terminate(ctx)

	os.Exit(code)
}

// dummyEmbedding returns a 384-dimension vector matching the default
// all-minilm:l6-v2 model.
func dummyEmbedding() []float32 {
	embedding := make([]float32, models.EmbeddingDim)
	for i := range embedding {
		embedding[i] = float32(i) / float32(models.EmbeddingDim)
	}
	return embedding
}

func TestCreateEntry(t *testing.T) {
	ctx := context.Background()

	url := "https://github.com/acme/api/pull/42"
	entry, err := testDB.CreateEntry(ctx, models.EntryInput{
		Text:      "Reviewed the rate limiter rollout",
		URL:       &url,
		Embedding: dummyEmbedding(),
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	defer func() {
		_, _ = testDB.DeleteEntry(ctx, models.MustRecordIDString(entry.ID))
	}()

	if entry.Text != "Reviewed the rate limiter rollout" {
		t.Errorf("Text = %q", entry.Text)
	}
	if entry.URL == nil || *entry.URL != url {
		t.Errorf("URL = %v, want %q", entry.URL, url)
	}
	if entry.Source != models.SourceManual {
		t.Errorf("Source = %q, want manual", entry.Source)
	}
	if !entry.HasEmbedding() {
		t.Error("expected embedding to be stored")
	}
	if entry.Created.IsZero() {
		t.Error("Created should be set")
	}
}

func TestGetEntry(t *testing.T) {
	ctx := context.Background()

	created, err := testDB.CreateEntry(ctx, models.EntryInput{Text: "get test"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	id := models.MustRecordIDString(created.ID)
	defer func() { _, _ = testDB.DeleteEntry(ctx, id) }()

	entry, err := testDB.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry failed: %v", err)
	}
	if entry == nil {
		t.Fatal("GetEntry returned nil")
	}
	if entry.Text != "get test" {
		t.Errorf("Text = %q", entry.Text)
	}

	missing, err := testDB.GetEntry(ctx, "non-existent-id")
	if err != nil {
		t.Errorf("GetEntry with non-existent ID should not error: %v", err)
	}
	if missing != nil {
		t.Error("GetEntry with non-existent ID should return nil")
	}
}

func TestGetEntriesBetween(t *testing.T) {
	ctx := context.Background()

	base := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 3; i++ {
		entry, err := testDB.CreateEntry(ctx, models.EntryInput{
			Text:    fmt.Sprintf("between test %d", i),
			Created: base.AddDate(0, 0, i),
		})
		if err != nil {
			t.Fatalf("CreateEntry %d failed: %v", i, err)
		}
		ids = append(ids, models.MustRecordIDString(entry.ID))
	}
	defer func() {
		for _, id := range ids {
			_, _ = testDB.DeleteEntry(ctx, id)
		}
	}()

	// Window covering only the first two days.
	entries, err := testDB.GetEntriesBetween(ctx, base, base.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("GetEntriesBetween failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("got %d entries, want 2", len(entries))
	}
	// Newest first.
	if len(entries) == 2 && entries[0].Created.Before(entries[1].Created) {
		t.Error("entries should be ordered newest first")
	}
}

func TestListMissingEmbeddingsAndUpdate(t *testing.T) {
	ctx := context.Background()

	entry, err := testDB.CreateEntry(ctx, models.EntryInput{Text: "needs embedding"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	id := models.MustRecordIDString(entry.ID)
	defer func() { _, _ = testDB.DeleteEntry(ctx, id) }()

	missing, err := testDB.ListMissingEmbeddings(ctx)
	if err != nil {
		t.Fatalf("ListMissingEmbeddings failed: %v", err)
	}
	found := false
	for _, e := range missing {
		if models.MustRecordIDString(e.ID) == id {
			found = true
		}
	}
	if !found {
		t.Fatal("entry without embedding should be listed")
	}

	if err := testDB.UpdateEntryEmbedding(ctx, id, dummyEmbedding()); err != nil {
		t.Fatalf("UpdateEntryEmbedding failed: %v", err)
	}

	updated, err := testDB.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry after update failed: %v", err)
	}
	if updated == nil || !updated.HasEmbedding() {
		t.Error("embedding should be populated after update")
	}
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()

	entry, err := testDB.CreateEntry(ctx, models.EntryInput{Text: "delete me"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	id := models.MustRecordIDString(entry.ID)

	deleted, err := testDB.DeleteEntry(ctx, id)
	if err != nil {
		t.Fatalf("DeleteEntry failed: %v", err)
	}
	if !deleted {
		t.Error("DeleteEntry should return true for existing entry")
	}

	gone, err := testDB.GetEntry(ctx, id)
	if err != nil {
		t.Fatalf("GetEntry after delete failed: %v", err)
	}
	if gone != nil {
		t.Error("entry should be nil after delete")
	}

	deleted, err = testDB.DeleteEntry(ctx, "non-existent-id")
	if err != nil {
		t.Errorf("DeleteEntry with non-existent ID should not error: %v", err)
	}
	if deleted {
		t.Error("DeleteEntry with non-existent ID should return false")
	}
}

func TestExternalIDDeduplication(t *testing.T) {
	ctx := context.Background()

	extID := "https://github.com/acme/api/pull/99"
	entry, err := testDB.CreateEntry(ctx, models.EntryInput{
		Text:       "Merged PR #99",
		Source:     models.SourceGitHub,
		ExternalID: &extID,
	})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	id := models.MustRecordIDString(entry.ID)
	defer func() { _, _ = testDB.DeleteEntry(ctx, id) }()

	found, err := testDB.GetEntryByExternalID(ctx, extID)
	if err != nil {
		t.Fatalf("GetEntryByExternalID failed: %v", err)
	}
	if found == nil {
		t.Fatal("expected to find entry by external id")
	}
	if found.Source != models.SourceGitHub {
		t.Errorf("Source = %q, want github", found.Source)
	}

	missing, err := testDB.GetEntryByExternalID(ctx, "no-such-external-id")
	if err != nil {
		t.Fatalf("GetEntryByExternalID (missing) failed: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for unknown external id")
	}
}

func TestCountEntries(t *testing.T) {
	ctx := context.Background()

	before, err := testDB.CountEntries(ctx)
	if err != nil {
		t.Fatalf("CountEntries failed: %v", err)
	}

	entry, err := testDB.CreateEntry(ctx, models.EntryInput{Text: "count test"})
	if err != nil {
		t.Fatalf("CreateEntry failed: %v", err)
	}
	defer func() {
		_, _ = testDB.DeleteEntry(ctx, models.MustRecordIDString(entry.ID))
	}()

	after, err := testDB.CountEntries(ctx)
	if err != nil {
		t.Fatalf("CountEntries failed: %v", err)
	}
	if after != before+1 {
		t.Errorf("count = %d, want %d", after, before+1)
	}
}
