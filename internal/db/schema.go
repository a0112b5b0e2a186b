package db

import "fmt"

// SchemaSQL returns the schema initialization SQL for the given embedding
// dimension. The dimension must match the configured embedding model.
func SchemaSQL(dimension int) string {
	return fmt.Sprintf(`
    -- ==========================================================================
    -- ENTRY TABLE (journal entries)
    -- ==========================================================================
    DEFINE TABLE IF NOT EXISTS entry SCHEMAFULL;
    DEFINE FIELD IF NOT EXISTS text ON entry TYPE string;
    DEFINE FIELD IF NOT EXISTS url ON entry TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS title ON entry TYPE option<string>;
    DEFINE FIELD IF NOT EXISTS source ON entry TYPE string DEFAULT "manual";
    -- Stable identifier in the source system, e.g. a GitHub PR URL.
    DEFINE FIELD IF NOT EXISTS external_id ON entry TYPE option<string>;
    -- Embeddings are filled in lazily; entries without one still participate
    -- in lexical retrieval.
    DEFINE FIELD IF NOT EXISTS embedding ON entry TYPE option<array<float>>;
    DEFINE FIELD IF NOT EXISTS created ON entry TYPE datetime DEFAULT time::now();

    DEFINE INDEX IF NOT EXISTS entry_created ON entry FIELDS created;
    DEFINE INDEX IF NOT EXISTS entry_external_id ON entry FIELDS external_id UNIQUE;
    DEFINE INDEX IF NOT EXISTS entry_embedding ON entry FIELDS embedding HNSW DIMENSION %d DIST COSINE TYPE F32;
    DEFINE ANALYZER IF NOT EXISTS entry_analyzer TOKENIZERS class FILTERS lowercase, ascii, snowball(english);
    DEFINE INDEX IF NOT EXISTS entry_text_ft ON entry FIELDS text FULLTEXT ANALYZER entry_analyzer BM25;
`, dimension)
}
