package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/hantec-labs/support-engine/internal/observability"
	"github.com/hantec-labs/support-engine/internal/retrieval"
)

// CleanedDocument is a fully processed page, before chunking.
type CleanedDocument struct {
	Filename  string   `json:"filename"`
	SourceURL string   `json:"source_url,omitempty"`
	Category  string   `json:"category"`
	Text      string   `json:"-"`
	Metadata  Metadata `json:"metadata"`
	Facts     KeyFacts `json:"facts"`
	Retention float64  `json:"retention"`
}

// Loader reads raw scraped .txt pages from a directory and produces indexable
// documents.
type Loader struct {
	dir     string
	chunker *Chunker
	logger  *observability.Logger
}

// NewLoader creates a loader over a directory of scraped .txt files.
func NewLoader(dir string, chunker *Chunker, logger *observability.Logger) *Loader {
	if chunker == nil {
		chunker = NewChunker(512, 64)
	}
	if logger == nil {
		logger = observability.Nop()
	}
	return &Loader{dir: dir, chunker: chunker, logger: logger.WithComponent("ingest")}
}

// ProcessFile cleans and annotates one raw page. Returns nil if the page is
// too short to be worth indexing.
func ProcessFile(filename, raw string) *CleanedDocument {
	cleaned, retention := Clean(raw)
	if len(cleaned) < MinDocumentChars {
		return nil
	}

	return &CleanedDocument{
		Filename:  filename,
		SourceURL: SourceURL(raw),
		Category:  Categorize(filename, cleaned),
		Text:      cleaned,
		Metadata:  ExtractMetadata(cleaned),
		Facts:     ExtractKeyFacts(cleaned),
		Retention: retention,
	}
}

// LoadDocuments cleans every .txt page in the directory.
func (l *Loader) LoadDocuments(ctx context.Context) ([]*CleanedDocument, error) {
	entries, err := filepath.Glob(filepath.Join(l.dir, "*.txt"))
	if err != nil {
		return nil, fmt.Errorf("list knowledge files: %w", err)
	}
	sort.Strings(entries)

	var docs []*CleanedDocument
	for _, path := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}

		filename := filepath.Base(path)
		doc := ProcessFile(filename, string(raw))
		if doc == nil {
			l.logger.Warn().Str("file", filename).Msg("Skipped page, too short after cleaning")
			continue
		}

		l.logger.Debug().
			Str("file", filename).
			Str("category", doc.Category).
			Int("words", doc.Metadata.WordCount).
			Float64("retention", doc.Retention).
			Msg("Cleaned page")
		docs = append(docs, doc)
	}

	return docs, nil
}

// Load cleans and chunks every page into retrieval documents. Satisfies
// retrieval.Loader.
func (l *Loader) Load(ctx context.Context) ([]retrieval.Document, error) {
	cleaned, err := l.LoadDocuments(ctx)
	if err != nil {
		return nil, err
	}

	var docs []retrieval.Document
	for _, doc := range cleaned {
		for i, chunk := range l.chunker.Chunk(doc.Text) {
			docs = append(docs, retrieval.Document{
				ID:       uuid.New().String(),
				Content:  chunk,
				Source:   sourceLabel(doc.Filename, i),
				Category: doc.Category,
			})
		}
	}

	l.logger.Info().
		Int("pages", len(cleaned)).
		Int("chunks", len(docs)).
		Msg("Knowledge base loaded")
	return docs, nil
}

// sourceLabel keeps the display label stable per page; the chunk index only
// appears for multi-chunk pages.
func sourceLabel(filename string, chunkIndex int) string {
	if chunkIndex == 0 {
		return filename
	}
	name := strings.TrimSuffix(filename, filepath.Ext(filename))
	return fmt.Sprintf("%s#%d", name, chunkIndex+1)
}
