package ingest

import "strings"

// Chunker splits cleaned text into overlapping word-windowed chunks so each
// embedding covers a bounded span with context carried across boundaries.
type Chunker struct {
	Size    int // words per chunk
	Overlap int // words shared between consecutive chunks
}

// NewChunker creates a chunker, clamping nonsensical settings to defaults.
func NewChunker(size, overlap int) *Chunker {
	if size <= 0 {
		size = 512
	}
	if overlap < 0 || overlap >= size {
		overlap = size / 8
	}
	return &Chunker{Size: size, Overlap: overlap}
}

// Chunk splits text into overlapping chunks. Short text yields one chunk;
// empty text yields none.
func (c *Chunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	if len(words) <= c.Size {
		return []string{strings.Join(words, " ")}
	}

	step := c.Size - c.Overlap
	var chunks []string
	for start := 0; start < len(words); start += step {
		end := start + c.Size
		if end > len(words) {
			end = len(words)
		}
		chunks = append(chunks, strings.Join(words[start:end], " "))
		if end == len(words) {
			break
		}
	}
	return chunks
}
