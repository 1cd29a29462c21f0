package services

import (
	"strings"
	"testing"
)

func TestChunkText_ShortTextSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("One short paragraph.", 1000, 200)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != "One short paragraph." {
		t.Errorf("chunk: got %q", chunks[0])
	}
}

func TestChunkText_SplitsLongInput(t *testing.T) {
	chunker := NewTextChunker()

	var sb strings.Builder
	for i := 0; i < 40; i++ {
		sb.WriteString("A paragraph about one of the sustainable development targets.\n\n")
	}

	chunks := chunker.ChunkText(sb.String(), 300, 50)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 400 {
			t.Errorf("chunk %d far exceeds the max size: %d bytes", i, len(c))
		}
	}
}

func TestChunkText_EmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	if chunks := chunker.ChunkText("", 1000, 200); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
}
