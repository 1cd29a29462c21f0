package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"sdgeval/proposal-evaluator/internal/models"
)

type fakeCache struct {
	entries map[string]string
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]string)}
}

func (f *fakeCache) Get(ctx context.Context, key string) (string, bool, error) {
	v, ok := f.entries[key]
	return v, ok, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, text string) error {
	f.entries[key] = text
	f.sets++
	return nil
}

func (f *fakeCache) Close() error { return nil }

func writeTempDoc(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestExtractText_UnsupportedMediaType(t *testing.T) {
	extractor := NewTextExtractor(newFakeCache())
	doc := &models.Document{
		MediaType: "text/plain",
		FilePath:  writeTempDoc(t, "proposal.txt", []byte("plain text")),
	}

	_, err := extractor.ExtractText(context.Background(), doc)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("got %v, want ErrUnsupportedFormat", err)
	}
}

func TestExtractText_CorruptPDF(t *testing.T) {
	extractor := NewTextExtractor(newFakeCache())
	doc := &models.Document{
		MediaType: models.MediaTypePDF,
		FilePath:  writeTempDoc(t, "proposal.pdf", []byte("definitely not a pdf")),
	}

	if _, err := extractor.ExtractText(context.Background(), doc); err == nil {
		t.Error("expected error for corrupt PDF")
	}
}

func TestExtractText_DOCX(t *testing.T) {
	data := buildDOCX(t, []string{"A proposal paragraph."})
	cache := newFakeCache()
	extractor := NewTextExtractor(cache)
	doc := &models.Document{
		MediaType: models.MediaTypeDOCX,
		FilePath:  writeTempDoc(t, "proposal.docx", data),
	}

	text, err := extractor.ExtractText(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A proposal paragraph.\n" {
		t.Errorf("got %q", text)
	}
	if cache.sets != 1 {
		t.Errorf("expected extracted text to be cached once, sets=%d", cache.sets)
	}
}

func TestExtractText_ServedFromCache(t *testing.T) {
	data := []byte("bytes that no parser could read")
	cache := newFakeCache()
	sum := sha256.Sum256(data)
	cache.entries[hex.EncodeToString(sum[:])] = "previously extracted text"

	extractor := NewTextExtractor(cache)
	doc := &models.Document{
		MediaType: models.MediaTypePDF,
		FilePath:  writeTempDoc(t, "proposal.pdf", data),
	}

	text, err := extractor.ExtractText(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "previously extracted text" {
		t.Errorf("cache was not consulted, got %q", text)
	}
}

func TestExtractText_MissingFile(t *testing.T) {
	extractor := NewTextExtractor(newFakeCache())
	doc := &models.Document{
		MediaType: models.MediaTypePDF,
		FilePath:  filepath.Join(t.TempDir(), "gone.pdf"),
	}

	if _, err := extractor.ExtractText(context.Background(), doc); err == nil {
		t.Error("expected error for a missing file")
	}
}
