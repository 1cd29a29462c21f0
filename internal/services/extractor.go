package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log"
	"os"

	"sdgeval/proposal-evaluator/internal/models"
)

// TextExtractor converts an uploaded proposal into plain text, dispatching
// on the document's declared media type.
type TextExtractor interface {
	ExtractText(ctx context.Context, doc *models.Document) (string, error)
}

type textExtractor struct {
	cache ExtractionCache
}

func NewTextExtractor(cache ExtractionCache) TextExtractor {
	if cache == nil {
		cache = NewNoopExtractionCache()
	}
	return &textExtractor{cache: cache}
}

// ExtractText implements TextExtractor.
func (e *textExtractor) ExtractText(ctx context.Context, doc *models.Document) (string, error) {
	raw, err := os.ReadFile(doc.FilePath)
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}

	sum := sha256.Sum256(raw)
	cacheKey := hex.EncodeToString(sum[:])

	if text, ok, err := e.cache.Get(ctx, cacheKey); err != nil {
		log.Printf("⚠️  Extraction cache lookup failed: %v\n", err)
	} else if ok {
		return text, nil
	}

	var text string
	switch doc.MediaType {
	case models.MediaTypePDF:
		text, err = ExtractPDFText(doc.FilePath)
	case models.MediaTypeDOCX:
		text, err = ExtractDOCXText(raw)
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", err
	}

	if err := e.cache.Set(ctx, cacheKey, text); err != nil {
		log.Printf("⚠️  Failed to cache extracted text: %v\n", err)
	}

	return text, nil
}
