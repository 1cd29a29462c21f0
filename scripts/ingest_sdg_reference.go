package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"sdgeval/proposal-evaluator/internal/config"
	"sdgeval/proposal-evaluator/internal/services"
)

// Ingests SDG goal and target descriptions into the qdrant collection used
// to ground evaluation prompts.
func main() {
	log.Println("🚀 Starting SDG reference ingestion...")

	// Load configuration
	cfg := config.Load()

	if cfg.Gemini.APIKey == "" {
		log.Fatal("❌ GEMINI_API_KEY is required for embedding reference documents")
	}
	if cfg.Qdrant.URL == "" {
		log.Fatal("❌ QDRANT_URL is required for reference ingestion")
	}

	geminiService, err := services.NewGeminiService(cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Gemini: %v", err)
	}

	qdrantService, err := services.NewQdrantService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := qdrantService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	chunker := services.NewTextChunker()

	ctx := context.Background()

	documents := []struct {
		Path   string
		Source string
		Name   string
	}{
		{
			Path:   "./reference_docs/sdg_goals_overview.pdf",
			Source: "sdg_goals_overview",
			Name:   "The 17 Sustainable Development Goals - Overview",
		},
		{
			Path:   "./reference_docs/sdg_targets_indicators.pdf",
			Source: "sdg_targets_indicators",
			Name:   "SDG Targets and Indicators",
		},
	}

	successCount := 0
	failCount := 0

	for _, doc := range documents {
		log.Printf("\n📄 Processing: %s", doc.Name)
		log.Printf("   Path: %s", doc.Path)

		if _, err := os.Stat(doc.Path); os.IsNotExist(err) {
			log.Printf("   ⚠️  File not found, skipping...")
			failCount++
			continue
		}

		log.Printf("   📖 Extracting text...")
		text, err := services.ExtractPDFText(doc.Path)
		if err != nil {
			log.Printf("   ❌ Failed to extract text: %v", err)
			failCount++
			continue
		}

		log.Printf("   ✅ Extracted %d characters", len(text))

		log.Printf("   ✂️  Chunking text...")
		chunks := chunker.ChunkText(text, 1000, 200)
		log.Printf("   ✅ Created %d chunks", len(chunks))

		log.Printf("   🔄 Embedding and storing chunks...")
		for i, chunk := range chunks {
			embedding, err := geminiService.GenerateEmbedding(ctx, chunk)
			if err != nil {
				log.Printf("   ❌ Failed to generate embedding for chunk %d: %v", i+1, err)
				continue
			}

			snippetID := fmt.Sprintf("%s_chunk_%d", doc.Source, i)

			err = qdrantService.UpsertSnippet(ctx, snippetID, doc.Source, chunk, embedding)
			if err != nil {
				log.Printf("   ❌ Failed to store chunk %d: %v", i+1, err)
				continue
			}

			if (i+1)%5 == 0 || i == len(chunks)-1 {
				log.Printf("   📊 Progress: %d/%d chunks stored", i+1, len(chunks))
			}
		}

		log.Printf("   ✅ Successfully ingested %s", doc.Name)
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Ingestion Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some documents failed to ingest. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All reference documents ingested successfully!")
}
