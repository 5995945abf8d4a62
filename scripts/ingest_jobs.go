package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"resumatch/resume-analyzer/internal/config"
	"resumatch/resume-analyzer/internal/logger"
	"resumatch/resume-analyzer/internal/services"
)

// Seeds the similar-jobs index from a directory of job description PDFs so
// the search endpoint has data before any analysis has run.
func main() {
	dir := flag.String("dir", "./reference_jobs", "directory of job description PDFs")
	flag.Parse()

	cfg := config.Load()

	zapLogger, err := logger.New(false, true)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	_, embedder, err := services.NewProviders(cfg.LLM)
	if err != nil {
		log.Fatalf("failed to initialize LLM provider: %v", err)
	}

	jobIndex, err := services.NewJobIndexService(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, zapLogger)
	if err != nil {
		log.Fatalf("failed to initialize qdrant: %v", err)
	}
	if err := jobIndex.InitCollection(); err != nil {
		log.Fatalf("failed to initialize collection: %v", err)
	}

	pdfParser := services.NewPDFParserService()
	similarity := services.NewSimilarityEngine(embedder)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		log.Fatalf("failed to read directory %s: %v", *dir, err)
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		log.Printf("processing %s", path)

		text, err := pdfParser.ExtractText(path)
		if err != nil {
			log.Printf("failed to extract text from %s: %v", path, err)
			failCount++
			continue
		}

		embedding, err := similarity.EmbedDocument(ctx, text)
		if err != nil {
			log.Printf("failed to embed %s: %v", path, err)
			failCount++
			continue
		}

		if err := jobIndex.UpsertJob(ctx, uuid.New(), text, embedding); err != nil {
			log.Printf("failed to index %s: %v", path, err)
			failCount++
			continue
		}

		log.Printf("indexed %s (%d characters)", entry.Name(), len(text))
		successCount++
	}

	log.Printf("ingestion complete: %d indexed, %d failed", successCount, failCount)
	if failCount > 0 {
		os.Exit(1)
	}
}
