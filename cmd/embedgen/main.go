// embedgen precomputes embeddings for a product catalog JSON file so the
// API server can score semantic queries without calling the provider per
// product at runtime.
//
// Usage:
//
//	OPENAI_API_KEY=... embedgen -in products.json -out product_embeddings.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/mamatega/assistant/internal/domain"
	logpkg "github.com/mamatega/assistant/internal/logger"
	openaiTransport "github.com/mamatega/assistant/internal/transport/openai"
)

func main() {
	var (
		inPath     = flag.String("in", "products.json", "input product catalog JSON")
		outPath    = flag.String("out", "product_embeddings.json", "output catalog JSON with embeddings")
		model      = flag.String("model", "text-embedding-3-small", "embedding model")
		dimensions = flag.Int("dimensions", 0, "embedding dimensions (0 = model default)")
		force      = flag.Bool("force", false, "re-embed products that already have embeddings")
	)
	flag.Parse()

	_ = godotenv.Load()

	logger, err := logpkg.NewLogger("local", "")
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		logger.Fatal("OPENAI_API_KEY is required")
	}

	data, err := os.ReadFile(*inPath)
	if err != nil {
		logger.Fatal("Failed to read input", zap.String("path", *inPath), zap.Error(err))
	}

	var products []domain.Product
	if err := json.Unmarshal(data, &products); err != nil {
		logger.Fatal("Failed to parse input", zap.Error(err))
	}

	embedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     apiKey,
		Model:      *model,
		Dimensions: *dimensions,
		Logger:     logger,
	})

	ctx := context.Background()
	var embedded, skipped, failed int
	for i := range products {
		p := &products[i]
		if strings.TrimSpace(p.Title) == "" {
			skipped++
			continue
		}
		if len(p.Embedding) > 0 && !*force {
			skipped++
			continue
		}

		result, err := embedder.Embed(ctx, embeddingText(p))
		if err != nil {
			logger.Warn("Embedding failed", zap.String("title", p.Title), zap.Error(err))
			failed++
			continue
		}
		p.Embedding = result.Embedding
		embedded++

		if embedded%25 == 0 {
			logger.Info("Progress", zap.Int("embedded", embedded), zap.Int("total", len(products)))
		}
		// Stay well under provider rate limits.
		time.Sleep(100 * time.Millisecond)
	}

	out, err := json.MarshalIndent(products, "", "  ")
	if err != nil {
		logger.Fatal("Failed to encode output", zap.Error(err))
	}
	if err := os.WriteFile(*outPath, out, 0o644); err != nil {
		logger.Fatal("Failed to write output", zap.String("path", *outPath), zap.Error(err))
	}

	logger.Info("Catalog written",
		zap.String("path", *outPath),
		zap.Int("products", len(products)),
		zap.Int("embedded", embedded),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
	)
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d products failed to embed; rerun to retry\n", failed)
		os.Exit(1)
	}
}

// embeddingText builds the text that is vectorized per product. Matches what
// the server embeds for queries: plain natural language, no markup.
func embeddingText(p *domain.Product) string {
	parts := []string{p.Title}
	if p.Brand != "" {
		parts = append(parts, p.Brand)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if len(p.Tags) > 0 {
		parts = append(parts, strings.Join(p.Tags, " "))
	}
	return strings.Join(parts, ". ")
}
