package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mrchongyl/zus-chatbot/internal/config"
	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
	"github.com/mrchongyl/zus-chatbot/pkg/retrieval"
)

// Builds the product retrieval bundle from the scraped products JSON.
// The REST server loads the bundle when RETRIEVAL_BACKEND=bundle.
func main() {
	productsPath := flag.String("products", "data/zus_products.json", "path to products JSON")
	outDir := flag.String("out", "data/vector_store", "bundle output directory")
	flag.Parse()

	cfg := config.Load()

	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	raw, err := os.ReadFile(*productsPath)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", *productsPath, err)
	}
	var products []dto.ProductImportDTO
	if err := json.Unmarshal(raw, &products); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", *productsPath, err)
	}
	if len(products) == 0 {
		log.Fatalf("Error: No products found in %s", *productsPath)
	}

	items := make([]retrieval.Item, len(products))
	for i, p := range products {
		items[i] = retrieval.Item{
			ID:   fmt.Sprintf("product-%d", i),
			Text: productDocument(p),
			Metadata: map[string]interface{}{
				"name":      p.Name,
				"category":  p.Category,
				"price":     p.Price,
				"promotion": p.Promotion,
				"colours":   p.Colours,
			},
		}
	}

	index := retrieval.NewIndex(embeddingProvider)
	if err := index.Build(context.Background(), items); err != nil {
		log.Fatalf("Error: Failed to build index: %v", err)
	}
	if err := index.Save(*outDir); err != nil {
		log.Fatalf("Error: Failed to save bundle: %v", err)
	}

	log.Printf("Bundle written to %s (%d items, %d dimensions)", *outDir, index.Len(), index.Dimension())
}

func productDocument(p dto.ProductImportDTO) string {
	colours := "No colours specified"
	if len(p.Colours) > 0 {
		colours = strings.Join(p.Colours, ", ")
	}
	promotion := p.Promotion
	if promotion == "" {
		promotion = "N/A"
	}
	return fmt.Sprintf(`Product: %s
Category: %s
Price: %s
Colours: %s
Promotion: %s

%s`,
		p.Name, p.Category, p.Price, colours, promotion, p.Description)
}
