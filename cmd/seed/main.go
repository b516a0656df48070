package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/mrchongyl/zus-chatbot/internal/config"
	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/internal/entity"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/repository/implementation"
	"github.com/mrchongyl/zus-chatbot/internal/service"
	"github.com/mrchongyl/zus-chatbot/pkg/database"
	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
)

// Seeds outlets and products from the scraped JSON files, then runs the
// embedding pipeline until every product has a stored vector.
func main() {
	outletsPath := flag.String("outlets", "data/zus_outlets.json", "path to outlets JSON")
	productsPath := flag.String("products", "data/zus_products.json", "path to products JSON")
	timeout := flag.Duration("timeout", 5*time.Minute, "embedding pipeline deadline")
	flag.Parse()

	cfg := config.Load()

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatalf("Error: Failed to connect to database: %v", err)
	}

	outletRepo := implementation.NewOutletRepository(db)
	productRepo := implementation.NewProductRepository(db)
	embeddingRepo := implementation.NewProductEmbeddingRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	// 1. Outlets
	var outletRows []dto.OutletImportDTO
	mustReadJSON(*outletsPath, &outletRows)
	outlets := make([]*entity.Outlet, len(outletRows))
	for i, row := range outletRows {
		outlets[i] = &entity.Outlet{
			Name:         row.Name,
			Address:      row.Address,
			Area:         row.Area,
			State:        row.State,
			OpeningTime:  row.OpeningTime,
			ClosingTime:  row.ClosingTime,
			DirectionUrl: row.DirectionUrl,
		}
	}
	if err := outletRepo.CreateBulk(ctx, outlets); err != nil {
		log.Fatalf("Error: Failed to seed outlets: %v", err)
	}
	log.Printf("Seeded %d outlets", len(outlets))

	// 2. Products
	var productRows []dto.ProductImportDTO
	mustReadJSON(*productsPath, &productRows)
	products := make([]*entity.Product, len(productRows))
	for i, row := range productRows {
		products[i] = &entity.Product{
			Name:        row.Name,
			Category:    row.Category,
			Price:       row.Price,
			Description: row.Description,
			Promotion:   row.Promotion,
			Colours:     row.Colours,
		}
	}
	if err := productRepo.CreateBulk(ctx, products); err != nil {
		log.Fatalf("Error: Failed to seed products: %v", err)
	}
	log.Printf("Seeded %d products", len(products))

	// 3. Embedding pipeline: publish one message per product and let the
	// consumer fill product_embeddings.
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, false)
	defer sysLogger.Sync()

	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
	}

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	consumer := service.NewConsumerService(pubSub, cfg.Keys.EmbedTopic, productRepo, embeddingRepo, embeddingProvider, sysLogger)
	publisher := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)

	if err := consumer.Consume(ctx); err != nil {
		log.Fatalf("Error: Failed to start consumer: %v", err)
	}

	for _, product := range products {
		payload, err := json.Marshal(dto.PublishEmbedProductMessage{ProductId: product.Id})
		if err != nil {
			log.Fatalf("Error: Failed to marshal embed message: %v", err)
		}
		if err := publisher.Publish(ctx, payload); err != nil {
			log.Fatalf("Error: Failed to publish embed message: %v", err)
		}
	}

	// 4. Wait for the consumer to catch up.
	want := int64(len(products))
	for {
		count, err := embeddingRepo.Count(ctx)
		if err != nil {
			log.Fatalf("Error: Failed to count embeddings: %v", err)
		}
		log.Printf("Embeddings stored: %d/%d", count, want)
		if count >= want {
			break
		}
		select {
		case <-ctx.Done():
			log.Fatalf("Error: Embedding pipeline timed out at %d/%d", count, want)
		case <-time.After(2 * time.Second):
		}
	}

	log.Println("Seed complete.")
}

func mustReadJSON(path string, out interface{}) {
	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("Error: Failed to read %s: %v", path, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("Error: Failed to parse %s: %v", path, err)
	}
}
