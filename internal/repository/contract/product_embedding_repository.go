package contract

import (
	"context"

	"github.com/mrchongyl/zus-chatbot/internal/entity"
)

// ScoredProductEmbedding wraps ProductEmbedding with its similarity score.
type ScoredProductEmbedding struct {
	Embedding  *entity.ProductEmbedding
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type ProductEmbeddingRepository interface {
	// Replace atomically swaps the stored embedding for one product.
	Replace(ctx context.Context, embedding *entity.ProductEmbedding) error
	Count(ctx context.Context) (int64, error)
	// SearchSimilarWithScore returns embeddings with their similarity
	// scores, highest first, filtered by threshold.
	SearchSimilarWithScore(ctx context.Context, embedding []float32, limit int, threshold float64) ([]*ScoredProductEmbedding, error)
}
