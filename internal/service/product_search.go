package service

import (
	"context"

	"github.com/mrchongyl/zus-chatbot/internal/repository/contract"
	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
	"github.com/mrchongyl/zus-chatbot/pkg/retrieval"
)

// ProductHit is one scored catalog match, independent of which search
// backend produced it.
type ProductHit struct {
	Name       string
	Category   string
	Price      string
	Promotion  string
	Colours    []string
	Document   string
	Similarity float64
}

// IProductSearcher abstracts the vector search backend. The bundle index
// and the pgvector store are interchangeable behind it.
type IProductSearcher interface {
	Search(ctx context.Context, query string, k int) ([]ProductHit, error)
}

// bundleProductSearcher serves hits from an in-process index loaded from a
// saved bundle. Product details travel in item metadata.
type bundleProductSearcher struct {
	index *retrieval.Index
}

func NewBundleProductSearcher(index *retrieval.Index) IProductSearcher {
	return &bundleProductSearcher{index: index}
}

func (s *bundleProductSearcher) Search(ctx context.Context, query string, k int) ([]ProductHit, error) {
	results, err := s.index.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}

	hits := make([]ProductHit, 0, len(results))
	for _, res := range results {
		hits = append(hits, ProductHit{
			Name:       metaString(res.Item.Metadata, "name"),
			Category:   metaString(res.Item.Metadata, "category"),
			Price:      metaString(res.Item.Metadata, "price"),
			Promotion:  metaString(res.Item.Metadata, "promotion"),
			Colours:    metaStrings(res.Item.Metadata, "colours"),
			Document:   res.Item.Text,
			Similarity: float64(res.Score),
		})
	}
	return hits, nil
}

// pgvectorProductSearcher serves hits from the product_embeddings table.
type pgvectorProductSearcher struct {
	embeddingProvider embedding.Provider
	embeddingRepo     contract.ProductEmbeddingRepository
	productRepo       contract.ProductRepository
	threshold         float64
}

func NewPgvectorProductSearcher(
	embeddingProvider embedding.Provider,
	embeddingRepo contract.ProductEmbeddingRepository,
	productRepo contract.ProductRepository,
	threshold float64,
) IProductSearcher {
	return &pgvectorProductSearcher{
		embeddingProvider: embeddingProvider,
		embeddingRepo:     embeddingRepo,
		productRepo:       productRepo,
		threshold:         threshold,
	}
}

func (s *pgvectorProductSearcher) Search(ctx context.Context, query string, k int) ([]ProductHit, error) {
	vector, err := s.embeddingProvider.Embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	scored, err := s.embeddingRepo.SearchSimilarWithScore(ctx, vector, k, s.threshold)
	if err != nil {
		return nil, err
	}

	hits := make([]ProductHit, 0, len(scored))
	for _, se := range scored {
		hit := ProductHit{
			Document:   se.Embedding.Document,
			Similarity: se.Similarity,
		}
		product, err := s.productRepo.FindById(ctx, se.Embedding.ProductId)
		if err != nil {
			return nil, err
		}
		if product != nil {
			hit.Name = product.Name
			hit.Category = product.Category
			hit.Price = product.Price
			hit.Promotion = product.Promotion
			hit.Colours = product.Colours
		}
		hits = append(hits, hit)
	}
	return hits, nil
}

func metaString(meta map[string]interface{}, key string) string {
	if meta == nil {
		return ""
	}
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}

func metaStrings(meta map[string]interface{}, key string) []string {
	if meta == nil {
		return nil
	}
	switch v := meta[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
