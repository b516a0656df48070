// Package retrieval implements the in-memory vector index over the product
// catalog: brute-force inner product over unit-normalized embeddings, which
// equals cosine similarity. The index is built once and then read-only, so it
// is shared across concurrent requests without locking.
package retrieval

import (
	"context"
	"fmt"
	"sort"

	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
)

// Item is one indexed catalog entry. Text is the canonical representation
// that was embedded; Metadata is carried through to search results untouched.
type Item struct {
	ID       string                 `json:"id"`
	Text     string                 `json:"text"`
	Metadata map[string]interface{} `json:"metadata"`
}

// Result is a scored search hit. Rank is 1-based and dense.
type Result struct {
	Item  Item    `json:"item"`
	Score float32 `json:"score"`
	Rank  int     `json:"rank"`
}

type Index struct {
	embedder  embedding.Provider
	dimension int
	vectors   [][]float32
	items     []Item
	built     bool
}

func NewIndex(embedder embedding.Provider) *Index {
	return &Index{embedder: embedder}
}

// Build embeds every item and freezes the index. Calling Build twice is a
// programming error.
func (ix *Index) Build(ctx context.Context, items []Item) error {
	if ix.built {
		return fmt.Errorf("index is immutable once built")
	}

	vectors := make([][]float32, 0, len(items))
	for i, item := range items {
		vec, err := ix.embedder.Embed(ctx, item.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return fmt.Errorf("embed item %d (%s): %w", i, item.ID, err)
		}
		if ix.dimension == 0 {
			ix.dimension = len(vec)
		} else if len(vec) != ix.dimension {
			return fmt.Errorf("embedding dimension changed mid-build: got %d, want %d", len(vec), ix.dimension)
		}
		vectors = append(vectors, embedding.Normalize(vec))
	}

	ix.items = items
	ix.vectors = vectors
	ix.built = true
	return nil
}

// Search embeds the query and returns the top min(k, N) items ordered by
// non-increasing score; equal scores keep catalog insertion order. An empty
// index returns an empty slice without calling the embedding backend.
func (ix *Index) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("top_k must be positive, got %d", k)}
	}
	if len(ix.items) == 0 {
		return []Result{}, nil
	}

	queryVec, err := ix.embedder.Embed(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	if len(queryVec) != ix.dimension {
		return nil, fmt.Errorf("query embedding dimension %d does not match index dimension %d", len(queryVec), ix.dimension)
	}
	queryVec = embedding.Normalize(queryVec)

	scores := make([]float32, len(ix.vectors))
	for i, vec := range ix.vectors {
		scores[i] = dot(queryVec, vec)
	}

	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps insertion order between equal scores.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]Result, k)
	for rank := 0; rank < k; rank++ {
		idx := order[rank]
		results[rank] = Result{
			Item:  ix.items[idx],
			Score: scores[idx],
			Rank:  rank + 1,
		}
	}
	return results, nil
}

func (ix *Index) Len() int {
	return len(ix.items)
}

func (ix *Index) Dimension() int {
	return ix.dimension
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}
