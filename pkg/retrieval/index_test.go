package retrieval

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/mrchongyl/zus-chatbot/pkg/embedding"
)

// fakeEmbedder produces deterministic bag-of-words vectors so that texts
// sharing tokens score higher, without any backend.
type fakeEmbedder struct {
	dim   int
	calls int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	vec := make([]float32, f.dim)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(token))
		vec[int(h.Sum32())%f.dim]++
	}
	return embedding.Normalize(vec), nil
}

func buildTestIndex(t *testing.T, texts []string) (*Index, *fakeEmbedder) {
	t.Helper()
	emb := &fakeEmbedder{dim: 16}
	ix := NewIndex(emb)
	items := make([]Item, len(texts))
	for i, text := range texts {
		items[i] = Item{
			ID:       fmt.Sprintf("item-%d", i),
			Text:     text,
			Metadata: map[string]interface{}{"name": text},
		}
	}
	if err := ix.Build(context.Background(), items); err != nil {
		t.Fatalf("Build: %v", err)
	}
	return ix, emb
}

func catalogTexts(n int) []string {
	texts := make([]string, n)
	for i := range texts {
		switch i % 5 {
		case 0:
			texts[i] = fmt.Sprintf("stainless steel tumbler %d with lid", i)
		case 1:
			texts[i] = fmt.Sprintf("ceramic mug %d", i)
		case 2:
			texts[i] = fmt.Sprintf("travel cup %d", i)
		case 3:
			texts[i] = fmt.Sprintf("cold brew bottle %d", i)
		default:
			texts[i] = fmt.Sprintf("glass cup %d", i)
		}
	}
	return texts
}

func TestSearchTopK(t *testing.T) {
	texts := catalogTexts(50)
	ix, _ := buildTestIndex(t, texts)

	for k := 1; k <= len(texts); k += 7 {
		results, err := ix.Search(context.Background(), "tumbler", k)
		if err != nil {
			t.Fatalf("Search(k=%d): %v", k, err)
		}
		if len(results) != k {
			t.Errorf("Search(k=%d) returned %d results", k, len(results))
		}
		for i, res := range results {
			if res.Rank != i+1 {
				t.Errorf("result %d has rank %d, want %d", i, res.Rank, i+1)
			}
			if res.Score < -1.0001 || res.Score > 1.0001 {
				t.Errorf("score %v out of [-1, 1]", res.Score)
			}
			if i > 0 && results[i-1].Score < res.Score {
				t.Errorf("scores increase at position %d: %v < %v", i, results[i-1].Score, res.Score)
			}
		}
	}
}

func TestSearchKExceedsN(t *testing.T) {
	ix, _ := buildTestIndex(t, []string{"tumbler", "mug", "cup"})
	results, err := ix.Search(context.Background(), "tumbler", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 3 {
		t.Errorf("Search(k=10) over 3 items returned %d results, want 3", len(results))
	}
}

func TestSearchInvalidK(t *testing.T) {
	ix, _ := buildTestIndex(t, []string{"tumbler"})
	for _, k := range []int{0, -1, -100} {
		_, err := ix.Search(context.Background(), "tumbler", k)
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Errorf("Search(k=%d) error = %v, want *ValidationError", k, err)
		}
	}
}

func TestSearchEmptyIndex(t *testing.T) {
	emb := &fakeEmbedder{dim: 16}
	ix := NewIndex(emb)
	if err := ix.Build(context.Background(), nil); err != nil {
		t.Fatalf("Build: %v", err)
	}

	results, err := ix.Search(context.Background(), "anything", 5)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("empty index returned %d results", len(results))
	}
	if emb.calls != 0 {
		t.Errorf("empty index issued %d embedding calls, want 0", emb.calls)
	}
}

func TestSearchTiesKeepInsertionOrder(t *testing.T) {
	// Identical texts embed identically, so their scores tie exactly.
	ix, _ := buildTestIndex(t, []string{"ceramic mug", "tumbler", "ceramic mug", "ceramic mug"})
	results, err := ix.Search(context.Background(), "ceramic mug", 4)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	wantOrder := []string{"item-0", "item-2", "item-3", "item-1"}
	for i, want := range wantOrder {
		if results[i].Item.ID != want {
			t.Errorf("result %d = %s, want %s (ties must keep insertion order)", i, results[i].Item.ID, want)
		}
	}
}

func TestBuildIsImmutable(t *testing.T) {
	ix, _ := buildTestIndex(t, []string{"tumbler"})
	if err := ix.Build(context.Background(), []Item{{ID: "x", Text: "mug"}}); err == nil {
		t.Error("second Build should fail")
	}
}
