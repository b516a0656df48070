package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
)

type fakeSearcher struct {
	hits  []ProductHit
	err   error
	calls int
}

func (f *fakeSearcher) Search(ctx context.Context, query string, k int) ([]ProductHit, error) {
	f.calls++
	return f.hits, f.err
}

func TestProductQueryValidationSkipsSearch(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewProductService(searcher, &replayLLM{}, nopLogger{}, 100, 20)

	inputs := []string{"", "   ", "?!", strings.Repeat("x", 101)}
	for _, input := range inputs {
		_, err := svc.Query(context.Background(), input, 5, true)
		var valErr *validation.Error
		if !errors.As(err, &valErr) {
			t.Errorf("Query(%q) error = %v, want *validation.Error", input, err)
		}
	}
	if searcher.calls != 0 {
		t.Errorf("invalid queries must not hit the searcher, saw %d calls", searcher.calls)
	}
}

func TestProductQueryMapsHits(t *testing.T) {
	searcher := &fakeSearcher{hits: []ProductHit{
		{Name: "OG Tumbler", Category: "tumbler", Price: "RM 55", Colours: []string{"Black", "Blue"}, Similarity: 0.91},
		{Name: "Classic Mug", Category: "mug", Price: "RM 39", Similarity: 0.72},
	}}
	provider := &replayLLM{responses: []string{"The OG Tumbler fits your search."}}
	svc := NewProductService(searcher, provider, nopLogger{}, 100, 20)

	res, err := svc.Query(context.Background(), "black tumbler", 5, true)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalResults != 2 || len(res.Products) != 2 {
		t.Fatalf("TotalResults = %d, Products = %d", res.TotalResults, len(res.Products))
	}
	if res.Products[0].Name != "OG Tumbler" || res.Products[0].SimilarityScore != 0.91 {
		t.Errorf("first hit = %+v", res.Products[0])
	}
	if res.Summary != "The OG Tumbler fits your search." {
		t.Errorf("Summary = %q", res.Summary)
	}
}

func TestProductQuerySummaryFallback(t *testing.T) {
	searcher := &fakeSearcher{hits: []ProductHit{
		{Name: "OG Tumbler", Similarity: 0.9},
	}}
	// No scripted responses: the summary call fails.
	svc := NewProductService(searcher, &replayLLM{}, nopLogger{}, 100, 20)

	res, err := svc.Query(context.Background(), "tumbler", 5, true)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if !strings.Contains(res.Summary, "OG Tumbler") {
		t.Errorf("fallback summary should list top matches, got %q", res.Summary)
	}
}

func TestProductQuerySkipsSummaryWhenDisabled(t *testing.T) {
	searcher := &fakeSearcher{hits: []ProductHit{
		{Name: "OG Tumbler", Similarity: 0.9},
	}}
	provider := &replayLLM{responses: []string{"should never be used"}}
	svc := NewProductService(searcher, provider, nopLogger{}, 100, 20)

	res, err := svc.Query(context.Background(), "tumbler", 5, false)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.Summary != "" {
		t.Errorf("Summary = %q, want empty", res.Summary)
	}
	if provider.calls != 0 {
		t.Errorf("disabled summary must not call the model, saw %d calls", provider.calls)
	}
}

func TestProductQueryNoHits(t *testing.T) {
	svc := NewProductService(&fakeSearcher{}, &replayLLM{}, nopLogger{}, 100, 20)

	res, err := svc.Query(context.Background(), "submarine", 5, true)
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if res.TotalResults != 0 {
		t.Errorf("TotalResults = %d, want 0", res.TotalResults)
	}
	if !strings.Contains(res.Summary, "No products found") {
		t.Errorf("Summary = %q", res.Summary)
	}
}
