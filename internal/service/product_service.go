package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrchongyl/zus-chatbot/internal/constant"
	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
	"github.com/mrchongyl/zus-chatbot/pkg/llm"
)

type IProductService interface {
	Query(ctx context.Context, query string, topK int, includeSummary bool) (*dto.ProductQueryResponse, error)
}

type productService struct {
	searcher    IProductSearcher
	llmProvider llm.LLMProvider
	log         logger.ILogger
	maxChars    int
	maxWords    int
}

func NewProductService(
	searcher IProductSearcher,
	llmProvider llm.LLMProvider,
	log logger.ILogger,
	maxChars, maxWords int,
) IProductService {
	return &productService{
		searcher:    searcher,
		llmProvider: llmProvider,
		log:         log,
		maxChars:    maxChars,
		maxWords:    maxWords,
	}
}

func (s *productService) Query(ctx context.Context, query string, topK int, includeSummary bool) (*dto.ProductQueryResponse, error) {
	if err := validation.CheckQuery(query, s.maxChars, s.maxWords); err != nil {
		return nil, err
	}
	if topK <= 0 {
		topK = 5
	}

	hits, err := s.searcher.Search(ctx, query, topK)
	if err != nil {
		return nil, err
	}

	response := &dto.ProductQueryResponse{
		Query:        query,
		Products:     make([]dto.ProductHitDTO, 0, len(hits)),
		TotalResults: len(hits),
	}
	for _, hit := range hits {
		response.Products = append(response.Products, dto.ProductHitDTO{
			Name:            hit.Name,
			Category:        hit.Category,
			Price:           hit.Price,
			Promotion:       hit.Promotion,
			Colours:         hit.Colours,
			SimilarityScore: hit.Similarity,
		})
	}

	if includeSummary {
		response.Summary = s.summarize(ctx, query, hits)
	}
	return response, nil
}

// summarize turns the hits into one conversational paragraph. A summary
// failure degrades to a plain listing, never to an error.
func (s *productService) summarize(ctx context.Context, query string, hits []ProductHit) string {
	if len(hits) == 0 {
		return "No products found matching your query. Please try different search terms."
	}

	var context strings.Builder
	for i, hit := range hits {
		colours := "No colour details"
		if len(hit.Colours) > 0 {
			colours = strings.Join(hit.Colours, ", ")
		}
		promotion := hit.Promotion
		if promotion == "" {
			promotion = "N/A"
		}
		fmt.Fprintf(&context, "%d. %s\n- Price: %s\n- Promotion: %s\n- Category: %s\n- Colours: %s\n- Similarity Score: %.3f\n\n",
			i+1, hit.Name, hit.Price, promotion, hit.Category, colours, hit.Similarity)
	}

	prompt := fmt.Sprintf(constant.ProductSummaryPromptV1, query, strings.TrimSpace(context.String()))
	summary, err := s.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil || strings.TrimSpace(summary) == "" {
		if err != nil {
			s.log.Warn("product", "summary generation failed, using fallback", map[string]interface{}{"error": err.Error()})
		}
		names := make([]string, 0, 3)
		for i, hit := range hits {
			if i == 3 {
				break
			}
			names = append(names, hit.Name)
		}
		return fmt.Sprintf("Found %d drinkware products matching '%s'. Top matches include: %s.", len(hits), query, strings.Join(names, ", "))
	}
	return strings.TrimSpace(summary)
}
