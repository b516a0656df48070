package embedding

import "context"

// Task types passed to providers that distinguish document vs query vectors
// (Gemini does; Ollama ignores them).
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

// Provider generates a unit-normalized embedding vector for a piece of text.
// All implementations must return vectors of a fixed dimension; mixing
// providers against one index is a caller error.
type Provider interface {
	Embed(ctx context.Context, text string, taskType string) ([]float32, error)
}
