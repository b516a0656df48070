package text2sql

// GenerationError means the LLM produced no extractable SELECT statement.
// Callers fall back to a structured empty-result response.
type GenerationError struct {
	Reason string
}

func (e *GenerationError) Error() string {
	return e.Reason
}

// UnsafeQueryError means the generated SQL failed the safety policy. The
// query is never executed.
type UnsafeQueryError struct {
	Reason string
}

func (e *UnsafeQueryError) Error() string {
	return "unsafe query rejected: " + e.Reason
}
