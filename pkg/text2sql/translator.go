// Package text2sql translates natural-language outlet questions into a single
// validated read-only SELECT over the fixed outlets schema.
package text2sql

import (
	"context"
	"fmt"
	"strings"

	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
	"github.com/mrchongyl/zus-chatbot/pkg/llm"
)

const sqlPrompt = `Convert user queries into PostgreSQL SQL for ZUS Coffee outlets.

Schema:
outlets(id, name, address, area, state, opening_time, closing_time, direction_url)

Rules:
- Select only: id, name, address, area, state, opening_time, closing_time, direction_url (no SELECT *)
- Use LIMIT 5 for non-aggregate queries
- Use case-insensitive ILIKE with %%
- Times are already 24-hour HH:MM strings
- Use COUNT(*), MIN(opening_time), MAX(closing_time) for queries on outlet count, earliest opening, and latest closing
- Represent 24-hour outlets with opening_time = '00:00', closing_time = '23:59'
- Exclude 24-hour outlets (closing_time = '23:59') when searching for latest closing time, or (opening_time = '00:00') for earliest opening time, unless "24 hours" is mentioned
- Strip "ZUS" from outlet names in user queries
- Output exactly one statement terminated by a semicolon, no explanations

--standard columns-- means: id, name, address, area, state, opening_time, closing_time, direction_url

Examples:
- "outlets in Kuala Lumpur" -> SELECT --standard columns-- FROM outlets WHERE area ILIKE '%%Kuala Lumpur%%' OR state ILIKE '%%Kuala Lumpur%%' OR name ILIKE '%%Kuala Lumpur%%' LIMIT 5;
- "opening time for 1 utama" -> SELECT --standard columns-- FROM outlets WHERE name ILIKE '%%1 Utama%%' LIMIT 5;
- "how many outlets in Cheras" -> SELECT COUNT(*) FROM outlets WHERE area ILIKE '%%Cheras%%';
- "earliest opening time in Kuala Lumpur" -> SELECT MIN(opening_time) FROM outlets WHERE area ILIKE '%%Kuala Lumpur%%';
- "latest closing outlet in Petaling Jaya" -> SELECT --standard columns-- FROM outlets WHERE area ILIKE '%%Petaling Jaya%%' AND closing_time != '23:59' ORDER BY closing_time DESC LIMIT 5;

Query: %s
SQL:`

// Translator converts free text into one validated SELECT statement.
// The schema and lookup tables are fixed at startup; a Translator is
// read-only and safe for concurrent use.
type Translator struct {
	provider llm.LLMProvider
	maxChars int
	maxWords int
}

func NewTranslator(provider llm.LLMProvider, maxChars, maxWords int) *Translator {
	if maxChars <= 0 {
		maxChars = 100
	}
	if maxWords <= 0 {
		maxWords = 20
	}
	return &Translator{provider: provider, maxChars: maxChars, maxWords: maxWords}
}

// Translate validates the input, pre-normalizes it, generates SQL and runs
// the full safety validation before returning the statement.
//
// Error types: *validation.Error (bad input, generation skipped),
// *GenerationError (no extractable statement), *UnsafeQueryError (generated
// SQL failed the policy).
func (t *Translator) Translate(ctx context.Context, naturalQuery string) (string, error) {
	if err := validation.CheckQuery(naturalQuery, t.maxChars, t.maxWords); err != nil {
		return "", err
	}

	processed := Preprocess(naturalQuery)
	prompt := fmt.Sprintf(sqlPrompt, processed)

	raw, err := t.provider.Generate(ctx, prompt, llm.WithTemperature(0.1))
	if err != nil {
		return "", &GenerationError{Reason: fmt.Sprintf("SQL generation failed: %v", err)}
	}

	sql, err := extractStatement(raw)
	if err != nil {
		return "", err
	}
	if err := ValidateSQL(sql); err != nil {
		return "", err
	}
	return sql, nil
}

// extractStatement pulls the first recognizable SELECT out of the model
// output, discarding code fences and surrounding prose, and makes sure the
// statement is terminated.
func extractStatement(raw string) (string, error) {
	cleaned := strings.ReplaceAll(raw, "```sql", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	selectIdx := strings.Index(strings.ToLower(cleaned), "select")
	if selectIdx == -1 {
		return "", &GenerationError{Reason: "no SELECT statement found in generated output"}
	}
	cleaned = cleaned[selectIdx:]

	// Keep only the first statement; anything after the terminator is prose
	// or a second statement, neither of which we execute.
	if semiIdx := strings.Index(cleaned, ";"); semiIdx >= 0 {
		cleaned = cleaned[:semiIdx+1]
	} else {
		// The model sometimes follows the SQL with an explanation paragraph.
		if nlIdx := strings.Index(cleaned, "\n\n"); nlIdx >= 0 {
			cleaned = cleaned[:nlIdx]
		}
		cleaned = strings.TrimSpace(cleaned) + ";"
	}
	return strings.TrimSpace(cleaned), nil
}
