// Package validation holds the single input-guard policy shared by every
// capability surface. The original system carried three slightly different
// copies of these rules; they are consolidated here so the calculator,
// products and outlets paths cannot drift apart again.
package validation

import (
	"regexp"
	"strings"
)

// Error is a recoverable input rejection. Callers surface Reason to the user
// and continue with an empty/error result rather than aborting the request.
type Error struct {
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

var alphanumeric = regexp.MustCompile(`[a-zA-Z0-9]`)

// rawSQLKeywords guards the conversational boundary: a user typing SQL
// directly gets refused before any backend call is issued.
var rawSQLKeywords = []string{
	"select", "insert", "update", "delete", "drop", "alter", "create", "truncate",
}

// unsafeFragments are rejected anywhere in free-text query input.
var unsafeFragments = []string{
	";", "--", "drop ", "delete ", "insert ", "update ", "alter ", "truncate ",
}

// CheckQuery applies the canonical free-text input policy: non-empty, within
// the length and word bounds, contains at least one alphanumeric character,
// and carries no SQL write/DDL fragment.
func CheckQuery(query string, maxChars, maxWords int) *Error {
	if strings.TrimSpace(query) == "" {
		return &Error{Reason: "Please enter a query."}
	}
	if !alphanumeric.MatchString(query) {
		return &Error{Reason: "Please enter a valid query."}
	}
	if len(query) > maxChars || len(strings.Fields(query)) > maxWords {
		return &Error{Reason: "Query too long. Please shorten your query."}
	}
	lowered := strings.ToLower(query)
	for _, fragment := range unsafeFragments {
		if strings.Contains(lowered, fragment) {
			return &Error{Reason: "Invalid or potentially unsafe query. Please rephrase your request."}
		}
	}
	return nil
}

// IsRawSQL reports whether the utterance starts with a SQL keyword. Used at
// the chat boundary to refuse direct SQL input with a friendly message.
func IsRawSQL(input string) bool {
	lowered := strings.ToLower(strings.TrimSpace(input))
	for _, kw := range rawSQLKeywords {
		if strings.HasPrefix(lowered, kw+" ") || lowered == kw {
			return true
		}
	}
	return false
}
