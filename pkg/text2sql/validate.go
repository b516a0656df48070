package text2sql

import (
	"regexp"
	"strings"
)

// AllowedColumns is the enumerated outlet schema the generator is bound to.
var AllowedColumns = []string{
	"id", "name", "address", "area", "state", "opening_time", "closing_time", "direction_url",
}

// writeKeywords is the canonical write/DDL blacklist. This check runs even
// though the generator is instructed never to produce such output.
var writeKeywords = []string{
	"insert", "update", "delete", "drop", "alter", "create", "truncate",
	"grant", "revoke", "attach", "pragma", "exec",
}

var (
	wordPattern      = regexp.MustCompile(`[a-z_]+`)
	aggregatePattern = regexp.MustCompile(`^(count|min|max)\s*\(\s*([a-z_*]+)\s*\)$`)
)

// ValidateSQL enforces the canonical safety policy on generated SQL:
// exactly one SELECT statement, no write/DDL keyword, no comment token, and a
// select list drawn from the column allowlist (or COUNT/MIN/MAX aggregates).
func ValidateSQL(sql string) error {
	trimmed := strings.TrimSpace(sql)
	if trimmed == "" {
		return &UnsafeQueryError{Reason: "empty statement"}
	}

	lowered := strings.ToLower(trimmed)
	if !strings.HasPrefix(lowered, "select") {
		return &UnsafeQueryError{Reason: "only SELECT statements are allowed"}
	}

	// One statement only: a terminating semicolon is fine, interior ones are not.
	body := strings.TrimSuffix(lowered, ";")
	if strings.Contains(body, ";") {
		return &UnsafeQueryError{Reason: "multiple statements"}
	}
	if strings.TrimSpace(body) == "select" {
		return &UnsafeQueryError{Reason: "empty select list"}
	}

	if strings.Contains(body, "--") || strings.Contains(body, "/*") {
		return &UnsafeQueryError{Reason: "comment token"}
	}

	for _, word := range wordPattern.FindAllString(body, -1) {
		for _, kw := range writeKeywords {
			if word == kw {
				return &UnsafeQueryError{Reason: "write keyword: " + kw}
			}
		}
	}

	return validateSelectList(body)
}

// validateSelectList checks every projected expression against the column
// allowlist. Aggregate queries (COUNT/MIN/MAX) are permitted; SELECT * is not.
func validateSelectList(lowered string) error {
	// Generated statements often arrive wrapped across lines; collapse
	// whitespace runs so clause detection does not depend on layout.
	flat := strings.Join(strings.Fields(lowered), " ")
	rest := strings.TrimSpace(strings.TrimPrefix(flat, "select"))
	fromIdx := strings.Index(rest, " from ")
	selectList := rest
	if fromIdx >= 0 {
		selectList = rest[:fromIdx]
	}
	selectList = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(selectList), "distinct"))

	for _, raw := range strings.Split(selectList, ",") {
		expr := strings.TrimSpace(raw)
		// Strip "AS alias".
		if idx := strings.Index(expr, " as "); idx >= 0 {
			expr = strings.TrimSpace(expr[:idx])
		}
		if expr == "*" {
			return &UnsafeQueryError{Reason: "SELECT * is not allowed"}
		}
		if m := aggregatePattern.FindStringSubmatch(expr); m != nil {
			arg := m[2]
			if arg == "*" || isAllowedColumn(arg) {
				continue
			}
			return &UnsafeQueryError{Reason: "column not in allowlist: " + arg}
		}
		if !isAllowedColumn(expr) {
			return &UnsafeQueryError{Reason: "column not in allowlist: " + expr}
		}
	}
	return nil
}

func isAllowedColumn(name string) bool {
	name = strings.TrimPrefix(name, "outlets.")
	for _, col := range AllowedColumns {
		if name == col {
			return true
		}
	}
	return false
}
