package text2sql

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidateSQLAccepts(t *testing.T) {
	statements := []string{
		"SELECT id, name, address, area, state, opening_time, closing_time, direction_url FROM outlets WHERE area ILIKE '%Kuala Lumpur%' LIMIT 5;",
		"SELECT COUNT(*) FROM outlets WHERE area ILIKE '%Cheras%';",
		"SELECT MIN(opening_time) FROM outlets WHERE area ILIKE '%Kuala Lumpur%';",
		"SELECT MAX(closing_time) FROM outlets;",
		"select name from outlets limit 5",
		"SELECT DISTINCT area FROM outlets;",
		"SELECT name AS outlet_name FROM outlets LIMIT 5;",
	}
	for _, sql := range statements {
		t.Run(sql, func(t *testing.T) {
			if err := ValidateSQL(sql); err != nil {
				t.Errorf("ValidateSQL(%q) = %v, want nil", sql, err)
			}
		})
	}
}

// Generated SQL is frequently formatted across lines; the validator must not
// depend on single-line layout.
func TestValidateSQLAcceptsMultiLine(t *testing.T) {
	statements := []string{
		"SELECT name\nFROM outlets\nWHERE area ILIKE '%Cheras%'\nLIMIT 5;",
		"SELECT name,\n  address\nFROM outlets\nLIMIT 5;",
		"SELECT\n\tCOUNT(*)\nFROM outlets;",
		"SELECT name\r\nFROM outlets;",
	}
	for _, sql := range statements {
		t.Run(sql, func(t *testing.T) {
			if err := ValidateSQL(sql); err != nil {
				t.Errorf("ValidateSQL(%q) = %v, want nil", sql, err)
			}
		})
	}
}

func TestValidateSQLRejects(t *testing.T) {
	statements := []string{
		"",
		"   ",
		"DROP TABLE outlets;",
		"DELETE FROM outlets;",
		"UPDATE outlets SET name = 'x';",
		"INSERT INTO outlets VALUES (1);",
		"TRUNCATE outlets;",
		"ALTER TABLE outlets ADD COLUMN x int;",
		"SELECT name FROM outlets; DROP TABLE outlets;",
		"SELECT name FROM outlets -- comment",
		"SELECT name FROM outlets /* comment */;",
		"SELECT * FROM outlets;",
		"SELECT *\nFROM outlets;",
		"SELECT password\nFROM users;",
		"SELECT password FROM users;",
		"SELECT;",
		"EXPLAIN SELECT name FROM outlets;",
	}
	for _, sql := range statements {
		t.Run(sql, func(t *testing.T) {
			err := ValidateSQL(sql)
			var unsafe *UnsafeQueryError
			if !errors.As(err, &unsafe) {
				t.Errorf("ValidateSQL(%q) = %v, want *UnsafeQueryError", sql, err)
			}
		})
	}
}

// TestValidateSQLKeywordOracle fuzzes the validator against the keyword and
// statement-count oracle: any statement containing a write keyword or more
// than one statement must be rejected.
func TestValidateSQLKeywordOracle(t *testing.T) {
	bases := []string{
		"SELECT name FROM outlets WHERE area ILIKE '%x%'",
		"SELECT COUNT(*) FROM outlets",
	}
	for _, kw := range writeKeywords {
		for _, base := range bases {
			chained := fmt.Sprintf("%s; %s something;", base, kw)
			if err := ValidateSQL(chained); err == nil {
				t.Errorf("chained statement with %q keyword accepted: %q", kw, chained)
			}
			embedded := fmt.Sprintf("%s OR %s = 1", base, kw)
			if err := ValidateSQL(embedded); err == nil {
				t.Errorf("statement embedding %q accepted: %q", kw, embedded)
			}
		}
	}
}
