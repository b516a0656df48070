package calculator

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+2", 4},
		{"2 + 3", 5},
		{"(10 * 5) / 2", 25},
		{"10 - 4 - 3", 3},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"-5 + 3", -2},
		{"--4", 4},
		{"1.5 * 2", 3},
		{"0.1 + 0.2", 0.3},
		{"((1))", 1},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Evaluate(tt.expr)
			if err != nil {
				t.Fatalf("Evaluate(%q) returned error: %v", tt.expr, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEvaluateDivisionByZero(t *testing.T) {
	_, err := Evaluate("1/0")
	if err == nil {
		t.Fatal("Evaluate(\"1/0\") should error")
	}
	var evalErr *EvalError
	if !errors.As(err, &evalErr) {
		t.Fatalf("error should be *EvalError, got %T", err)
	}
	if !strings.Contains(evalErr.Reason, "zero") {
		t.Errorf("error message should reference zero, got %q", evalErr.Reason)
	}
}

func TestEvaluateMalformed(t *testing.T) {
	exprs := []string{"2+", "(1+2", "1..2", "*3", "1 2", "()"}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr)
			var evalErr *EvalError
			if !errors.As(err, &evalErr) {
				t.Errorf("Evaluate(%q) should return *EvalError, got %v", expr, err)
			}
		})
	}
}

func TestEvaluateRejectsHostileInput(t *testing.T) {
	// Anything outside the whitelist must be rejected before evaluation,
	// never interpreted.
	exprs := []string{
		"__import__('os').system('x')",
		"2+2; rm -rf /",
		"os.exit(1)",
		"1e10",
		"2**8",
		"0x10",
		"",
		"   ",
	}
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			_, err := Evaluate(expr)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("Evaluate(%q) should return *ValidationError, got %v", expr, err)
			}
		})
	}
}

func TestEvaluateOversized(t *testing.T) {
	_, err := Evaluate(strings.Repeat("1+", 60) + "1")
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("oversized expression should return *ValidationError, got %v", err)
	}
}
