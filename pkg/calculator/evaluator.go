package calculator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Evaluation is hard-capped regardless of caller configuration.
const (
	maxExpressionLen   = 100
	maxExpressionWords = 20
)

// exprWhitelist is the security boundary: anything outside digits, whitespace,
// parentheses, the four operators and the decimal point is rejected before the
// evaluator ever sees the input.
var exprWhitelist = regexp.MustCompile(`^[0-9+\-*/().\s]+$`)

// EvalError reports a failure while evaluating a syntactically admissible
// expression (malformed syntax, division by zero).
type EvalError struct {
	Reason string
}

func (e *EvalError) Error() string {
	return e.Reason
}

// ValidationError reports input rejected before evaluation.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Validate checks the expression against the character whitelist and size
// bounds. A nil return means the expression is safe to hand to Evaluate.
func Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return &ValidationError{Reason: "No expression provided. Please enter a calculation."}
	}
	if len(expr) > maxExpressionLen || len(strings.Fields(expr)) > maxExpressionWords {
		return &ValidationError{Reason: "Expression too long. Please shorten your calculation."}
	}
	if !exprWhitelist.MatchString(expr) {
		return &ValidationError{Reason: "Invalid characters in expression"}
	}
	return nil
}

// Evaluate validates and evaluates a restricted arithmetic expression.
func Evaluate(expr string) (float64, error) {
	if err := Validate(expr); err != nil {
		return 0, err
	}
	p := &parser{input: expr}
	result, err := p.parseExpr()
	if err != nil {
		return 0, err
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, &EvalError{Reason: fmt.Sprintf("unexpected character %q at position %d", p.input[p.pos], p.pos)}
	}
	return result, nil
}

// parser is a recursive-descent evaluator over the grammar
//
//	expr   = term   { ("+" | "-") term }
//	term   = factor { ("*" | "/") factor }
//	factor = number | "(" expr ")" | ("+" | "-") factor
type parser struct {
	input string
	pos   int
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t' || p.input[p.pos] == '\n') {
		p.pos++
	}
}

func (p *parser) peek() (byte, bool) {
	p.skipSpaces()
	if p.pos >= len(p.input) {
		return 0, false
	}
	return p.input[p.pos], true
}

func (p *parser) parseExpr() (float64, error) {
	left, err := p.parseTerm()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '+' && op != '-') {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
}

func (p *parser) parseTerm() (float64, error) {
	left, err := p.parseFactor()
	if err != nil {
		return 0, err
	}
	for {
		op, ok := p.peek()
		if !ok || (op != '*' && op != '/') {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
		} else {
			if right == 0 {
				return 0, &EvalError{Reason: "division by zero"}
			}
			left /= right
		}
	}
}

func (p *parser) parseFactor() (float64, error) {
	c, ok := p.peek()
	if !ok {
		return 0, &EvalError{Reason: "unexpected end of expression"}
	}
	switch {
	case c == '(':
		p.pos++
		inner, err := p.parseExpr()
		if err != nil {
			return 0, err
		}
		if c, ok := p.peek(); !ok || c != ')' {
			return 0, &EvalError{Reason: "missing closing parenthesis"}
		}
		p.pos++
		return inner, nil
	case c == '+':
		p.pos++
		return p.parseFactor()
	case c == '-':
		p.pos++
		v, err := p.parseFactor()
		return -v, err
	default:
		return p.parseNumber()
	}
}

func (p *parser) parseNumber() (float64, error) {
	p.skipSpaces()
	start := p.pos
	seenDot := false
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' {
			p.pos++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			p.pos++
			continue
		}
		break
	}
	if start == p.pos {
		return 0, &EvalError{Reason: fmt.Sprintf("expected a number at position %d", start)}
	}
	v, err := strconv.ParseFloat(p.input[start:p.pos], 64)
	if err != nil {
		return 0, &EvalError{Reason: fmt.Sprintf("invalid number %q", p.input[start:p.pos])}
	}
	return v, nil
}
