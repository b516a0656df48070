package agent

import (
	"errors"
	"testing"
)

func TestParseDecisionToolCall(t *testing.T) {
	raw := "Thought: I need to compute this.\nAction: Calculator\nAction Input: 2+2"
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if decision.Kind != DecisionToolCall {
		t.Fatalf("Kind = %v, want DecisionToolCall", decision.Kind)
	}
	if decision.Tool != "Calculator" {
		t.Errorf("Tool = %q, want Calculator", decision.Tool)
	}
	if decision.Input != "2+2" {
		t.Errorf("Input = %q, want 2+2", decision.Input)
	}
	if decision.Thought != "I need to compute this." {
		t.Errorf("Thought = %q", decision.Thought)
	}
}

func TestParseDecisionFinalAnswer(t *testing.T) {
	raw := "Thought: I know this already.\nFinal Answer: The answer is 4."
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if decision.Kind != DecisionFinal {
		t.Fatalf("Kind = %v, want DecisionFinal", decision.Kind)
	}
	if decision.Answer != "The answer is 4." {
		t.Errorf("Answer = %q", decision.Answer)
	}
}

func TestParseDecisionMultiLineAnswer(t *testing.T) {
	raw := "Final Answer: There are two outlets:\n- SS2\n- Uptown"
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	want := "There are two outlets:\n- SS2\n- Uptown"
	if decision.Answer != want {
		t.Errorf("Answer = %q, want %q", decision.Answer, want)
	}
}

func TestParseDecisionQuotedInput(t *testing.T) {
	raw := "Action: ZUS_Outlets\nAction Input: \"outlets in Cheras\""
	decision, err := ParseDecision(raw)
	if err != nil {
		t.Fatalf("ParseDecision: %v", err)
	}
	if decision.Input != "outlets in Cheras" {
		t.Errorf("Input = %q, quotes should be stripped", decision.Input)
	}
}

func TestParseDecisionErrors(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace", "   \n  "},
		{"free prose", "Sure, I can help with that!"},
		{"thought only", "Thought: hmm, let me think."},
		{"action without input", "Thought: compute.\nAction: Calculator"},
		{"empty action name", "Action:\nAction Input: 2+2"},
		{"action and final answer", "Action: Calculator\nAction Input: 2+2\nFinal Answer: 4"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDecision(tc.raw)
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Errorf("ParseDecision(%q) = %v, want *ParseError", tc.raw, err)
			}
		})
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	a := stubTool{name: "Calculator", reply: "4"}
	b := stubTool{name: "Calculator", reply: "5"}
	if _, err := NewRegistry(a, b); err == nil {
		t.Error("duplicate tool names should fail registration")
	}
}

func TestNewRegistryRejectsEmptyName(t *testing.T) {
	if _, err := NewRegistry(stubTool{name: "  "}); err == nil {
		t.Error("blank tool name should fail registration")
	}
}

func TestRegistryDescribePreservesOrder(t *testing.T) {
	r, err := NewRegistry(
		stubTool{name: "Calculator", desc: "evaluates arithmetic"},
		stubTool{name: "ZUS_Outlets", desc: "looks up outlets"},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "Calculator" || names[1] != "ZUS_Outlets" {
		t.Errorf("Names() = %v", names)
	}
	want := "- Calculator: evaluates arithmetic\n- ZUS_Outlets: looks up outlets\n"
	if got := r.Describe(); got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}
