// Package agent implements the bounded think/act/observe reasoning loop and
// its strict step grammar. The model's output is parsed into typed decisions;
// anything that does not fit the grammar becomes a recoverable parse error
// fed back into the next think step, never a best-effort guess.
package agent

import (
	"strings"
)

// DecisionKind discriminates a parsed model step.
type DecisionKind int

const (
	// DecisionToolCall selects exactly one tool with an input.
	DecisionToolCall DecisionKind = iota
	// DecisionFinal terminates the loop with an answer.
	DecisionFinal
)

// Decision is one parsed (thought, action) step.
type Decision struct {
	Kind    DecisionKind
	Thought string
	Tool    string // DecisionToolCall only
	Input   string // DecisionToolCall only
	Answer  string // DecisionFinal only
}

// ParseError is a recoverable grammar violation. It is surfaced to the model
// as a corrective observation and consumes one loop iteration.
type ParseError struct {
	Reason string
	Raw    string
}

func (e *ParseError) Error() string {
	return "could not parse model step: " + e.Reason
}

// Grammar labels. Labels are matched at line starts, case-sensitive, in the
// exact form the prompt instructs.
const (
	labelThought     = "Thought:"
	labelAction      = "Action:"
	labelActionInput = "Action Input:"
	labelFinalAnswer = "Final Answer:"
)

// ParseDecision parses raw model output into a typed decision.
//
// Accepted shapes:
//
//	Thought: ...
//	Action: <tool name>
//	Action Input: <input>
//
//	Thought: ...
//	Final Answer: <answer, may span lines>
//
// The thought is optional; mixing Action and Final Answer, missing the input
// line, or an empty action name are parse errors.
func ParseDecision(raw string) (*Decision, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &ParseError{Reason: "empty response", Raw: raw}
	}

	var (
		thought    strings.Builder
		action     string
		actionSeen bool
		input      strings.Builder
		inputSeen  bool
		answer     strings.Builder
		answerSeen bool
	)

	// section tracks which label's continuation lines we are collecting.
	section := ""
	for _, line := range strings.Split(trimmed, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, labelThought):
			section = labelThought
			thought.WriteString(strings.TrimSpace(strings.TrimPrefix(stripped, labelThought)))
		case strings.HasPrefix(stripped, labelActionInput):
			// Checked before Action: both share the prefix.
			section = labelActionInput
			inputSeen = true
			input.WriteString(strings.TrimSpace(strings.TrimPrefix(stripped, labelActionInput)))
		case strings.HasPrefix(stripped, labelAction):
			section = labelAction
			actionSeen = true
			action = strings.TrimSpace(strings.TrimPrefix(stripped, labelAction))
		case strings.HasPrefix(stripped, labelFinalAnswer):
			section = labelFinalAnswer
			answerSeen = true
			answer.WriteString(strings.TrimSpace(strings.TrimPrefix(stripped, labelFinalAnswer)))
		default:
			// Continuation line of the current section.
			switch section {
			case labelThought:
				if stripped != "" {
					thought.WriteString(" ")
					thought.WriteString(stripped)
				}
			case labelActionInput:
				if stripped != "" {
					input.WriteString(" ")
					input.WriteString(stripped)
				}
			case labelFinalAnswer:
				answer.WriteString("\n")
				answer.WriteString(line)
			}
		}
	}

	if answerSeen && actionSeen {
		return nil, &ParseError{Reason: "both an Action and a Final Answer were given", Raw: raw}
	}

	if answerSeen {
		return &Decision{
			Kind:    DecisionFinal,
			Thought: thought.String(),
			Answer:  strings.TrimSpace(answer.String()),
		}, nil
	}

	if actionSeen {
		if action == "" {
			return nil, &ParseError{Reason: "Action line names no tool", Raw: raw}
		}
		if !inputSeen {
			return nil, &ParseError{Reason: "Action given without an Action Input line", Raw: raw}
		}
		return &Decision{
			Kind:    DecisionToolCall,
			Thought: thought.String(),
			Tool:    action,
			Input:   trimToolInput(input.String()),
		}, nil
	}

	return nil, &ParseError{Reason: "neither an Action nor a Final Answer was given", Raw: raw}
}

// trimToolInput removes the quotes models like to wrap tool input in.
func trimToolInput(input string) string {
	input = strings.TrimSpace(input)
	if len(input) >= 2 {
		if (input[0] == '"' && input[len(input)-1] == '"') ||
			(input[0] == '\'' && input[len(input)-1] == '\'') {
			input = input[1 : len(input)-1]
		}
	}
	return strings.TrimSpace(input)
}
