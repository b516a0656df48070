package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mrchongyl/zus-chatbot/pkg/llm"
	"github.com/mrchongyl/zus-chatbot/pkg/store"
)

// State is the terminal state of one loop run.
type State string

const (
	StateFinished       State = "FINISHED"
	StateBudgetExceeded State = "BUDGET_EXCEEDED"
)

// refusalAnswer is returned when the budget runs out before a final answer.
const refusalAnswer = "I could not finish working on that within my limits. " +
	"Please simplify your request or split it into smaller parts."

// BudgetExceededError records why a run was cut off. It never escapes Run;
// it is attached to the Outcome for logging.
type BudgetExceededError struct {
	Iterations int
	Elapsed    time.Duration
}

func (e *BudgetExceededError) Error() string {
	return fmt.Sprintf("reasoning budget exceeded after %d iterations (%s)", e.Iterations, e.Elapsed.Round(time.Millisecond))
}

// Step is one completed think/act/observe cycle, kept for logging and
// metrics. Steps are discarded after the run; only transcript turns persist.
type Step struct {
	Thought     string
	Tool        string
	Input       string
	Observation string
}

// Config bounds a run. Budgets are policy, not contract: they arrive from
// configuration.
type Config struct {
	SystemPrompt  string
	MaxIterations int
	MaxDuration   time.Duration
}

// Loop drives THINK -> ACT -> OBSERVE until a final answer or budget
// exhaustion. A Loop is immutable after construction and shared across
// concurrent requests.
type Loop struct {
	provider llm.LLMProvider
	registry *Registry
	cfg      Config
}

// Outcome is the loop's output contract: Answer is always non-empty, under
// every error condition.
type Outcome struct {
	Answer     string
	State      State
	Iterations int
	Steps      []Step
	Err        error // *BudgetExceededError when State is BUDGET_EXCEEDED
}

func NewLoop(provider llm.LLMProvider, registry *Registry, cfg Config) *Loop {
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = 6
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = 60 * time.Second
	}
	return &Loop{provider: provider, registry: registry, cfg: cfg}
}

// Run executes one bounded reasoning loop over the given transcript and user
// input. It never returns an error: every failure mode ends in a textual
// answer or refusal.
func (l *Loop) Run(ctx context.Context, history []store.Turn, input string) Outcome {
	started := time.Now()
	ctx, cancel := context.WithTimeout(ctx, l.cfg.MaxDuration)
	defer cancel()

	messages := l.baseMessages(history)
	var scratchpad strings.Builder
	scratchpad.WriteString(input)

	outcome := Outcome{}
	for iteration := 0; iteration < l.cfg.MaxIterations; iteration++ {
		if ctx.Err() != nil {
			break
		}
		outcome.Iterations = iteration + 1

		prompt := append(messages, llm.Message{Role: "user", Content: scratchpad.String()})
		raw, err := l.provider.Chat(ctx, prompt,
			llm.WithTemperature(0.3),
			llm.WithStop("\nObservation:"),
		)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			// Model backend failure is recoverable only by retrying within
			// the same iteration budget.
			l.observe(&scratchpad, &outcome, Step{
				Observation: fmt.Sprintf("The reasoning backend failed (%v). Try again.", err),
			}, raw)
			continue
		}

		decision, parseErr := ParseDecision(raw)
		if parseErr != nil {
			// Corrective observation, bounded by the same iteration budget.
			l.observe(&scratchpad, &outcome, Step{
				Observation: fmt.Sprintf("Error: %v. Respond with either 'Thought:/Action:/Action Input:' or 'Thought:/Final Answer:'.", parseErr),
			}, raw)
			continue
		}

		if decision.Kind == DecisionFinal {
			outcome.Answer = decision.Answer
			outcome.State = StateFinished
			if outcome.Answer == "" {
				outcome.Answer = "I don't have an answer for that. Could you rephrase your question?"
			}
			return outcome
		}

		observation := l.act(ctx, decision)

		// A result that lands after the deadline is discarded, per the
		// cancellation model: the in-flight call is not killed, its output
		// just never reaches the transcript.
		if ctx.Err() != nil {
			break
		}

		l.observe(&scratchpad, &outcome, Step{
			Thought:     decision.Thought,
			Tool:        decision.Tool,
			Input:       decision.Input,
			Observation: observation,
		}, raw)
	}

	outcome.State = StateBudgetExceeded
	outcome.Err = &BudgetExceededError{Iterations: outcome.Iterations, Elapsed: time.Since(started)}
	outcome.Answer = refusalAnswer
	return outcome
}

// act invokes the selected tool and renders its result (or typed error) as
// an observation string.
func (l *Loop) act(ctx context.Context, decision *Decision) string {
	tool, ok := l.registry.Lookup(decision.Tool)
	if !ok {
		known := strings.Join(l.registry.Names(), ", ")
		return fmt.Sprintf("Error: unknown tool %q. Available tools: %s.", decision.Tool, known)
	}

	result, err := tool.Invoke(ctx, decision.Input)
	if err != nil {
		toolErr := &ToolError{Tool: decision.Tool, Err: err}
		return "Error: " + toolErr.Error()
	}
	return result
}

// observe appends the step to the scratchpad so the next THINK sees it.
func (l *Loop) observe(scratchpad *strings.Builder, outcome *Outcome, step Step, raw string) {
	outcome.Steps = append(outcome.Steps, step)

	if step.Tool != "" {
		fmt.Fprintf(scratchpad, "\n\nThought: %s\nAction: %s\nAction Input: %s", step.Thought, step.Tool, step.Input)
	} else if strings.TrimSpace(raw) != "" {
		fmt.Fprintf(scratchpad, "\n\n%s", strings.TrimSpace(raw))
	}
	fmt.Fprintf(scratchpad, "\nObservation: %s", step.Observation)
}

// baseMessages assembles the system prompt, tool list and prior transcript.
func (l *Loop) baseMessages(history []store.Turn) []llm.Message {
	system := l.cfg.SystemPrompt
	system = strings.ReplaceAll(system, "{tools}", l.registry.Describe())
	system = strings.ReplaceAll(system, "{tool_names}", strings.Join(l.registry.Names(), ", "))

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: system})
	for _, turn := range history {
		role := "user"
		if turn.Role == store.RoleModel {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	return messages
}
