package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mrchongyl/zus-chatbot/pkg/llm"
	"github.com/mrchongyl/zus-chatbot/pkg/store"
)

type stubTool struct {
	name  string
	desc  string
	reply string
	err   error
	calls []string
	delay time.Duration
}

func (s stubTool) Name() string        { return s.name }
func (s stubTool) Description() string { return s.desc }

func (s stubTool) Invoke(ctx context.Context, input string) (string, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.reply, s.err
}

// recordingTool tracks inputs through a pointer receiver.
type recordingTool struct {
	stubTool
	inputs []string
}

func (r *recordingTool) Invoke(ctx context.Context, input string) (string, error) {
	r.inputs = append(r.inputs, input)
	return r.stubTool.Invoke(ctx, input)
}

// scriptedProvider replays responses in order and records each prompt.
type scriptedProvider struct {
	responses []string
	errs      []error
	prompts   []string
	call      int
}

func (s *scriptedProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	if len(history) > 0 {
		s.prompts = append(s.prompts, history[len(history)-1].Content)
	}
	i := s.call
	s.call++
	var err error
	if i < len(s.errs) {
		err = s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], err
	}
	return "", err
}

func (s *scriptedProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return s.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

func newTestLoop(t *testing.T, provider llm.LLMProvider, tools ...Tool) *Loop {
	t.Helper()
	registry, err := NewRegistry(tools...)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return NewLoop(provider, registry, Config{
		SystemPrompt:  "You are an assistant. Tools:\n{tools}\nUse one of: {tool_names}.",
		MaxIterations: 6,
		MaxDuration:   time.Minute,
	})
}

func TestRunToolCallThenFinish(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Thought: compute it.\nAction: Calculator\nAction Input: 2+2",
		"Thought: done.\nFinal Answer: 2+2 is 4.",
	}}
	calc := &recordingTool{stubTool: stubTool{name: "Calculator", desc: "arithmetic", reply: "4"}}
	loop := newTestLoop(t, provider, calc)

	outcome := loop.Run(context.Background(), nil, "what is 2+2?")
	if outcome.State != StateFinished {
		t.Fatalf("State = %v, want FINISHED (answer %q)", outcome.State, outcome.Answer)
	}
	if outcome.Answer != "2+2 is 4." {
		t.Errorf("Answer = %q", outcome.Answer)
	}
	if outcome.Iterations != 2 {
		t.Errorf("Iterations = %d, want 2", outcome.Iterations)
	}
	if len(calc.inputs) != 1 || calc.inputs[0] != "2+2" {
		t.Errorf("tool inputs = %v, want [2+2]", calc.inputs)
	}
	if len(outcome.Steps) != 1 || outcome.Steps[0].Observation != "4" {
		t.Errorf("Steps = %+v", outcome.Steps)
	}
	// The second prompt must carry the observation forward.
	if len(provider.prompts) != 2 || !strings.Contains(provider.prompts[1], "Observation: 4") {
		t.Errorf("second prompt missing observation: %q", provider.prompts[len(provider.prompts)-1])
	}
}

func TestRunDirectFinalAnswer(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Thought: no tool needed.\nFinal Answer: Hello!",
	}}
	loop := newTestLoop(t, provider, stubTool{name: "Calculator", desc: "arithmetic"})

	outcome := loop.Run(context.Background(), nil, "hi")
	if outcome.State != StateFinished || outcome.Answer != "Hello!" {
		t.Errorf("outcome = %+v", outcome)
	}
	if len(outcome.Steps) != 0 {
		t.Errorf("no tool steps expected, got %+v", outcome.Steps)
	}
}

func TestRunRecoversFromParseError(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Sure, let me look into that for you.",
		"Thought: following the format now.\nFinal Answer: done.",
	}}
	loop := newTestLoop(t, provider, stubTool{name: "Calculator", desc: "arithmetic"})

	outcome := loop.Run(context.Background(), nil, "hello")
	if outcome.State != StateFinished || outcome.Answer != "done." {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(provider.prompts) != 2 || !strings.Contains(provider.prompts[1], "could not parse") {
		t.Errorf("corrective observation missing from retry prompt")
	}
}

func TestRunUnknownToolBecomesObservation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Action: TimeMachine\nAction Input: 1999",
		"Final Answer: I can't do that.",
	}}
	loop := newTestLoop(t, provider, stubTool{name: "Calculator", desc: "arithmetic"})

	outcome := loop.Run(context.Background(), nil, "go back in time")
	if outcome.State != StateFinished {
		t.Fatalf("outcome = %+v", outcome)
	}
	if len(outcome.Steps) != 1 || !strings.Contains(outcome.Steps[0].Observation, "unknown tool") {
		t.Errorf("Steps = %+v", outcome.Steps)
	}
}

func TestRunToolFailureBecomesObservation(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Action: Calculator\nAction Input: 1/0",
		"Final Answer: Division by zero is undefined.",
	}}
	failing := stubTool{name: "Calculator", desc: "arithmetic", err: errors.New("division by zero")}
	loop := newTestLoop(t, provider, failing)

	outcome := loop.Run(context.Background(), nil, "what is 1/0?")
	if outcome.State != StateFinished {
		t.Fatalf("outcome = %+v", outcome)
	}
	obs := outcome.Steps[0].Observation
	if !strings.Contains(obs, "division by zero") || !strings.Contains(obs, "Calculator") {
		t.Errorf("Observation = %q", obs)
	}
}

func TestRunIterationBudgetExhausted(t *testing.T) {
	// The model never produces a final answer.
	responses := make([]string, 10)
	for i := range responses {
		responses[i] = "Action: Calculator\nAction Input: 1+1"
	}
	provider := &scriptedProvider{responses: responses}
	loop := newTestLoop(t, provider, stubTool{name: "Calculator", desc: "arithmetic", reply: "2"})

	outcome := loop.Run(context.Background(), nil, "loop forever")
	if outcome.State != StateBudgetExceeded {
		t.Fatalf("State = %v, want BUDGET_EXCEEDED", outcome.State)
	}
	if outcome.Iterations != 6 {
		t.Errorf("Iterations = %d, want 6", outcome.Iterations)
	}
	if outcome.Answer == "" {
		t.Error("a refusal answer must still be returned")
	}
	var budgetErr *BudgetExceededError
	if !errors.As(outcome.Err, &budgetErr) {
		t.Errorf("Err = %v, want *BudgetExceededError", outcome.Err)
	}
}

func TestRunDeadlineDiscardsLateResult(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Action: Slow\nAction Input: anything",
		"Final Answer: should never be reached",
	}}
	slow := stubTool{name: "Slow", desc: "sleeps past the deadline", reply: "late", delay: 50 * time.Millisecond}
	registry, err := NewRegistry(slow)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	loop := NewLoop(provider, registry, Config{
		SystemPrompt:  "assistant",
		MaxIterations: 6,
		MaxDuration:   10 * time.Millisecond,
	})

	outcome := loop.Run(context.Background(), nil, "take your time")
	if outcome.State != StateBudgetExceeded {
		t.Fatalf("State = %v, want BUDGET_EXCEEDED", outcome.State)
	}
	for _, step := range outcome.Steps {
		if step.Observation == "late" {
			t.Error("late tool result must be discarded")
		}
	}
	if outcome.Answer == "" {
		t.Error("a refusal answer must still be returned")
	}
}

func TestRunCarriesHistory(t *testing.T) {
	provider := &scriptedProvider{responses: []string{
		"Final Answer: you asked about lattes.",
	}}
	registry, err := NewRegistry(stubTool{name: "Calculator", desc: "arithmetic"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	var seen []llm.Message
	capture := &capturingProvider{inner: provider, out: &seen}
	loop := NewLoop(capture, registry, Config{SystemPrompt: "assistant", MaxIterations: 6, MaxDuration: time.Minute})

	history := []store.Turn{
		{Role: store.RoleUser, Content: "tell me about lattes"},
		{Role: store.RoleModel, Content: "lattes are espresso with milk"},
	}
	outcome := loop.Run(context.Background(), history, "what did I ask before?")
	if outcome.State != StateFinished {
		t.Fatalf("outcome = %+v", outcome)
	}
	// system + 2 history turns + current input.
	if len(seen) != 4 {
		t.Fatalf("got %d messages, want 4", len(seen))
	}
	if seen[0].Role != "system" {
		t.Errorf("first message role = %q", seen[0].Role)
	}
	if seen[2].Role != "assistant" || seen[2].Content != "lattes are espresso with milk" {
		t.Errorf("history turn not carried: %+v", seen[2])
	}
}

type capturingProvider struct {
	inner llm.LLMProvider
	out   *[]llm.Message
}

func (c *capturingProvider) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	*c.out = append((*c.out)[:0], history...)
	return c.inner.Chat(ctx, history, opts...)
}

func (c *capturingProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return c.inner.Generate(ctx, prompt, opts...)
}
