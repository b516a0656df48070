package agent

import (
	"context"
	"fmt"
	"strings"
)

// Tool is a named capability the loop can select. Implementations must be
// safe for concurrent use; the loop invokes them synchronously.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, input string) (string, error)
}

// ToolError wraps a tool invocation failure. It is captured as an
// observation, never propagated as a fault.
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q failed: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// Registry is the closed, enumerable set of tools. It is validated once at
// startup and immutable afterwards, so lookups need no locking.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry validates and freezes the tool set. Empty or duplicate names
// are startup errors, not call-time surprises.
func NewRegistry(tools ...Tool) (*Registry, error) {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, tool := range tools {
		name := tool.Name()
		if strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, exists := r.tools[name]; exists {
			return nil, fmt.Errorf("duplicate tool name %q", name)
		}
		r.tools[name] = tool
		r.order = append(r.order, name)
	}
	return r, nil
}

// Lookup returns the tool registered under name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns tool names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Describe renders the tool list for the reasoning prompt.
func (r *Registry) Describe() string {
	var b strings.Builder
	for _, name := range r.order {
		fmt.Fprintf(&b, "- %s: %s\n", name, r.tools[name].Description())
	}
	return b.String()
}
