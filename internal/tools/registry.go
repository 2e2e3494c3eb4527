package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Handler executes one tool invocation and returns its payload.
type Handler func(ctx context.Context, args Args) (any, error)

// Tool pairs a registered name with its handler and documentation.
type Tool struct {
	Name        string
	Description string
	Handler     Handler
}

// AuditLog receives one record per dispatched operation. *logbook.Logbook
// satisfies it.
type AuditLog interface {
	Operation(opID, tool string, err error)
}

type nopAudit struct{}

func (nopAudit) Operation(string, string, error) {}

// Registry maintains the named tools and dispatches invocations into
// envelopes.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	audit AuditLog
	newID func() string
}

// RegistryOption customizes a Registry during construction.
type RegistryOption func(*Registry)

// WithAuditLog injects the operation audit sink.
func WithAuditLog(audit AuditLog) RegistryOption {
	return func(r *Registry) {
		if audit != nil {
			r.audit = audit
		}
	}
}

// WithIDGenerator overrides operation id generation (used in tests).
func WithIDGenerator(gen func() string) RegistryOption {
	return func(r *Registry) {
		if gen != nil {
			r.newID = gen
		}
	}
}

// NewRegistry returns an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		tools: map[string]Tool{},
		audit: nopAudit{},
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Register installs a tool. Returns an error if the name already exists.
func (r *Registry) Register(tool Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tools: name is required")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tools: handler is required for %s", tool.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tools: %s already registered", tool.Name)
	}
	r.tools[tool.Name] = tool
	return nil
}

// MustRegister panics if registration fails.
func (r *Registry) MustRegister(tool Tool) {
	if err := r.Register(tool); err != nil {
		panic(err)
	}
}

// Lookup returns a registered tool by name.
func (r *Registry) Lookup(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// Names returns a sorted list of registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tools returns the registered tools sorted by name.
func (r *Registry) Tools() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Dispatch invokes a tool by name and wraps the outcome in an envelope.
// Every invocation gets an operation id and an audit record; handler errors
// never escape as faults.
func (r *Registry) Dispatch(ctx context.Context, name string, args Args) Result {
	opID := r.newID()
	tool, ok := r.Lookup(name)
	if !ok {
		err := fmt.Errorf("%w: unknown tool %q", ErrValidation, name)
		r.audit.Operation(opID, name, err)
		return Failure(opID, err)
	}
	payload, err := tool.Handler(ctx, args)
	r.audit.Operation(opID, name, err)
	if err != nil {
		return Failure(opID, err)
	}
	return Success(opID, payload)
}
