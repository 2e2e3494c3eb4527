package tools

import (
	"context"
	"time"

	"github.com/harborcrew/quarterdeck/internal/codex"
	"github.com/harborcrew/quarterdeck/internal/journal"
	"github.com/harborcrew/quarterdeck/internal/taskstore"
)

// ReviewDecision is the outcome of presenting an item for human approval.
type ReviewDecision struct {
	Approved bool   `json:"approved"`
	Comments string `json:"comments,omitempty"`
}

// Prompter relays human-in-the-loop interactions to whatever surface the
// hosting application provides (terminal console, web UI, plain stdin).
type Prompter interface {
	// Clarify asks the user a question and returns their textual response.
	Clarify(ctx context.Context, question string, contextInfo map[string]any) (string, error)
	// Review presents an item and a proposed action, returning the decision.
	Review(ctx context.Context, itemType string, item map[string]any, proposedAction string) (ReviewDecision, error)
}

// Service bundles the engines the tool handlers operate on.
type Service struct {
	Tasks    *taskstore.Store
	Code     *codex.Editor
	Journal  *journal.Journal
	Prompter Prompter

	// Now overrides the clock for get_current_time; defaults to time.Now.
	Now func() time.Time
}

func (s Service) clock() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// NewRegistryFor builds a registry with every tool the service supports.
// Engines left nil simply contribute no tools, so a caller can stand up a
// partial surface (the MCP server skips HITL tools when no prompter is
// attached, for example).
func NewRegistryFor(svc Service, opts ...RegistryOption) *Registry {
	reg := NewRegistry(opts...)
	if svc.Tasks != nil {
		svc.registerTaskTools(reg)
	}
	if svc.Code != nil {
		svc.registerCodeTools(reg)
	}
	if svc.Journal != nil {
		svc.registerJournalTools(reg)
	}
	svc.registerTimeTool(reg)
	if svc.Prompter != nil {
		svc.registerHITLTools(reg)
	}
	return reg
}
