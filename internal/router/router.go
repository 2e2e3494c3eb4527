// Package router maps governance contexts to the ordered tool capabilities
// each crew role may exercise inside them. A context names a phase of the
// partnership's decision cycle; the router is the single authority on which
// tools a role brings into that phase and in what order they are offered.
package router

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Role identifies one of the governance perspectives at the table.
type Role string

const (
	// RoleBusiness drives commercial outcomes and task throughput.
	RoleBusiness Role = "Business"
	// RoleValueSoul guards the pirate code and the partnership documents.
	RoleValueSoul Role = "ValueSoul"
	// RoleTeamSpirit watches crew morale, profiles, and meeting culture.
	RoleTeamSpirit Role = "TeamSpirit"
)

// Roles lists every known role in table order.
var Roles = []Role{RoleBusiness, RoleValueSoul, RoleTeamSpirit}

// Valid reports whether the role is one of the known perspectives.
func (r Role) Valid() bool {
	switch r {
	case RoleBusiness, RoleValueSoul, RoleTeamSpirit:
		return true
	}
	return false
}

// ContextDefinition declares one governance context and the ordered
// capabilities each role holds within it. Capability order is meaningful:
// earlier tools are offered to the role first.
type ContextDefinition struct {
	ID          string
	Name        string
	Description string
	Assignments map[Role][]string
}

// Validate ensures the definition is well-formed before registration.
func (def ContextDefinition) Validate() error {
	if strings.TrimSpace(def.ID) == "" {
		return fmt.Errorf("router: context id is required")
	}
	if len(def.Assignments) == 0 {
		return fmt.Errorf("router: context %s has no role assignments", def.ID)
	}
	for role, capabilities := range def.Assignments {
		if !role.Valid() {
			return fmt.Errorf("router: context %s: unknown role %q", def.ID, role)
		}
		if len(capabilities) == 0 {
			return fmt.Errorf("router: context %s: role %s has no capabilities", def.ID, role)
		}
		seen := make(map[string]struct{}, len(capabilities))
		for _, name := range capabilities {
			trimmed := strings.TrimSpace(name)
			if trimmed == "" {
				return fmt.Errorf("router: context %s: role %s lists an empty capability", def.ID, role)
			}
			if _, dup := seen[trimmed]; dup {
				return fmt.Errorf("router: context %s: role %s lists %s twice", def.ID, role, trimmed)
			}
			seen[trimmed] = struct{}{}
		}
	}
	return nil
}

// Router maintains the registered governance contexts.
type Router struct {
	mu       sync.RWMutex
	contexts map[string]ContextDefinition
}

// NewRouter returns an empty router.
func NewRouter() *Router {
	return &Router{contexts: map[string]ContextDefinition{}}
}

// Register installs a context definition. Returns an error if the ID already
// exists or the definition fails validation.
func (r *Router) Register(def ContextDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.contexts[def.ID]; exists {
		return fmt.Errorf("router: context %s already registered", def.ID)
	}
	r.contexts[def.ID] = def
	return nil
}

// MustRegister panics if registration fails.
func (r *Router) MustRegister(def ContextDefinition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Resolve returns a registered context by ID.
func (r *Router) Resolve(id string) (ContextDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.contexts[id]
	if !ok {
		return ContextDefinition{}, fmt.Errorf("router: unknown context %s", id)
	}
	return def, nil
}

// Route returns the ordered capabilities role holds inside the named context.
func (r *Router) Route(contextID string, role Role) ([]string, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("router: unknown role %q", role)
	}
	def, err := r.Resolve(contextID)
	if err != nil {
		return nil, err
	}
	capabilities, ok := def.Assignments[role]
	if !ok {
		return nil, fmt.Errorf("router: role %s is not seated in context %s", role, contextID)
	}
	out := make([]string, len(capabilities))
	copy(out, capabilities)
	return out, nil
}

// IDs returns a sorted list of registered context identifiers.
func (r *Router) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.contexts))
	for id := range r.contexts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// CheckCapabilities verifies that every capability named by every registered
// context resolves through known. Run after tool registration so a typo in
// a routing table or a plugin surfaces at startup instead of mid-session.
func (r *Router) CheckCapabilities(known func(name string) bool) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.contexts))
	for id := range r.contexts {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		def := r.contexts[id]
		for _, role := range Roles {
			for _, name := range def.Assignments[role] {
				if !known(name) {
					return fmt.Errorf("router: context %s: role %s names unknown tool %s", id, role, name)
				}
			}
		}
	}
	return nil
}
