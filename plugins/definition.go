package plugins

import (
	"fmt"
	"strings"

	"github.com/harborcrew/quarterdeck/internal/router"
)

// roleKeys maps the on-disk role keys to their router roles. Plugin authors
// write snake_case keys; the router uses the display names.
var roleKeys = map[string]router.Role{
	"business":    router.RoleBusiness,
	"value_soul":  router.RoleValueSoul,
	"team_spirit": router.RoleTeamSpirit,
}

// ContextDefinition describes a custom governance context loaded from a
// plugin file.
//
// The struct mirrors the on-disk schema under contexts/*.yaml and is
// intentionally narrow so the engine can validate plugin metadata before
// wiring it into the routing table.
type ContextDefinition struct {
	ID          string              `json:"id" yaml:"id"`
	Name        string              `json:"name,omitempty" yaml:"name,omitempty"`
	Description string              `json:"description,omitempty" yaml:"description,omitempty"`
	Roles       map[string][]string `json:"roles" yaml:"roles"`
}

// Normalized returns a trimmed, copy-on-write variant of the definition.
func (def ContextDefinition) Normalized() ContextDefinition {
	clone := ContextDefinition{
		ID:          strings.TrimSpace(def.ID),
		Name:        strings.TrimSpace(def.Name),
		Description: strings.TrimSpace(def.Description),
	}
	if len(def.Roles) > 0 {
		clone.Roles = make(map[string][]string, len(def.Roles))
		for key, capabilities := range def.Roles {
			trimmedKey := strings.TrimSpace(strings.ToLower(key))
			if trimmedKey == "" {
				continue
			}
			trimmed := make([]string, 0, len(capabilities))
			for _, name := range capabilities {
				trimmed = append(trimmed, strings.TrimSpace(name))
			}
			clone.Roles[trimmedKey] = trimmed
		}
	}
	return clone
}

// Validate ensures the plugin definition is well-formed and references known
// role keys.
func (def ContextDefinition) Validate() error {
	normalized := def.Normalized()
	if normalized.ID == "" {
		return fmt.Errorf("plugin: id is required")
	}
	if len(normalized.Roles) == 0 {
		return fmt.Errorf("plugin %s: at least one role is required", normalized.ID)
	}
	for key, capabilities := range normalized.Roles {
		if _, ok := roleKeys[key]; !ok {
			return fmt.Errorf("plugin %s: unknown role key %q", normalized.ID, key)
		}
		if len(capabilities) == 0 {
			return fmt.Errorf("plugin %s: role %s has no capabilities", normalized.ID, key)
		}
		for _, name := range capabilities {
			if name == "" {
				return fmt.Errorf("plugin %s: role %s lists an empty capability", normalized.ID, key)
			}
		}
	}
	return nil
}

// Resolve converts the plugin definition into a router context definition.
func (def ContextDefinition) Resolve() (router.ContextDefinition, error) {
	normalized := def.Normalized()
	if err := normalized.Validate(); err != nil {
		return router.ContextDefinition{}, err
	}
	assignments := make(map[router.Role][]string, len(normalized.Roles))
	for key, capabilities := range normalized.Roles {
		assignments[roleKeys[key]] = capabilities
	}
	return router.ContextDefinition{
		ID:          normalized.ID,
		Name:        normalized.Name,
		Description: normalized.Description,
		Assignments: assignments,
	}, nil
}
