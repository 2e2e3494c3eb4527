package plugins

import (
	"testing"

	"github.com/harborcrew/quarterdeck/internal/router"
)

func TestDefinitionResolve(t *testing.T) {
	def := ContextDefinition{
		ID:   " standup ",
		Name: "Standup",
		Roles: map[string][]string{
			"Business":    {" read_task_list ", "edit_task"},
			"team_spirit": {"read_team_profile"},
		},
	}
	resolved, err := def.Resolve()
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.ID != "standup" {
		t.Errorf("id = %q, want standup", resolved.ID)
	}
	business := resolved.Assignments[router.RoleBusiness]
	if len(business) != 2 || business[0] != "read_task_list" {
		t.Errorf("business assignments = %v", business)
	}
	if _, ok := resolved.Assignments[router.RoleTeamSpirit]; !ok {
		t.Error("team_spirit assignment missing")
	}
}

func TestDefinitionValidate(t *testing.T) {
	cases := []struct {
		name string
		def  ContextDefinition
	}{
		{"missing id", ContextDefinition{Roles: map[string][]string{"business": {"x"}}}},
		{"no roles", ContextDefinition{ID: "x"}},
		{"unknown role key", ContextDefinition{ID: "x", Roles: map[string][]string{"cook": {"y"}}}},
		{"empty capability list", ContextDefinition{ID: "x", Roles: map[string][]string{"business": {}}}},
		{"blank capability", ContextDefinition{ID: "x", Roles: map[string][]string{"business": {"  "}}}},
	}
	for _, tc := range cases {
		if err := tc.def.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
