package router

// The five built-in governance contexts. Planning opens a cycle, Execution
// carries the work, Evaluation measures it, Reflection captures what the crew
// learned, and Resolution settles disagreements against the partnership
// documents.
const (
	ContextPlanning   = "planning"
	ContextExecution  = "execution"
	ContextEvaluation = "evaluation"
	ContextReflection = "reflection"
	ContextResolution = "resolution"
)

// RegisterBuiltins installs the built-in governance contexts into the router.
func RegisterBuiltins(r *Router) {
	if r == nil {
		return
	}
	r.MustRegister(ContextDefinition{
		ID:          ContextPlanning,
		Name:        "Planning",
		Description: "Set the course: agree on the cycle's tasks and who owns them.",
		Assignments: map[Role][]string{
			RoleBusiness:   {"read_task_list", "write_task", "get_current_time"},
			RoleValueSoul:  {"read_pirate_code", "read_partnership_documents"},
			RoleTeamSpirit: {"read_team_profile", "request_user_clarification"},
		},
	})
	r.MustRegister(ContextDefinition{
		ID:          ContextExecution,
		Name:        "Execution",
		Description: "Work the plan: track progress and keep task state current.",
		Assignments: map[Role][]string{
			RoleBusiness:   {"read_task_list", "edit_task", "write_task"},
			RoleValueSoul:  {"read_pirate_code"},
			RoleTeamSpirit: {"read_team_profile", "present_for_review"},
		},
	})
	r.MustRegister(ContextDefinition{
		ID:          ContextEvaluation,
		Name:        "Evaluation",
		Description: "Take stock: judge outcomes against the code and close tasks.",
		Assignments: map[Role][]string{
			RoleBusiness:   {"read_task_list", "edit_task", "get_current_time"},
			RoleValueSoul:  {"read_pirate_code", "edit_pirate_code", "present_for_review"},
			RoleTeamSpirit: {"read_meeting_log"},
		},
	})
	r.MustRegister(ContextDefinition{
		ID:          ContextReflection,
		Name:        "Reflection",
		Description: "Record the learning: meeting logs, profiles, and code amendments.",
		Assignments: map[Role][]string{
			RoleBusiness:   {"read_meeting_log", "write_meeting_log"},
			RoleValueSoul:  {"read_pirate_code", "write_pirate_code", "edit_pirate_code"},
			RoleTeamSpirit: {"read_team_profile", "write_team_profile", "request_user_clarification"},
		},
	})
	r.MustRegister(ContextDefinition{
		ID:          ContextResolution,
		Name:        "Resolution",
		Description: "Settle disputes by the partnership documents, not by volume.",
		Assignments: map[Role][]string{
			RoleBusiness:   {"read_task_list", "edit_task"},
			RoleValueSoul:  {"read_partnership_documents", "read_pirate_code", "present_for_review"},
			RoleTeamSpirit: {"read_meeting_log", "request_user_clarification"},
		},
	})
}
