package main

import (
	"errors"
	"testing"

	"github.com/harborcrew/quarterdeck/internal/router"
	"github.com/harborcrew/quarterdeck/internal/tools"
)

func typoContext() router.ContextDefinition {
	return router.ContextDefinition{
		ID: "typo",
		Assignments: map[router.Role][]string{
			router.RoleBusiness: {"read_task_lists"},
		},
	}
}

func TestServeEnvironmentPassesCapabilityCheck(t *testing.T) {
	env, err := newEnvironment(t.TempDir(), false)
	if err != nil {
		t.Fatalf("newEnvironment: %v", err)
	}
	if _, ok := env.registry.Lookup("request_user_clarification"); ok {
		t.Error("HITL tools should not register without a prompter")
	}
	// The builtin contexts all name HITL tools; the check must still pass
	// on the serve surface where those tools are intentionally absent.
	if err := checkCapabilities(env); err != nil {
		t.Fatalf("capability check: %v", err)
	}
}

func TestInteractiveEnvironmentPassesCapabilityCheck(t *testing.T) {
	env, err := newEnvironment(t.TempDir(), true)
	if err != nil {
		t.Fatalf("newEnvironment: %v", err)
	}
	if _, ok := env.registry.Lookup("present_for_review"); !ok {
		t.Error("HITL tools should register with a prompter attached")
	}
	if err := checkCapabilities(env); err != nil {
		t.Fatalf("capability check: %v", err)
	}
}

func TestDispatchReportsFailureAsSentinel(t *testing.T) {
	env, err := newEnvironment(t.TempDir(), false)
	if err != nil {
		t.Fatalf("newEnvironment: %v", err)
	}
	if err := dispatch(env, "get_current_time", tools.Args{"time_zone": "UTC"}); err != nil {
		t.Errorf("successful dispatch returned %v", err)
	}
	err = dispatch(env, "read_task_list", tools.Args{})
	if !errors.Is(err, errToolFailed) {
		t.Errorf("failed dispatch returned %v, want errToolFailed", err)
	}
}

func TestCheckCapabilitiesStillRejectsTypos(t *testing.T) {
	env, err := newEnvironment(t.TempDir(), false)
	if err != nil {
		t.Fatalf("newEnvironment: %v", err)
	}
	env.router.MustRegister(typoContext())
	if err := checkCapabilities(env); err == nil {
		t.Fatal("expected unknown non-HITL tool to be reported")
	}
}
