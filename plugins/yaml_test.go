package plugins

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleDefinition = `id: standup
name: Standup
description: Quick daily sync over open tasks.
roles:
  business:
    - read_task_list
    - edit_task
  team_spirit:
    - read_team_profile
`

func TestParseDefinitionYAML(t *testing.T) {
	def, err := ParseDefinitionYAML([]byte(sampleDefinition))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if def.ID != "standup" || def.Name != "Standup" {
		t.Fatalf("unexpected definition: %+v", def)
	}
	if len(def.Roles["business"]) != 2 {
		t.Fatalf("unexpected roles: %+v", def.Roles)
	}
}

func TestParseDefinitionYAMLErrors(t *testing.T) {
	if _, err := ParseDefinitionYAML([]byte("")); err == nil {
		t.Fatalf("expected empty payload to fail validation")
	}
	if _, err := ParseDefinitionYAML([]byte("id: x\nroles:\n  quartermaster: [read_task_list]\n")); err == nil {
		t.Fatalf("expected unknown role key to fail validation")
	}
	if _, err := ParseDefinitionYAML([]byte("id: x\n")); err == nil {
		t.Fatalf("expected roleless definition to fail validation")
	}
}

func TestLoadDefinitionDir(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "standup.yaml")
	if err := os.WriteFile(path, []byte(sampleDefinition), 0644); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	defs, err := LoadDefinitionDir(root)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(defs) != 1 {
		t.Fatalf("expected 1 definition, got %d", len(defs))
	}
	if defs[0].Path != path {
		t.Fatalf("expected path %s, got %s", path, defs[0].Path)
	}
	if defs[0].Definition.ID != "standup" {
		t.Fatalf("unexpected id: %+v", defs[0].Definition)
	}
}

func TestLoadDefinitionDirMissing(t *testing.T) {
	defs, err := LoadDefinitionDir(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if defs != nil {
		t.Fatalf("expected nil slice for missing dir, got %v", defs)
	}
}
