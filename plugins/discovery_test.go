package plugins

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/harborcrew/quarterdeck/internal/config"
	"github.com/harborcrew/quarterdeck/internal/router"
)

const discoveryYAML = `id: standup
roles:
  business:
    - read_task_list
`

func TestRegisterContextPlugins(t *testing.T) {
	cfg := initTestConfig(t)
	path := filepath.Join(cfg.ContextPluginsDir(), "standup.yaml")
	if err := os.WriteFile(path, []byte(discoveryYAML), 0644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	r := router.NewRouter()
	router.RegisterBuiltins(r)
	if err := RegisterContextPlugins(r, cfg); err != nil {
		t.Fatalf("register plugins: %v", err)
	}
	capabilities, err := r.Route("standup", router.RoleBusiness)
	if err != nil {
		t.Fatalf("route plugin context: %v", err)
	}
	if len(capabilities) != 1 || capabilities[0] != "read_task_list" {
		t.Fatalf("unexpected capabilities: %v", capabilities)
	}
}

func TestRegisterContextPluginsDuplicateID(t *testing.T) {
	cfg := initTestConfig(t)
	dir := cfg.ContextPluginsDir()
	if err := os.WriteFile(filepath.Join(dir, "a.yaml"), []byte(discoveryYAML), 0644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "b.yaml"), []byte(discoveryYAML), 0644); err != nil {
		t.Fatalf("write plugin: %v", err)
	}
	r := router.NewRouter()
	if err := RegisterContextPlugins(r, cfg); err == nil {
		t.Fatal("expected duplicate context id to fail")
	}
}

func TestRegisterContextPluginsNoDir(t *testing.T) {
	cfg := initTestConfig(t)
	if err := os.RemoveAll(cfg.ContextPluginsDir()); err != nil {
		t.Fatalf("remove plugins dir: %v", err)
	}
	r := router.NewRouter()
	if err := RegisterContextPlugins(r, cfg); err != nil {
		t.Fatalf("missing plugins dir should not error: %v", err)
	}
}

func initTestConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	cfg, err := config.New(root)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if err := config.InitDocumentsDir(cfg); err != nil {
		t.Fatalf("init documents dir: %v", err)
	}
	return cfg
}
