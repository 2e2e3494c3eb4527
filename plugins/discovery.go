package plugins

import (
	"fmt"

	"github.com/harborcrew/quarterdeck/internal/config"
	"github.com/harborcrew/quarterdeck/internal/router"
)

// RegisterContextPlugins discovers YAML and Go context definitions under the
// project's contexts directory and registers them with the router.
func RegisterContextPlugins(r *router.Router, cfg *config.Config) error {
	if r == nil || cfg == nil {
		return nil
	}
	defs, err := loadAllDefinitionFiles(cfg.ContextPluginsDir())
	if err != nil {
		return err
	}
	if len(defs) == 0 {
		return nil
	}
	seen := make(map[string]string)
	for _, file := range defs {
		def := file.Definition
		if existing, ok := seen[def.ID]; ok {
			return fmt.Errorf("plugin: duplicate context id %s (%s and %s)", def.ID, existing, file.Path)
		}
		seen[def.ID] = file.Path
		resolved, err := def.Resolve()
		if err != nil {
			return fmt.Errorf("plugin: %s: %w", file.Path, err)
		}
		if err := r.Register(resolved); err != nil {
			return fmt.Errorf("plugin: register %s from %s: %w", def.ID, file.Path, err)
		}
	}
	return nil
}

func loadAllDefinitionFiles(dir string) ([]DefinitionFile, error) {
	yamlDefs, err := LoadDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	goDefs, err := LoadGoDefinitionDir(dir)
	if err != nil {
		return nil, err
	}
	return append(yamlDefs, goDefs...), nil
}
