// internal/config/config.go
//
// This package handles configuration and the documents directory structure.
// Every project that uses Quarterdeck keeps its governance documents (task
// tables, the pirate code, meeting logs, team profiles, partnership papers)
// under a single base directory.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "quarterdeck.yaml"

	// DocsDirEnv overrides the base documents directory when set.
	DocsDirEnv = "QUARTERDECK_DOCS_DIR"

	defaultDocumentsDir = "documents"
	defaultContext      = "planning"
)

const defaultProjectConfigYAML = `# quarterdeck project configuration
version: 1

# Crew members who own task lists. Tool callers are expected to route task
# operations to one of these names; the task engine itself accepts any name.
crew:
  - Philipp
  - Guillaume

documents:
  # Base directory for all governance documents. The QUARTERDECK_DOCS_DIR
  # environment variable takes precedence over this value.
  dir: documents

contexts:
  default: planning
  # Custom context definitions (YAML or Go) are loaded from this directory.
  plugins: contexts
`

// DocumentsConfig captures document tree preferences.
type DocumentsConfig struct {
	Dir string `yaml:"dir"`
}

// ContextsConfig captures governance context preferences.
type ContextsConfig struct {
	Default string `yaml:"default"`
	Plugins string `yaml:"plugins,omitempty"`
}

// ProjectConfig models quarterdeck.yaml.
type ProjectConfig struct {
	Version   int             `yaml:"version"`
	Crew      []string        `yaml:"crew"`
	Documents DocumentsConfig `yaml:"documents"`
	Contexts  ContextsConfig  `yaml:"contexts"`
}

// Config holds the runtime configuration for Quarterdeck.
type Config struct {
	// ProjectDir is the directory where the user ran `quarterdeck` from.
	ProjectDir string

	// DocumentsDir is the resolved base directory for governance documents.
	DocumentsDir string

	Project ProjectConfig
}

// New creates a Config for the given project directory, loading
// quarterdeck.yaml when present and applying the environment override for
// the documents directory.
func New(projectDir string) (*Config, error) {
	cfg := &Config{
		ProjectDir: projectDir,
		Project:    defaultProjectConfig(),
	}
	if err := cfg.loadProjectConfig(); err != nil {
		return nil, err
	}
	cfg.DocumentsDir = cfg.resolveDocumentsDir()
	return cfg, nil
}

// InitDocumentsDir creates the documents directory structure for a project.
// This is an explicit startup step; nothing in this package creates
// directories as a side effect of being imported.
//
// Structure created:
//
//	<documents>/
//	├── meetings/   <- one markdown log per meeting date
//	├── profiles/   <- one markdown profile per crew member
//	└── logs/       <- operation logbook
func InitDocumentsDir(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil config")
	}
	dirs := []string{
		cfg.DocumentsDir,
		cfg.MeetingsDir(),
		cfg.ProfilesDir(),
		cfg.LogsDir(),
		cfg.ContextPluginsDir(),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: ensure %s: %w", dir, err)
		}
	}
	return ensureProjectConfig(cfg.ProjectConfigPath())
}

// ProjectConfigPath returns the on-disk location for the project config file.
func (c *Config) ProjectConfigPath() string {
	return filepath.Join(c.ProjectDir, ConfigFileName)
}

// TaskFilePath returns the task table path for a crew member.
func (c *Config) TaskFilePath(userName string) string {
	return filepath.Join(c.DocumentsDir, fmt.Sprintf("tasks_%s.md", userName))
}

// PirateCodePath returns the path to the pirate code charter.
func (c *Config) PirateCodePath() string {
	return filepath.Join(c.DocumentsDir, "pirate_code.md")
}

// MeetingsDir returns the directory holding meeting logs.
func (c *Config) MeetingsDir() string {
	return filepath.Join(c.DocumentsDir, "meetings")
}

// MeetingPath returns the log path for a meeting date (YYYY-MM-DD).
func (c *Config) MeetingPath(date string) string {
	return filepath.Join(c.MeetingsDir(), date+".md")
}

// ProfilesDir returns the directory holding team profiles.
func (c *Config) ProfilesDir() string {
	return filepath.Join(c.DocumentsDir, "profiles")
}

// ProfilePath returns the profile path for a crew member.
func (c *Config) ProfilePath(memberName string) string {
	return filepath.Join(c.ProfilesDir(), memberName+".md")
}

// PartnershipAgreementPath returns the partnership agreement document path.
func (c *Config) PartnershipAgreementPath() string {
	return filepath.Join(c.DocumentsDir, "partnership_agreement.md")
}

// PartnershipCompanionPath returns the partnership companion document path.
func (c *Config) PartnershipCompanionPath() string {
	return filepath.Join(c.DocumentsDir, "partnership_companion.md")
}

// LogsDir returns the directory holding the operation logbook.
func (c *Config) LogsDir() string {
	return filepath.Join(c.DocumentsDir, "logs")
}

// LogbookPath returns the operation logbook file path.
func (c *Config) LogbookPath() string {
	return filepath.Join(c.LogsDir(), "quarterdeck.log")
}

// ContextPluginsDir returns the directory scanned for custom context
// definitions.
func (c *Config) ContextPluginsDir() string {
	plugins := c.Project.Contexts.Plugins
	if plugins == "" {
		plugins = "contexts"
	}
	if filepath.IsAbs(plugins) {
		return filepath.Clean(plugins)
	}
	return filepath.Join(c.ProjectDir, plugins)
}

// Crew returns the configured crew member names.
func (c *Config) Crew() []string {
	return c.Project.Crew
}

// IsCrewMember reports whether name is in the configured roster.
func (c *Config) IsCrewMember(name string) bool {
	for _, member := range c.Project.Crew {
		if strings.EqualFold(strings.TrimSpace(member), strings.TrimSpace(name)) {
			return true
		}
	}
	return false
}

// DefaultContext returns the configured default governance context.
func (c *Config) DefaultContext() string {
	return c.Project.Contexts.Default
}

func (c *Config) resolveDocumentsDir() string {
	if env := strings.TrimSpace(os.Getenv(DocsDirEnv)); env != "" {
		if filepath.IsAbs(env) {
			return filepath.Clean(env)
		}
		return filepath.Clean(filepath.Join(c.ProjectDir, env))
	}
	dir := strings.TrimSpace(c.Project.Documents.Dir)
	if dir == "" {
		dir = defaultDocumentsDir
	}
	if filepath.IsAbs(dir) {
		return filepath.Clean(dir)
	}
	return filepath.Clean(filepath.Join(c.ProjectDir, dir))
}

func (c *Config) loadProjectConfig() error {
	path := c.ProjectConfigPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var parsed ProjectConfig
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	parsed.applyDefaults()
	parsed.normalize()
	if err := parsed.validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	c.Project = parsed
	return nil
}

func defaultProjectConfig() ProjectConfig {
	return ProjectConfig{
		Version: 1,
		Crew:    []string{"Philipp", "Guillaume"},
		Documents: DocumentsConfig{
			Dir: defaultDocumentsDir,
		},
		Contexts: ContextsConfig{
			Default: defaultContext,
			Plugins: "contexts",
		},
	}
}

func (pc *ProjectConfig) applyDefaults() {
	if pc.Version == 0 {
		pc.Version = 1
	}
	if len(pc.Crew) == 0 {
		pc.Crew = []string{"Philipp", "Guillaume"}
	}
	if pc.Documents.Dir == "" {
		pc.Documents.Dir = defaultDocumentsDir
	}
	if pc.Contexts.Default == "" {
		pc.Contexts.Default = defaultContext
	}
}

func (pc *ProjectConfig) normalize() {
	crew := make([]string, 0, len(pc.Crew))
	for _, member := range pc.Crew {
		trimmed := strings.TrimSpace(member)
		if trimmed != "" {
			crew = append(crew, trimmed)
		}
	}
	pc.Crew = crew
	pc.Documents.Dir = strings.TrimSpace(pc.Documents.Dir)
	pc.Contexts.Default = strings.ToLower(strings.TrimSpace(pc.Contexts.Default))
	pc.Contexts.Plugins = strings.TrimSpace(pc.Contexts.Plugins)
}

func (pc *ProjectConfig) validate() error {
	if pc.Version < 1 {
		return fmt.Errorf("config version must be >= 1")
	}
	if len(pc.Crew) == 0 {
		return fmt.Errorf("at least one crew member is required")
	}
	if pc.Contexts.Default == "" {
		return fmt.Errorf("contexts.default is required")
	}
	return nil
}

func ensureProjectConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultProjectConfigYAML), 0o644)
}
