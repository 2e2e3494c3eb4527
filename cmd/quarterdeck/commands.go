package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/harborcrew/quarterdeck/internal/codex"
	"github.com/harborcrew/quarterdeck/internal/config"
	"github.com/harborcrew/quarterdeck/internal/mcpserver"
	"github.com/harborcrew/quarterdeck/internal/router"
	"github.com/harborcrew/quarterdeck/internal/tools"
)

func codexEditor(cfg *config.Config) *codex.Editor {
	return codex.NewEditor(cfg.PirateCodePath())
}

// errToolFailed marks a dispatch whose envelope already reported the
// failure; main converts it to an exit status without reprinting.
var errToolFailed = errors.New("tool call failed")

// checkCapabilities validates every routing-table entry against the
// registry. HITL tools are absent when no prompter is attached but remain
// routable, so they count as known either way.
func checkCapabilities(env *environment) error {
	hitlTools := make(map[string]bool, len(tools.HITLToolNames))
	for _, name := range tools.HITLToolNames {
		hitlTools[name] = true
	}
	return env.router.CheckCapabilities(func(name string) bool {
		if _, ok := env.registry.Lookup(name); ok {
			return true
		}
		return hitlTools[name]
	})
}

// dispatch runs one tool call and prints the result envelope. A non-success
// envelope sets the exit status without killing the process mid-print.
func dispatch(env *environment, name string, args tools.Args) error {
	result := env.registry.Dispatch(context.Background(), name, args)
	payload, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Println(string(payload))
	if !result.OK() {
		return errToolFailed
	}
	return nil
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	fs.Parse(args)

	resolved, err := resolveProjectDir(*projectDir)
	if err != nil {
		return err
	}
	cfg, err := config.New(resolved)
	if err != nil {
		return err
	}
	if err := config.InitDocumentsDir(cfg); err != nil {
		return err
	}
	if err := seedPirateCode(cfg.PirateCodePath()); err != nil {
		return err
	}
	fmt.Printf("Initialized documents directory at %s\n", cfg.DocumentsDir)
	fmt.Printf("Project config: %s\n", cfg.ProjectConfigPath())
	return nil
}

const defaultPirateCode = `# The Pirate Code

Articles the crew has agreed to sail by. Amendments go through review.

## Article I: Honest Counsel
- Speak plainly in every meeting; disagreement stays on the table, not in the hold.
`

// seedPirateCode writes the starter charter once. Appends require an
// existing document, so init is the only place the file gets created.
func seedPirateCode(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, []byte(defaultPirateCode), 0o644)
}

func runRoute(args []string) error {
	fs := flag.NewFlagSet("route", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	contextID := fs.String("context", "", "governance context (defaults to the configured default)")
	role := fs.String("role", "", "limit output to one role")
	fs.Parse(args)

	env, err := newEnvironment(*projectDir, false)
	if err != nil {
		return err
	}
	id := *contextID
	if id == "" && fs.NArg() > 0 {
		id = fs.Arg(0)
	}
	if id == "" {
		id = env.cfg.DefaultContext()
	}
	if err := checkCapabilities(env); err != nil {
		env.log.Warn("capability check: %v", err)
	}

	def, err := env.router.Resolve(id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s)\n", def.Name, def.ID)
	if def.Description != "" {
		fmt.Printf("  %s\n", def.Description)
	}
	roles := router.Roles
	if *role != "" {
		roles = []router.Role{router.Role(*role)}
	}
	for _, r := range roles {
		capabilities, err := env.router.Route(id, r)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %s\n", r, strings.Join(capabilities, ", "))
	}
	return nil
}

func runTask(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: quarterdeck task <list|add|edit> [flags]")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("task "+sub, flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	user := fs.String("user", "", "crew member who owns the task list")
	title := fs.String("title", "", "task title (add)")
	assignee := fs.String("assignee", "", "task assignee (add)")
	deadline := fs.String("deadline", "", "task deadline (add)")
	description := fs.String("description", "", "task description (add)")
	taskID := fs.Int("id", 0, "task id (edit)")
	action := fs.String("action", "modify", "edit action: modify or delete")
	updates := keyValueFlag{}
	fs.Var(&updates, "set", "field update for modify (key=value, repeatable)")
	fs.Parse(rest)

	env, err := newEnvironment(*projectDir, true)
	if err != nil {
		return err
	}

	switch sub {
	case "list":
		return dispatch(env, "read_task_list", tools.Args{"user_name": *user})
	case "add":
		return dispatch(env, "write_task", tools.Args{
			"user_name":   *user,
			"task_title":  *title,
			"assignee":    *assignee,
			"deadline":    *deadline,
			"description": *description,
		})
	case "edit":
		call := tools.Args{
			"user_name": *user,
			"task_id":   *taskID,
			"action":    *action,
		}
		if len(updates) > 0 {
			call["updates"] = updates.toMap()
		}
		return dispatch(env, "edit_task", call)
	default:
		return fmt.Errorf("unknown task subcommand %q", sub)
	}
}

func runCode(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: quarterdeck code <read|add|edit> [flags]")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("code "+sub, flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	title := fs.String("title", "", "article title")
	text := fs.String("text", "", "article body")
	action := fs.String("action", "modify", "edit action: modify or delete")
	fs.Parse(rest)

	env, err := newEnvironment(*projectDir, true)
	if err != nil {
		return err
	}

	switch sub {
	case "read":
		return dispatch(env, "read_pirate_code", tools.Args{})
	case "add":
		return dispatch(env, "write_pirate_code", tools.Args{
			"article_title": *title,
			"article_text":  *text,
		})
	case "edit":
		call := tools.Args{
			"target_article_title": *title,
			"action":               *action,
		}
		if *action == "modify" {
			call["new_article_text"] = *text
		}
		return dispatch(env, "edit_pirate_code", call)
	default:
		return fmt.Errorf("unknown code subcommand %q", sub)
	}
}

func runMeeting(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: quarterdeck meeting <read|write> [flags]")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("meeting "+sub, flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	date := fs.String("date", "", "meeting date (YYYY-MM-DD)")
	participants := fs.String("participants", "", "comma-separated participant names (write)")
	content := fs.String("content", "", "meeting notes (write)")
	fs.Parse(rest)

	env, err := newEnvironment(*projectDir, true)
	if err != nil {
		return err
	}

	switch sub {
	case "read":
		return dispatch(env, "read_meeting_log", tools.Args{"meeting_date": *date})
	case "write":
		var names []any
		for _, name := range strings.Split(*participants, ",") {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				names = append(names, trimmed)
			}
		}
		return dispatch(env, "write_meeting_log", tools.Args{
			"meeting_date": *date,
			"participants": names,
			"content":      *content,
		})
	default:
		return fmt.Errorf("unknown meeting subcommand %q", sub)
	}
}

func runProfile(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: quarterdeck profile <read|write> [flags]")
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet("profile "+sub, flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	member := fs.String("member", "", "crew member name")
	content := fs.String("content", "", "profile content (write)")
	fs.Parse(rest)

	env, err := newEnvironment(*projectDir, true)
	if err != nil {
		return err
	}

	switch sub {
	case "read":
		return dispatch(env, "read_team_profile", tools.Args{"member_name": *member})
	case "write":
		return dispatch(env, "write_team_profile", tools.Args{
			"member_name": *member,
			"content":     *content,
		})
	default:
		return fmt.Errorf("unknown profile subcommand %q", sub)
	}
}

func runPartnership(args []string) error {
	fs := flag.NewFlagSet("partnership", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	docType := fs.String("type", "agreement", "document type: agreement or companion")
	fs.Parse(args)

	env, err := newEnvironment(*projectDir, true)
	if err != nil {
		return err
	}
	return dispatch(env, "read_partnership_documents", tools.Args{"document_type": *docType})
}

func runTime(args []string) error {
	fs := flag.NewFlagSet("time", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	zone := fs.String("zone", "UTC", "IANA time zone name")
	fs.Parse(args)

	env, err := newEnvironment(*projectDir, false)
	if err != nil {
		return err
	}
	return dispatch(env, "get_current_time", tools.Args{"time_zone": *zone})
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	projectDir := fs.String("project", "", "path to the project directory (defaults to cwd)")
	fs.Parse(args)

	// stdio carries the protocol, so HITL prompts stay out of this surface.
	env, err := newEnvironment(*projectDir, false)
	if err != nil {
		return err
	}
	if err := checkCapabilities(env); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env.log.Info("mcp server starting, tools: %s", strings.Join(env.registry.Names(), ", "))
	if err := mcpserver.New(env.registry).Run(ctx); err != nil {
		env.log.Error("mcp server stopped: %v", err)
		return err
	}
	env.log.Info("mcp server stopped")
	return nil
}

// keyValueFlag collects repeated key=value flags.
type keyValueFlag map[string]string

func (f keyValueFlag) String() string {
	pairs := make([]string, 0, len(f))
	for key, value := range f {
		pairs = append(pairs, key+"="+value)
	}
	return strings.Join(pairs, ",")
}

func (f keyValueFlag) Set(raw string) error {
	key, value, ok := strings.Cut(raw, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", raw)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("empty key in %q", raw)
	}
	f[key] = value
	return nil
}

func (f keyValueFlag) toMap() map[string]any {
	out := make(map[string]any, len(f))
	for key, value := range f {
		out[key] = value
	}
	return out
}
