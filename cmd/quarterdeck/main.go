// cmd/quarterdeck/main.go
//
// This is the entry point for the Quarterdeck CLI.
//
// Every data-touching subcommand goes through the tool registry rather than
// calling the engines directly, so the command line exercises the same
// dispatch, audit, and envelope path that agent runtimes see over MCP.

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harborcrew/quarterdeck/internal/config"
	"github.com/harborcrew/quarterdeck/internal/hitl"
	"github.com/harborcrew/quarterdeck/internal/journal"
	"github.com/harborcrew/quarterdeck/internal/logbook"
	"github.com/harborcrew/quarterdeck/internal/router"
	"github.com/harborcrew/quarterdeck/internal/taskstore"
	"github.com/harborcrew/quarterdeck/internal/tools"
	"github.com/harborcrew/quarterdeck/plugins"
)

const usageText = `quarterdeck - governance desk for a two-person crew

Usage:
  quarterdeck <command> [flags]

Commands:
  init         Create the documents directory and default config
  route        Show which tools each role holds in a governance context
  task         Read or change a crew member's task list
  code         Read or amend the pirate code
  meeting      Read or write meeting logs
  profile      Read or write team profiles
  partnership  Read the partnership documents
  time         Report the current time in a zone
  serve        Expose the tools over MCP stdio

Run "quarterdeck <command> -h" for command flags.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "init":
		err = runInit(args)
	case "route":
		err = runRoute(args)
	case "task":
		err = runTask(args)
	case "code":
		err = runCode(args)
	case "meeting":
		err = runMeeting(args)
	case "profile":
		err = runProfile(args)
	case "partnership":
		err = runPartnership(args)
	case "time":
		err = runTime(args)
	case "serve":
		err = runServe(args)
	case "help", "-h", "--help":
		fmt.Print(usageText)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(2)
	}
	if err != nil {
		if errors.Is(err, errToolFailed) {
			os.Exit(1)
		}
		die("%v", err)
	}
}

func die(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// environment bundles everything a subcommand needs once the project is
// resolved.
type environment struct {
	cfg      *config.Config
	log      *logbook.Logbook
	registry *tools.Registry
	router   *router.Router
}

// newEnvironment loads the project config and wires the engines, registry,
// and routing table. interactive controls whether HITL tools are registered;
// the MCP server keeps stdio for the protocol and must not prompt.
func newEnvironment(projectDir string, interactive bool) (*environment, error) {
	resolved, err := resolveProjectDir(projectDir)
	if err != nil {
		return nil, err
	}
	cfg, err := config.New(resolved)
	if err != nil {
		return nil, err
	}
	if err := config.InitDocumentsDir(cfg); err != nil {
		return nil, err
	}
	log, err := logbook.New(cfg.LogbookPath())
	if err != nil {
		return nil, fmt.Errorf("open logbook: %w", err)
	}

	svc := tools.Service{
		Tasks:   taskstore.NewStore(cfg.TaskFilePath, taskstore.WithLogger(log)),
		Code:    codexEditor(cfg),
		Journal: journal.New(cfg),
	}
	if interactive {
		svc.Prompter = hitl.ConsolePrompter{}
	}
	registry := tools.NewRegistryFor(svc, tools.WithAuditLog(log))

	r := router.NewRouter()
	router.RegisterBuiltins(r)
	if err := plugins.RegisterContextPlugins(r, cfg); err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, log: log, registry: registry, router: r}, nil
}

func resolveProjectDir(projectDir string) (string, error) {
	if projectDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determine working directory: %w", err)
		}
		return cwd, nil
	}
	absolute, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("resolve project dir: %w", err)
	}
	return absolute, nil
}
