// Package hitl provides the human-in-the-loop prompting surfaces. The
// console prompter runs a small bubbletea program per question so an agent
// session can hand the terminal to the user and take it back; the reader
// prompter is the plain line-based fallback for non-TTY sessions.
package hitl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/harborcrew/quarterdeck/internal/tools"
)

// ErrCanceled is returned when the user abandons a prompt.
var ErrCanceled = errors.New("hitl: prompt canceled")

// ConsolePrompter implements tools.Prompter with interactive terminal
// programs.
type ConsolePrompter struct{}

var _ tools.Prompter = ConsolePrompter{}

// Clarify asks the user a question in a one-shot terminal program.
func (ConsolePrompter) Clarify(ctx context.Context, question string, contextInfo map[string]any) (string, error) {
	model := newClarifyModel(question, contextInfo)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("hitl: clarify prompt: %w", err)
	}
	m, ok := final.(clarifyModel)
	if !ok {
		return "", fmt.Errorf("hitl: unexpected final model %T", final)
	}
	if m.canceled {
		return "", ErrCanceled
	}
	return m.response, nil
}

// Review presents an item and a proposed action for approval.
func (ConsolePrompter) Review(ctx context.Context, itemType string, item map[string]any, proposedAction string) (tools.ReviewDecision, error) {
	model := newReviewModel(itemType, item, proposedAction)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return tools.ReviewDecision{}, fmt.Errorf("hitl: review prompt: %w", err)
	}
	m, ok := final.(reviewModel)
	if !ok {
		return tools.ReviewDecision{}, fmt.Errorf("hitl: unexpected final model %T", final)
	}
	if m.canceled {
		return tools.ReviewDecision{}, ErrCanceled
	}
	return m.decision, nil
}

// ReaderPrompter implements tools.Prompter over plain line-based IO. It is
// the fallback for sessions without a terminal (pipes, CI, the MCP stdio
// server's companion console).
type ReaderPrompter struct {
	In  io.Reader
	Out io.Writer
}

var _ tools.Prompter = &ReaderPrompter{}

// Clarify writes the question to Out and reads one response line from In.
func (p *ReaderPrompter) Clarify(_ context.Context, question string, contextInfo map[string]any) (string, error) {
	fmt.Fprintf(p.Out, "QUESTION: %s\n", question)
	for _, line := range contextLines(contextInfo) {
		fmt.Fprintf(p.Out, "  %s\n", line)
	}
	fmt.Fprint(p.Out, "> ")
	line, err := p.readLine()
	if err != nil {
		return "", err
	}
	return line, nil
}

// Review writes the item to Out and reads an approve/reject line, then an
// optional comment line.
func (p *ReaderPrompter) Review(_ context.Context, itemType string, item map[string]any, proposedAction string) (tools.ReviewDecision, error) {
	fmt.Fprintf(p.Out, "REVIEW %s (%s):\n", itemType, proposedAction)
	for _, line := range contextLines(item) {
		fmt.Fprintf(p.Out, "  %s\n", line)
	}
	fmt.Fprint(p.Out, "approve? [y/n] ")
	answer, err := p.readLine()
	if err != nil {
		return tools.ReviewDecision{}, err
	}
	approved := false
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		approved = true
	case "n", "no":
	default:
		return tools.ReviewDecision{}, fmt.Errorf("hitl: expected y or n, got %q", answer)
	}
	fmt.Fprint(p.Out, "comments (optional): ")
	comments, err := p.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			comments = ""
		} else {
			return tools.ReviewDecision{}, err
		}
	}
	return tools.ReviewDecision{Approved: approved, Comments: strings.TrimSpace(comments)}, nil
}

func (p *ReaderPrompter) readLine() (string, error) {
	reader := bufio.NewReader(p.In)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("hitl: read response: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// contextLines renders a context map as sorted "key: value" lines so prompts
// stay stable across runs.
func contextLines(info map[string]any) []string {
	if len(info) == 0 {
		return nil
	}
	keys := make([]string, 0, len(info))
	for key := range info {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %v", key, info[key]))
	}
	return lines
}
