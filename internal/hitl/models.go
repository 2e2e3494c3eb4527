package hitl

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harborcrew/quarterdeck/internal/tools"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// clarifyModel runs a single free-text question.
type clarifyModel struct {
	question string
	context  []string
	input    textinput.Model
	response string
	done     bool
	canceled bool
}

func newClarifyModel(question string, contextInfo map[string]any) clarifyModel {
	input := textinput.New()
	input.Placeholder = "your answer"
	input.Focus()
	input.CharLimit = 0
	return clarifyModel{
		question: question,
		context:  contextLines(contextInfo),
		input:    input,
	}
}

func (m clarifyModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m clarifyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.response = strings.TrimSpace(m.input.Value())
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.canceled = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m clarifyModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("The crew needs a word") + "\n\n")
	b.WriteString(m.question + "\n")
	for _, line := range m.context {
		b.WriteString(contextStyle.Render("  "+line) + "\n")
	}
	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(helpStyle.Render("enter to answer, esc to cancel") + "\n")
	return b.String()
}

// reviewModel walks a two-step approve/comment flow.
type reviewStep int

const (
	stepDecide reviewStep = iota
	stepComment
)

type reviewModel struct {
	itemType       string
	itemLines      []string
	proposedAction string
	step           reviewStep
	comment        textinput.Model
	decision       tools.ReviewDecision
	done           bool
	canceled       bool
}

func newReviewModel(itemType string, item map[string]any, proposedAction string) reviewModel {
	comment := textinput.New()
	comment.Placeholder = "optional comments"
	comment.CharLimit = 0
	return reviewModel{
		itemType:       itemType,
		itemLines:      contextLines(item),
		proposedAction: proposedAction,
		comment:        comment,
	}
}

func (m reviewModel) Init() tea.Cmd {
	return nil
}

func (m reviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.step == stepComment {
			var cmd tea.Cmd
			m.comment, cmd = m.comment.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.canceled = true
		return m, tea.Quit
	}

	switch m.step {
	case stepDecide:
		switch strings.ToLower(key.String()) {
		case "y":
			m.decision.Approved = true
			m.step = stepComment
			m.comment.Focus()
			return m, textinput.Blink
		case "n":
			m.decision.Approved = false
			m.step = stepComment
			m.comment.Focus()
			return m, textinput.Blink
		}
		return m, nil
	case stepComment:
		if key.Type == tea.KeyEnter {
			m.decision.Comments = strings.TrimSpace(m.comment.Value())
			m.done = true
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.comment, cmd = m.comment.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m reviewModel) View() string {
	if m.done || m.canceled {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Review requested: "+m.itemType) + "\n\n")
	b.WriteString("Proposed action: " + m.proposedAction + "\n")
	for _, line := range m.itemLines {
		b.WriteString(contextStyle.Render("  "+line) + "\n")
	}
	b.WriteString("\n")
	switch m.step {
	case stepDecide:
		b.WriteString(helpStyle.Render("y approve, n reject, esc cancel") + "\n")
	case stepComment:
		b.WriteString(m.comment.View() + "\n")
		b.WriteString(helpStyle.Render("enter to submit, esc to cancel") + "\n")
	}
	return b.String()
}
