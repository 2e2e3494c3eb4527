package hitl

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestReaderPrompterClarify(t *testing.T) {
	var out strings.Builder
	p := &ReaderPrompter{
		In:  strings.NewReader("ship it friday\n"),
		Out: &out,
	}
	answer, err := p.Clarify(context.Background(), "When do we ship?", map[string]any{"task_id": 3})
	if err != nil {
		t.Fatalf("Clarify: %v", err)
	}
	if answer != "ship it friday" {
		t.Errorf("answer = %q", answer)
	}
	if !strings.Contains(out.String(), "QUESTION: When do we ship?") {
		t.Errorf("prompt missing question:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "task_id: 3") {
		t.Errorf("prompt missing context:\n%s", out.String())
	}
}

func TestReaderPrompterReview(t *testing.T) {
	var out strings.Builder
	p := &ReaderPrompter{
		In:  strings.NewReader("y\nlooks good\n"),
		Out: &out,
	}
	decision, err := p.Review(context.Background(), "task", map[string]any{"title": "Draft roadmap"}, "create")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if !decision.Approved {
		t.Error("expected approval")
	}
	if decision.Comments != "looks good" {
		t.Errorf("comments = %q", decision.Comments)
	}
}

func TestReaderPrompterReviewReject(t *testing.T) {
	var out strings.Builder
	p := &ReaderPrompter{
		In:  strings.NewReader("n\n\n"),
		Out: &out,
	}
	decision, err := p.Review(context.Background(), "task", nil, "delete")
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	if decision.Approved {
		t.Error("expected rejection")
	}
}

func TestReaderPrompterReviewBadAnswer(t *testing.T) {
	p := &ReaderPrompter{
		In:  strings.NewReader("maybe\n"),
		Out: &strings.Builder{},
	}
	if _, err := p.Review(context.Background(), "task", nil, "create"); err == nil {
		t.Fatal("expected error for non y/n answer")
	}
}

func typeString(m tea.Model, s string) tea.Model {
	for _, r := range s {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestClarifyModelEnterCapturesResponse(t *testing.T) {
	var m tea.Model = newClarifyModel("Which deadline?", nil)
	m = typeString(m, "the october one")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := m.(clarifyModel)
	if !final.done {
		t.Fatal("model should be done after enter")
	}
	if final.response != "the october one" {
		t.Errorf("response = %q", final.response)
	}
}

func TestClarifyModelEscCancels(t *testing.T) {
	var m tea.Model = newClarifyModel("Which deadline?", nil)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.(clarifyModel).canceled {
		t.Fatal("esc should cancel")
	}
}

func TestReviewModelApproveWithComment(t *testing.T) {
	var m tea.Model = newReviewModel("task", map[string]any{"title": "x"}, "create")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'y'}})
	m = typeString(m, "go ahead")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := m.(reviewModel)
	if !final.done {
		t.Fatal("model should be done")
	}
	if !final.decision.Approved {
		t.Error("expected approval")
	}
	if final.decision.Comments != "go ahead" {
		t.Errorf("comments = %q", final.decision.Comments)
	}
}

func TestReviewModelRejectNoComment(t *testing.T) {
	var m tea.Model = newReviewModel("task", nil, "delete")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	final := m.(reviewModel)
	if final.decision.Approved {
		t.Error("expected rejection")
	}
	if !final.done {
		t.Error("model should be done")
	}
}

func TestReviewModelIgnoresOtherKeysWhileDeciding(t *testing.T) {
	var m tea.Model = newReviewModel("task", nil, "create")
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if m.(reviewModel).step != stepDecide {
		t.Error("unexpected step transition")
	}
}
