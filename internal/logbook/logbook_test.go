package logbook

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestTailReturnsRecentLines(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "quarterdeck.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	for i := 0; i < 5; i++ {
		book.Info("entry-%d", i)
	}
	lines := book.Tail(3)
	if len(lines) != 3 {
		t.Fatalf("len(lines) = %d, want 3", len(lines))
	}
	for idx, want := range []string{"entry-2", "entry-3", "entry-4"} {
		if !strings.Contains(lines[idx], want) {
			t.Fatalf("line %d = %q, missing %s", idx, lines[idx], want)
		}
	}
}

func TestOperationRecordsOutcome(t *testing.T) {
	dir := t.TempDir()
	book, err := New(filepath.Join(dir, "quarterdeck.log"))
	if err != nil {
		t.Fatalf("new logbook: %v", err)
	}
	book.Operation("op-1", "write_task", nil)
	book.Operation("op-2", "edit_task", errors.New("task not found"))
	lines := book.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "op=op-1 tool=write_task ok") {
		t.Fatalf("success line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "ERROR") || !strings.Contains(lines[1], "task not found") {
		t.Fatalf("error line = %q", lines[1])
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var book *Logbook
	book.Info("ignored")
	book.Operation("op", "tool", nil)
	if lines := book.Tail(5); lines != nil {
		t.Fatalf("nil logbook Tail = %v, want nil", lines)
	}
}
