package taskstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T, opts ...Option) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	pathFor := func(user string) string {
		return filepath.Join(dir, fmt.Sprintf("tasks_%s.md", user))
	}
	return NewStore(pathFor, opts...), dir
}

func TestListMissingFileReturnsDefaultHeader(t *testing.T) {
	store, dir := newTestStore(t)
	tasks, raw, err := store.List("Philipp")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected empty list, got %d tasks", len(tasks))
	}
	if raw != DefaultHeader("Philipp") {
		t.Fatalf("raw = %q, want default header", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, "tasks_Philipp.md")); !os.IsNotExist(err) {
		t.Fatalf("List must not create the backing file: %v", err)
	}
}

func TestListRejectsEmptyUser(t *testing.T) {
	store, _ := newTestStore(t)
	if _, _, err := store.List("  "); !errors.Is(err, ErrInvalidUser) {
		t.Fatalf("expected ErrInvalidUser, got %v", err)
	}
}

func TestAppendAssignsMonotonicIDs(t *testing.T) {
	store, _ := newTestStore(t)
	for i, want := range []int{1, 2, 3} {
		task, err := store.Append("Philipp", fmt.Sprintf("task-%d", i), "Guillaume", "2026-09-01", "desc")
		if err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
		if task.ID != want {
			t.Fatalf("append %d: id = %d, want %d", i, task.ID, want)
		}
		if task.Status != StatusPending {
			t.Fatalf("status = %q, want %q", task.Status, StatusPending)
		}
	}
	// Another user's list starts at 1 regardless.
	task, err := store.Append("Guillaume", "other", "Philipp", "2026-09-02", "desc")
	if err != nil {
		t.Fatalf("Append other user: %v", err)
	}
	if task.ID != 1 {
		t.Fatalf("other user first id = %d, want 1", task.ID)
	}
}

func TestAppendRejectsMissingFields(t *testing.T) {
	store, _ := newTestStore(t)
	if _, err := store.Append("Philipp", "", "Guillaume", "2026-09-01", "desc"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for empty title, got %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	seed := []struct {
		title, assignee, deadline, desc string
	}{
		{"Chart the route", "Philipp", "2026-09-10", "harbor to harbor"},
		{"Stock provisions", "Guillaume", "2026-09-12", "rum and hardtack"},
		{"Mend the sails", "Philipp", "2026-09-15", "mainsail first"},
	}
	for _, row := range seed {
		if _, err := store.Append("Philipp", row.title, row.assignee, row.deadline, row.desc); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	tasks, _, err := store.List("Philipp")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != len(seed) {
		t.Fatalf("len(tasks) = %d, want %d", len(tasks), len(seed))
	}
	for i, task := range tasks {
		if task.ID != i+1 {
			t.Fatalf("tasks[%d].ID = %d, want %d", i, task.ID, i+1)
		}
		if task.Title != seed[i].title || task.Assignee != seed[i].assignee ||
			task.Deadline != seed[i].deadline || task.Description != seed[i].desc {
			t.Fatalf("tasks[%d] = %+v, want %+v", i, task, seed[i])
		}
	}
}

func TestUpdateTouchesOnlyRequestedFields(t *testing.T) {
	store, _ := newTestStore(t)
	created, err := store.Append("Philipp", "Swab the deck", "Guillaume", "2026-09-03", "stem to stern")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	done := "Done"
	updated, err := store.Update("Philipp", created.ID, map[string]*string{"status": &done})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != "Done" {
		t.Fatalf("status = %q, want Done", updated.Status)
	}
	if updated.Title != created.Title || updated.Assignee != created.Assignee ||
		updated.Deadline != created.Deadline || updated.Description != created.Description {
		t.Fatalf("update mutated unrelated fields: %+v", updated)
	}
}

func TestUpdateNilValueLeavesFieldUnchanged(t *testing.T) {
	store, _ := newTestStore(t)
	created, err := store.Append("Philipp", "Careen the hull", "Philipp", "2026-09-20", "scrape barnacles")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	done := "Done"
	updated, err := store.Update("Philipp", created.ID, map[string]*string{
		"status": &done,
		"title":  nil,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != created.Title {
		t.Fatalf("nil update changed title to %q", updated.Title)
	}
}

func TestUpdateRejectsUnknownFieldWithoutMutation(t *testing.T) {
	store, dir := newTestStore(t)
	created, err := store.Append("Philipp", "Hoist the colors", "Guillaume", "2026-09-05", "at dawn")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	path := filepath.Join(dir, "tasks_Philipp.md")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	high := "high"
	if _, err := store.Update("Philipp", created.ID, map[string]*string{"priority": &high}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown key, got %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatalf("rejected update mutated the file")
	}
}

func TestDeleteRemovesTaskAndNeverReusesID(t *testing.T) {
	store, _ := newTestStore(t)
	for i := 0; i < 3; i++ {
		if _, err := store.Append("Philipp", fmt.Sprintf("t%d", i), "Philipp", "2026-09-01", "d"); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}
	if err := store.Delete("Philipp", 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	tasks, _, err := store.List("Philipp")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	for _, task := range tasks {
		if task.ID == 2 {
			t.Fatalf("deleted id 2 still present")
		}
	}
	created, err := store.Append("Philipp", "t3", "Philipp", "2026-09-01", "d")
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if created.ID != 4 {
		t.Fatalf("id after delete = %d, want 4 (no reuse)", created.ID)
	}
}

func TestDeleteUnknownIDLeavesFileByteIdentical(t *testing.T) {
	store, dir := newTestStore(t)
	if _, err := store.Append("Philipp", "t", "Philipp", "2026-09-01", "d"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	path := filepath.Join(dir, "tasks_Philipp.md")
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.Delete("Philipp", 99); !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Fatalf("failed delete mutated the file")
	}
}

func TestWrittenFileFormat(t *testing.T) {
	store, dir := newTestStore(t)
	if _, err := store.Append("Philipp", "Chart", "Guillaume", "2026-09-10", "the route"); err != nil {
		t.Fatalf("Append: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "tasks_Philipp.md"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# Task List for Philipp\n\n" + TableHeader +
		"| 1 | Chart | Guillaume | 2026-09-10 | the route | Pending |\n"
	if string(data) != want {
		t.Fatalf("file = %q, want %q", data, want)
	}
}

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) Warn(format string, args ...any) {
	r.lines = append(r.lines, fmt.Sprintf(format, args...))
}

func TestMalformedRowsAreSkippedNotFatal(t *testing.T) {
	logger := &recordingLogger{}
	store, dir := newTestStore(t, WithLogger(logger))
	content := DefaultHeader("Philipp") +
		"| 1 | Good | Philipp | 2026-09-01 | fine | Pending |\n" +
		"| not-a-number | Bad | Philipp | 2026-09-01 | id | Pending |\n" +
		"| 2 | too | few |\n" +
		"| 3 | Also good | Guillaume | 2026-09-02 | fine | Done |\n"
	if err := os.WriteFile(filepath.Join(dir, "tasks_Philipp.md"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	tasks, _, err := store.List("Philipp")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 3 {
		t.Fatalf("unexpected surviving rows: %+v", tasks)
	}
	if len(logger.lines) != 2 {
		t.Fatalf("expected 2 skip diagnostics, got %v", logger.lines)
	}
}

func TestListHeaderMissingReturnsRawContent(t *testing.T) {
	store, dir := newTestStore(t)
	raw := "just some prose, no table here\n"
	if err := os.WriteFile(filepath.Join(dir, "tasks_Philipp.md"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}
	tasks, got, err := store.List("Philipp")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %d", len(tasks))
	}
	if got != raw {
		t.Fatalf("raw = %q, want %q", got, raw)
	}
}
