// Package taskstore owns the on-disk task table kept for each crew member.
//
// A task list is a markdown pseudo-table: a title line, a fixed six-column
// header, and one pipe-delimited row per task. Every operation re-reads the
// backing file, mutates the parsed rows in memory, and rewrites the whole
// file sorted by id. There is no caching between calls; the file is the
// single source of truth.
package taskstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"
)

// TableHeader is the fixed six-column header every task file carries after
// its title line. Parsing locates this exact block; rows follow it.
const TableHeader = "| ID | Title | Assignee | Deadline | Description | Status |\n|---|---|---|---|---|---|\n"

// StatusPending is assigned to every newly created task.
const StatusPending = "Pending"

var (
	// ErrInvalidUser indicates an empty or unusable user name.
	ErrInvalidUser = errors.New("taskstore: invalid user name")
	// ErrValidation indicates malformed or missing operation input.
	ErrValidation = errors.New("taskstore: validation error")
	// ErrTaskNotFound indicates no task with the requested id exists.
	ErrTaskNotFound = errors.New("taskstore: task not found")
)

// allowedFields enumerates the task fields an update may touch.
var allowedFields = map[string]struct{}{
	"title":       {},
	"assignee":    {},
	"deadline":    {},
	"description": {},
	"status":      {},
}

// Task is one row in a crew member's task table.
type Task struct {
	ID          int
	Title       string
	Assignee    string
	Deadline    string
	Description string
	Status      string
}

// PathFunc resolves the task file path for a user name.
type PathFunc func(userName string) string

// Logger receives diagnostics about rows the parser skipped.
type Logger interface {
	Warn(format string, args ...any)
}

// Option customizes a Store during construction.
type Option func(*Store)

// WithLogger injects a logger for skipped-row diagnostics.
func WithLogger(logger Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store reads and rewrites per-user task tables.
type Store struct {
	pathFor PathFunc
	logger  Logger
}

// NewStore builds a store that resolves task file paths via pathFor.
func NewStore(pathFor PathFunc, opts ...Option) *Store {
	store := &Store{
		pathFor: pathFor,
		logger:  nopLogger{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	return store
}

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// DefaultHeader renders the header block used for a user with no file yet.
func DefaultHeader(userName string) string {
	return fmt.Sprintf("# Task List for %s\n\n%s", userName, TableHeader)
}

// List parses the user's task table. A missing file yields an empty list and
// the default header without creating anything on disk; a file whose header
// marker cannot be located yields an empty list and the raw content as read.
// Rows that do not parse into exactly six fields with an integer id are
// logged and skipped.
func (s *Store) List(userName string) ([]Task, string, error) {
	path, err := s.resolve(userName)
	if err != nil {
		return nil, "", err
	}
	return s.read(path, userName)
}

// Append creates a new task with id max+1 (1 for an empty list) and status
// Pending, then rewrites the full table. The created task is returned.
func (s *Store) Append(userName, title, assignee, deadline, description string) (Task, error) {
	path, err := s.resolve(userName)
	if err != nil {
		return Task{}, err
	}
	for field, value := range map[string]string{
		"title":       title,
		"assignee":    assignee,
		"deadline":    deadline,
		"description": description,
	} {
		if strings.TrimSpace(value) == "" {
			return Task{}, fmt.Errorf("%w: %s is required", ErrValidation, field)
		}
	}

	tasks, _, err := s.read(path, userName)
	if err != nil {
		return Task{}, err
	}

	nextID := 1
	for _, task := range tasks {
		if task.ID >= nextID {
			nextID = task.ID + 1
		}
	}

	created := Task{
		ID:          nextID,
		Title:       title,
		Assignee:    assignee,
		Deadline:    deadline,
		Description: description,
		Status:      StatusPending,
	}
	tasks = append(tasks, created)

	if err := s.write(path, userName, tasks); err != nil {
		return Task{}, err
	}
	return created, nil
}

// Update applies the provided field updates to the task with taskID and
// rewrites the table. Keys outside {title, assignee, deadline, description,
// status} abort the whole operation before any mutation; a present key with
// a nil value leaves that field unchanged.
func (s *Store) Update(userName string, taskID int, updates map[string]*string) (Task, error) {
	path, err := s.resolve(userName)
	if err != nil {
		return Task{}, err
	}
	if len(updates) == 0 {
		return Task{}, fmt.Errorf("%w: modify requires at least one field update", ErrValidation)
	}
	for key := range updates {
		if _, ok := allowedFields[key]; !ok {
			return Task{}, fmt.Errorf("%w: unknown update field %q", ErrValidation, key)
		}
	}

	tasks, _, err := s.read(path, userName)
	if err != nil {
		return Task{}, err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return Task{}, fmt.Errorf("%w: id %d in %s's list", ErrTaskNotFound, taskID, userName)
	}

	task := tasks[idx]
	applyUpdate := func(dst *string, key string) {
		if value, ok := updates[key]; ok && value != nil {
			*dst = *value
		}
	}
	applyUpdate(&task.Title, "title")
	applyUpdate(&task.Assignee, "assignee")
	applyUpdate(&task.Deadline, "deadline")
	applyUpdate(&task.Description, "description")
	applyUpdate(&task.Status, "status")
	tasks[idx] = task

	if err := s.write(path, userName, tasks); err != nil {
		return Task{}, err
	}
	return task, nil
}

// Delete removes the task with taskID from the user's table and rewrites
// the file. The freed id is never reused by later appends while higher ids
// remain.
func (s *Store) Delete(userName string, taskID int) error {
	path, err := s.resolve(userName)
	if err != nil {
		return err
	}

	tasks, _, err := s.read(path, userName)
	if err != nil {
		return err
	}

	idx := indexOf(tasks, taskID)
	if idx < 0 {
		return fmt.Errorf("%w: id %d in %s's list", ErrTaskNotFound, taskID, userName)
	}
	tasks = append(tasks[:idx], tasks[idx+1:]...)

	return s.write(path, userName, tasks)
}

func (s *Store) resolve(userName string) (string, error) {
	if strings.TrimSpace(userName) == "" {
		return "", ErrInvalidUser
	}
	return s.pathFor(userName), nil
}

func (s *Store) read(path, userName string) ([]Task, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, DefaultHeader(userName), nil
		}
		return nil, "", fmt.Errorf("taskstore: read %s: %w", path, err)
	}
	raw := string(data)

	tableStart := strings.Index(raw, TableHeader)
	if tableStart < 0 {
		return nil, raw, nil
	}

	var tasks []Task
	body := raw[tableStart+len(TableHeader):]
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cells := splitRow(line)
		if len(cells) != 6 {
			s.logger.Warn("taskstore: skipping row with %d columns in %s: %q", len(cells), path, line)
			continue
		}
		id, err := strconv.Atoi(cells[0])
		if err != nil {
			s.logger.Warn("taskstore: skipping row with non-integer id in %s: %q", path, line)
			continue
		}
		tasks = append(tasks, Task{
			ID:          id,
			Title:       cells[1],
			Assignee:    cells[2],
			Deadline:    cells[3],
			Description: cells[4],
			Status:      cells[5],
		})
	}
	return tasks, raw, nil
}

func (s *Store) write(path, userName string, tasks []Task) error {
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })

	var b strings.Builder
	fmt.Fprintf(&b, "# Task List for %s\n\n", userName)
	b.WriteString(TableHeader)
	for _, task := range tasks {
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s | %s |\n",
			task.ID, task.Title, task.Assignee, task.Deadline, task.Description, task.Status)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("taskstore: write %s: %w", path, err)
	}
	return nil
}

// splitRow strips the outer pipe delimiters from a table row and returns the
// trimmed cell values.
func splitRow(line string) []string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.Trim(trimmed, "|")
	cells := strings.Split(trimmed, "|")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func indexOf(tasks []Task, id int) int {
	for i, task := range tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}
