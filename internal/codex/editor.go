// Package codex edits flat markdown documents composed of titled sections,
// such as the crew's pirate code charter. A section is a `## ` title line
// followed by body lines (conventionally `- ` bullets); anything before the
// first marker is preamble and is never touched by edit operations.
//
// The editor is stateless: every operation re-reads the backing file and,
// for mutations, rewrites it whole. Untouched sections survive byte for
// byte.
package codex

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

const (
	// Marker is the fixed prefix identifying a section title line.
	Marker = "## "
	// BodyPrefix is the conventional prefix for section body lines.
	BodyPrefix = "- "
)

// Action selects the edit behavior for EditSection.
type Action string

const (
	ActionModify Action = "modify"
	ActionDelete Action = "delete"
)

var (
	// ErrValidation indicates malformed or missing operation input.
	ErrValidation = errors.New("codex: validation error")
	// ErrDocumentNotFound indicates the backing file is absent.
	ErrDocumentNotFound = errors.New("codex: document not found")
	// ErrSectionNotFound indicates no section title matched the target.
	ErrSectionNotFound = errors.New("codex: section not found")
)

// sectionBoundary splits a document at section markers. The blank line that
// introduces a section belongs to its delimiter, so deleting a section also
// removes exactly the separator an append wrote; newlines beyond those two
// stay with the preceding text and survive edits untouched.
var sectionBoundary = regexp.MustCompile(`\n{0,2}## `)

// Editor operates on one sectioned document path.
type Editor struct {
	path string
}

// NewEditor builds an editor for the document at path.
func NewEditor(path string) *Editor {
	return &Editor{path: path}
}

// Path returns the document path this editor operates on.
func (e *Editor) Path() string {
	return e.path
}

// Read returns the document's full raw content.
func (e *Editor) Read() (string, error) {
	data, err := os.ReadFile(e.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, e.path)
		}
		return "", fmt.Errorf("codex: read %s: %w", e.path, err)
	}
	return string(data), nil
}

// AppendSection adds a new section at the end of the document. The title is
// normalized to carry the section marker and the body to carry the bullet
// prefix plus a trailing newline. The document must already exist; appending
// never creates it from nothing.
func (e *Editor) AppendSection(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: section title is required", ErrValidation)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: section body is required", ErrValidation)
	}
	if _, err := os.Stat(e.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrDocumentNotFound, e.path)
		}
		return fmt.Errorf("codex: stat %s: %w", e.path, err)
	}

	section := fmt.Sprintf("\n\n%s\n%s", NormalizeTitle(title), NormalizeBody(body))
	file, err := os.OpenFile(e.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("codex: open %s: %w", e.path, err)
	}
	defer file.Close()
	if _, err := file.WriteString(section); err != nil {
		return fmt.Errorf("codex: append to %s: %w", e.path, err)
	}
	return nil
}

// EditSection modifies or deletes the first section whose title matches
// targetTitle (normalized with the marker prefix). Modify replaces the
// section body while keeping the title line and the delimiter that preceded
// the section; delete removes delimiter, title, and body entirely. All other
// sections and the preamble are written back unchanged.
//
// newBody is required for ActionModify and ignored for ActionDelete. Passing
// nil for a modify is a validation error; the distinction between absent and
// empty matters at the tool boundary.
func (e *Editor) EditSection(targetTitle string, action Action, newBody *string) error {
	switch action {
	case ActionModify:
		if newBody == nil {
			return fmt.Errorf("%w: modify requires new section text", ErrValidation)
		}
	case ActionDelete:
	default:
		return fmt.Errorf("%w: action must be %q or %q", ErrValidation, ActionModify, ActionDelete)
	}
	target := NormalizeTitle(targetTitle)

	content, err := e.Read()
	if err != nil {
		return err
	}

	preamble, sections := split(content)
	var out strings.Builder
	out.WriteString(preamble)

	found := false
	for _, sec := range sections {
		if !found && sec.title == target {
			found = true
			if action == ActionDelete {
				continue
			}
			body := *newBody
			if body != "" {
				body = NormalizeBody(body)
			}
			out.WriteString(sec.delimiter)
			out.WriteString(sec.titleLine)
			out.WriteString("\n")
			out.WriteString(body)
			continue
		}
		out.WriteString(sec.delimiter)
		out.WriteString(sec.raw)
	}

	if !found {
		return fmt.Errorf("%w: %q", ErrSectionNotFound, target)
	}

	if err := os.WriteFile(e.path, []byte(out.String()), 0o644); err != nil {
		return fmt.Errorf("codex: write %s: %w", e.path, err)
	}
	return nil
}

// NormalizeTitle ensures the section marker prefix is present.
func NormalizeTitle(title string) string {
	if strings.HasPrefix(title, Marker) {
		return title
	}
	return Marker + title
}

// NormalizeBody ensures the bullet prefix and a trailing newline.
func NormalizeBody(body string) string {
	if !strings.HasPrefix(body, BodyPrefix) {
		body = BodyPrefix + body
	}
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	return body
}

// section is one (delimiter, body) pair produced by split. raw is the body
// text exactly as read, including the title line; title is the comparable
// reconstruction used for matching.
type section struct {
	delimiter string
	raw       string
	titleLine string
	title     string
}

// split divides content into a verbatim preamble and the ordered sections
// that follow. The first match wins when duplicate titles exist; callers
// iterate in document order.
func split(content string) (string, []section) {
	bounds := sectionBoundary.FindAllStringIndex(content, -1)
	if len(bounds) == 0 {
		return content, nil
	}
	preamble := content[:bounds[0][0]]
	sections := make([]section, 0, len(bounds))
	for i, b := range bounds {
		end := len(content)
		if i+1 < len(bounds) {
			end = bounds[i+1][0]
		}
		raw := content[b[1]:end]
		titleLine := strings.TrimSpace(firstLine(raw))
		sections = append(sections, section{
			delimiter: content[b[0]:b[1]],
			raw:       raw,
			titleLine: titleLine,
			title:     Marker + titleLine,
		})
	}
	return preamble, sections
}

func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		return s[:idx]
	}
	return s
}
