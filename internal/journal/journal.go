// Package journal handles the crew's whole-file governance documents:
// dated meeting logs, per-member team profiles, and the partnership papers.
// Unlike the task tables and the pirate code, these documents carry no
// structure the engine needs to parse; every write is a full overwrite and
// every read returns the raw text.
package journal

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"
)

// PartnershipDoc selects which partnership paper to read.
type PartnershipDoc string

const (
	PartnershipAgreement PartnershipDoc = "agreement"
	PartnershipCompanion PartnershipDoc = "companion"
)

var (
	// ErrValidation indicates malformed input such as a bad meeting date.
	ErrValidation = errors.New("journal: validation error")
	// ErrNotFound indicates the requested document is absent.
	ErrNotFound = errors.New("journal: document not found")
)

const meetingDateLayout = "2006-01-02"

// Paths resolves document locations for the journal. *config.Config
// satisfies it.
type Paths interface {
	MeetingPath(date string) string
	ProfilePath(memberName string) string
	PartnershipAgreementPath() string
	PartnershipCompanionPath() string
}

// Journal reads and writes whole-file governance documents.
type Journal struct {
	paths Paths
}

// New builds a journal over the provided path resolver.
func New(paths Paths) *Journal {
	return &Journal{paths: paths}
}

// ReadMeetingLog returns the raw log for a meeting date (YYYY-MM-DD).
func (j *Journal) ReadMeetingLog(date string) (string, error) {
	if err := validateDate(date); err != nil {
		return "", err
	}
	path := j.paths.MeetingPath(date)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: meeting log for %s", ErrNotFound, date)
		}
		return "", fmt.Errorf("journal: read %s: %w", path, err)
	}
	return string(data), nil
}

// WriteMeetingLog creates or overwrites the log for a meeting date. The
// participants render as a bullet list under a Participants heading, the
// notes under a Notes heading.
func (j *Journal) WriteMeetingLog(date string, participants []string, content string) error {
	if err := validateDate(date); err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "# Meeting Log: %s\n\n", date)
	b.WriteString("## Participants\n")
	for _, p := range participants {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	fmt.Fprintf(&b, "\n## Notes\n%s\n", content)

	path := j.paths.MeetingPath(date)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("journal: write %s: %w", path, err)
	}
	return nil
}

// ReadTeamProfile returns the profile for a crew member. A missing or empty
// profile yields placeholder content rather than an error so callers always
// have something to present.
func (j *Journal) ReadTeamProfile(memberName string) (string, error) {
	if strings.TrimSpace(memberName) == "" {
		return "", fmt.Errorf("%w: member name is required", ErrValidation)
	}
	path := j.paths.ProfilePath(memberName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultProfile(memberName), nil
		}
		return "", fmt.Errorf("journal: read %s: %w", path, err)
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return defaultProfile(memberName), nil
	}
	return content, nil
}

// WriteTeamProfile overwrites a crew member's profile with content.
func (j *Journal) WriteTeamProfile(memberName, content string) error {
	if strings.TrimSpace(memberName) == "" {
		return fmt.Errorf("%w: member name is required", ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: profile content is required", ErrValidation)
	}
	path := j.paths.ProfilePath(memberName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("journal: write %s: %w", path, err)
	}
	return nil
}

// ReadPartnershipDocument returns the agreement or companion document text.
func (j *Journal) ReadPartnershipDocument(doc PartnershipDoc) (string, error) {
	var path string
	switch doc {
	case PartnershipAgreement:
		path = j.paths.PartnershipAgreementPath()
	case PartnershipCompanion:
		path = j.paths.PartnershipCompanionPath()
	default:
		return "", fmt.Errorf("%w: document type must be %q or %q", ErrValidation, PartnershipAgreement, PartnershipCompanion)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: partnership %s", ErrNotFound, doc)
		}
		return "", fmt.Errorf("journal: read %s: %w", path, err)
	}
	return string(data), nil
}

func validateDate(date string) error {
	if _, err := time.Parse(meetingDateLayout, date); err != nil {
		return fmt.Errorf("%w: meeting date %q must be YYYY-MM-DD", ErrValidation, date)
	}
	return nil
}

func defaultProfile(memberName string) string {
	return fmt.Sprintf("# Profile: %s\n\n(No details added yet.)", memberName)
}
