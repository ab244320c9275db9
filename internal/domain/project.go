package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{8,15}$`)
)

// ProjectDraft is the root entity of one wizard session. DraftID stays empty
// until the root has been created in the durable store; after that it never
// changes for the life of the session.
type ProjectDraft struct {
	DraftID string

	// Required to leave page 1.
	Name string
	Type ProjectType

	// Optional client identity.
	ClientName  string
	ClientEmail string
	ClientPhone string

	// Optional schedule. EndAt, when set, never precedes StartAt.
	StartAt        *time.Time
	StartConfirmed bool
	EndAt          *time.Time
	EndConfirmed   bool

	// PageCursor is the wizard page (1..3) the session resumes on.
	PageCursor int

	Template string

	Status    ProjectStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateRequired checks the fields that gate page 1 -> 2.
func (p *ProjectDraft) ValidateRequired() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("project name is required")
	}
	if p.Type == "" {
		return fmt.Errorf("project type is required")
	}
	if !ValidProjectTypes[string(p.Type)] {
		return fmt.Errorf("project type %q is not one of the accepted types", p.Type)
	}
	return nil
}

// RequiredFieldsSet reports whether the page-1 mandatory fields are populated.
func (p *ProjectDraft) RequiredFieldsSet() bool {
	return strings.TrimSpace(p.Name) != "" && p.Type != ""
}

// ValidateEmail accepts empty or a plausible address.
func ValidateEmail(s string) error {
	if s == "" {
		return nil
	}
	if !emailPattern.MatchString(s) {
		return fmt.Errorf("email %q is not a valid address", s)
	}
	return nil
}

// ValidatePhone accepts empty, or an optional leading + followed by 8-15
// digits. Spaces and dashes are tolerated and stripped before matching.
func ValidatePhone(s string) error {
	if s == "" {
		return nil
	}
	compact := strings.NewReplacer(" ", "", "-", "").Replace(s)
	if !phonePattern.MatchString(compact) {
		return fmt.Errorf("phone %q must be 8-15 digits with an optional leading +", s)
	}
	return nil
}
