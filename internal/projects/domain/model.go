package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the progress state of a project.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

// DefaultStatus is assigned when a project is created without a status.
const DefaultStatus = StatusInProgress

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusInProgress || s == StatusCompleted
}

// DateLayout is the wire and storage format of due dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.
type Date struct {
	time.Time
}

// NewDate returns the date y-m-d in UTC.
func NewDate(y int, m time.Month, d int) Date {
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func (d Date) String() string {
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	// The server always writes YYYY-MM-DD; accept full timestamps from older payloads.
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", s, err)
		}
		*d = DateOf(t)
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Project is a tracked unit of work owned by a single user.
type Project struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *Date     `json:"due_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewProject holds the fields accepted on create.
type NewProject struct {
	Title       string
	Description *string
	DueDate     *Date
	Status      Status
}

// Patch is a partial update. Nil fields are left unchanged.
// An empty Description or a zero DueDate clears the stored value.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *Date
	Status      *Status
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Status == nil
}

// ApplyTo writes the patch onto project in place.
func (p Patch) ApplyTo(project *Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Description != nil {
		if *p.Description == "" {
			project.Description = nil
		} else {
			desc := *p.Description
			project.Description = &desc
		}
	}
	if p.DueDate != nil {
		if p.DueDate.IsZero() {
			project.DueDate = nil
		} else {
			due := *p.DueDate
			project.DueDate = &due
		}
	}
	if p.Status != nil {
		project.Status = *p.Status
	}
}
