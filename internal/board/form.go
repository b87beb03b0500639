package board

import (
	"errors"
	"strings"

	"github.com/GoSim-25-26J-441/project-tracker/internal/client"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

var ErrInvalidDueDate = errors.New("due date must be a valid date (YYYY-MM-DD)")

// Form holds the editable fields of a project as the user typed them.
type Form struct {
	Title       string
	Description string
	DueDate     string
	Status      domain.Status
}

// NewForm returns an empty form with the default status.
func NewForm() Form {
	return Form{Status: domain.DefaultStatus}
}

// Reset clears the form after a successful create.
func (f *Form) Reset() {
	*f = NewForm()
}

// FromProject pre-fills a form for editing p.
func FromProject(p domain.Project) Form {
	f := Form{Title: p.Title, Status: p.Status}
	if p.Description != nil {
		f.Description = *p.Description
	}
	if p.DueDate != nil {
		f.DueDate = p.DueDate.String()
	}
	if f.Status == "" {
		f.Status = domain.DefaultStatus
	}
	return f
}

// ToggleStatus flips between in progress and completed.
func (f *Form) ToggleStatus() {
	if f.Status == domain.StatusCompleted {
		f.Status = domain.StatusInProgress
		return
	}
	f.Status = domain.StatusCompleted
}

// NewProject converts the form into a create request. Blank optional
// fields are left out; the title is sent as typed so the server reports
// an empty one.
func (f Form) NewProject() (client.NewProject, error) {
	in := client.NewProject{Title: strings.TrimSpace(f.Title), Status: f.Status}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		in.Description = &desc
	}
	if due := strings.TrimSpace(f.DueDate); due != "" {
		d, err := domain.ParseDate(due)
		if err != nil {
			return client.NewProject{}, ErrInvalidDueDate
		}
		in.DueDate = &d
	}
	return in, nil
}

// Patch converts the form into an update sending every field. Empty
// description and due date clear the stored values.
func (f Form) Patch() client.ProjectPatch {
	title := strings.TrimSpace(f.Title)
	desc := strings.TrimSpace(f.Description)
	due := strings.TrimSpace(f.DueDate)
	status := f.Status
	return client.ProjectPatch{
		Title:       &title,
		Description: &desc,
		DueDate:     &due,
		Status:      &status,
	}
}
