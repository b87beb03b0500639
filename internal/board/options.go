package board

import (
	"fmt"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// Filter selects which statuses the board shows.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterInProgress Filter = Filter(domain.StatusInProgress)
	FilterCompleted  Filter = Filter(domain.StatusCompleted)
)

// Filters lists the filter options in display order.
var Filters = []Filter{FilterAll, FilterInProgress, FilterCompleted}

func ParseFilter(s string) (Filter, error) {
	if s == "" {
		return FilterAll, nil
	}
	for _, f := range Filters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want all, in_progress or completed)", s)
}

func (f Filter) status() domain.Status {
	if f == FilterAll {
		return ""
	}
	return domain.Status(f)
}

// SortOption is a field-direction pair such as "due_date-asc".
type SortOption string

const (
	SortTitleAsc    SortOption = "title-asc"
	SortTitleDesc   SortOption = "title-desc"
	SortDueDateAsc  SortOption = "due_date-asc"
	SortDueDateDesc SortOption = "due_date-desc"
)

// SortOptions lists the sort options in display order.
var SortOptions = []SortOption{SortTitleAsc, SortTitleDesc, SortDueDateAsc, SortDueDateDesc}

func ParseSort(s string) (SortOption, error) {
	if s == "" {
		return SortTitleAsc, nil
	}
	for _, o := range SortOptions {
		if string(o) == s {
			return o, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q (want title-asc, title-desc, due_date-asc or due_date-desc)", s)
}

// Split returns the field and direction carried by the option.
func (o SortOption) Split() (domain.SortField, domain.SortOrder) {
	switch o {
	case SortTitleDesc:
		return domain.SortByTitle, domain.OrderDesc
	case SortDueDateAsc:
		return domain.SortByDueDate, domain.OrderAsc
	case SortDueDateDesc:
		return domain.SortByDueDate, domain.OrderDesc
	default:
		return domain.SortByTitle, domain.OrderAsc
	}
}

// Label is the human readable form shown in the terminal UI.
func (o SortOption) Label() string {
	switch o {
	case SortTitleDesc:
		return "Title (Z-A)"
	case SortDueDateAsc:
		return "Due date (earliest)"
	case SortDueDateDesc:
		return "Due date (latest)"
	default:
		return "Title (A-Z)"
	}
}

func (f Filter) Label() string {
	switch f {
	case FilterInProgress:
		return "In progress"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}

func query(f Filter, o SortOption) domain.ListQuery {
	field, order := o.Split()
	return domain.ListQuery{Status: f.status(), Sort: field, Order: order}
}
