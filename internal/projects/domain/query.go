package domain

import (
	"cmp"
	"slices"
	"strings"
)

// SortField is a column the project list can be ordered by.
type SortField string

const (
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "due_date"
	SortByCreatedAt SortField = "created_at"
)

// SortOrder is the direction of the primary sort.
type SortOrder string

const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

const (
	DefaultSortField = SortByTitle
	DefaultSortOrder = OrderAsc
)

// Valid reports whether f is on the sort allow-list.
func (f SortField) Valid() bool {
	switch f {
	case SortByTitle, SortByDueDate, SortByCreatedAt:
		return true
	}
	return false
}

// Valid reports whether o is asc or desc.
func (o SortOrder) Valid() bool {
	return o == OrderAsc || o == OrderDesc
}

// ListQuery selects and orders a user's projects.
// An empty Status means all statuses.
type ListQuery struct {
	Status Status
	Sort   SortField
	Order  SortOrder
}

// NewListQuery builds a query from raw request parameters. Unknown statuses
// disable filtering; unknown sort fields and orders fall back to title/asc.
func NewListQuery(status, sort, order string) ListQuery {
	q := ListQuery{
		Status: Status(strings.TrimSpace(status)),
		Sort:   SortField(strings.TrimSpace(sort)),
		Order:  SortOrder(strings.ToLower(strings.TrimSpace(order))),
	}
	if !q.Status.Valid() {
		q.Status = ""
	}
	if !q.Sort.Valid() {
		q.Sort = DefaultSortField
	}
	if !q.Order.Valid() {
		q.Order = DefaultSortOrder
	}
	return q
}

// Normalize replaces invalid fields with their defaults.
func (q ListQuery) Normalize() ListQuery {
	return NewListQuery(string(q.Status), string(q.Sort), string(q.Order))
}

// Matches reports whether p passes the status filter.
func (q ListQuery) Matches(p Project) bool {
	return q.Status == "" || p.Status == q.Status
}

// Compare orders a before b under the query's sort. Projects without a due
// date sort after dated ones ascending and before them descending. Titles
// compare case-insensitively first. Ties are broken by ascending id.
func (q ListQuery) Compare(a, b Project) int {
	var c int
	switch q.Sort {
	case SortByDueDate:
		switch {
		case a.DueDate == nil && b.DueDate == nil:
			c = 0
		case a.DueDate == nil:
			c = 1
		case b.DueDate == nil:
			c = -1
		default:
			c = a.DueDate.Compare(b.DueDate.Time)
		}
	case SortByCreatedAt:
		c = a.CreatedAt.Compare(b.CreatedAt)
	default:
		c = strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
		if c == 0 {
			c = strings.Compare(a.Title, b.Title)
		}
	}
	if q.Order == OrderDesc {
		c = -c
	}
	if c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Apply filters and sorts items into a new slice. items is not modified.
func (q ListQuery) Apply(items []Project) []Project {
	q = q.Normalize()
	out := make([]Project, 0, len(items))
	for _, p := range items {
		if q.Matches(p) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, q.Compare)
	return out
}
