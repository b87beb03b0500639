package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// Project is the record returned by the API.
type Project = domain.Project

// FilterAll disables the status filter.
const FilterAll = "all"

// ListOptions selects and orders projects. Zero values use server defaults.
type ListOptions struct {
	Status string
	Sort   domain.SortField
	Order  domain.SortOrder
}

func (o ListOptions) values() url.Values {
	v := url.Values{}
	if o.Status != "" && o.Status != FilterAll {
		v.Set("status", o.Status)
	}
	if o.Sort != "" {
		v.Set("sort", string(o.Sort))
	}
	if o.Order != "" {
		v.Set("order", string(o.Order))
	}
	return v
}

// NewProject is the body of a create request.
type NewProject struct {
	Title       string        `json:"title"`
	Description *string       `json:"description,omitempty"`
	DueDate     *domain.Date  `json:"due_date,omitempty"`
	Status      domain.Status `json:"status,omitempty"`
}

// ProjectPatch is the body of an update request. Nil fields are not sent.
// An empty Description or DueDate clears the stored value.
type ProjectPatch struct {
	Title       *string        `json:"title,omitempty"`
	Description *string        `json:"description,omitempty"`
	DueDate     *string        `json:"due_date,omitempty"`
	Status      *domain.Status `json:"status,omitempty"`
}

func projectPath(id int64) string {
	return "/api/projects/" + strconv.FormatInt(id, 10)
}

// ListProjects fetches the caller's projects.
func (c *Client) ListProjects(ctx context.Context, opts ListOptions) ([]Project, error) {
	var items []Project
	if err := c.do(ctx, http.MethodGet, "/api/projects", opts.values(), nil, &items, "Failed to fetch projects"); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Project{}
	}
	return items, nil
}

// GetProject fetches one project by id.
func (c *Client) GetProject(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodGet, projectPath(id), nil, nil, &p, "Failed to fetch project"); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProject creates a project and returns it with its id and timestamps.
func (c *Client) CreateProject(ctx context.Context, in NewProject) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodPost, "/api/projects", nil, in, &p, "Failed to create project"); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProject sends the non-nil fields of patch.
func (c *Client) UpdateProject(ctx context.Context, id int64, patch ProjectPatch) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodPut, projectPath(id), nil, patch, &p, "Failed to update project"); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeleteProject permanently deletes a project.
func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, projectPath(id), nil, nil, nil, "Failed to delete project")
}
