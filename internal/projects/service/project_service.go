package service

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// Store persists projects scoped to their owner.
type Store interface {
	List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Project, error)
	Get(ctx context.Context, userID, id int64) (*domain.Project, error)
	Create(ctx context.Context, userID int64, in domain.NewProject) (*domain.Project, error)
	Update(ctx context.Context, userID, id int64, patch domain.Patch) (*domain.Project, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store Store
}

// NewProjectService creates a new project service
func NewProjectService(store Store) *ProjectService {
	return &ProjectService{store: store}
}

// List returns the user's projects filtered and sorted by q
func (s *ProjectService) List(ctx context.Context, userID int64, q domain.ListQuery) ([]domain.Project, error) {
	return s.store.List(ctx, userID, q.Normalize())
}

// Get returns a single project owned by the user
func (s *ProjectService) Get(ctx context.Context, userID, id int64) (*domain.Project, error) {
	return s.store.Get(ctx, userID, id)
}

// Create creates a new project, defaulting its status to in_progress
func (s *ProjectService) Create(ctx context.Context, userID int64, in domain.NewProject) (*domain.Project, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := checkTitle(in.Title); err != nil {
		return nil, err
	}

	if in.Status == "" {
		in.Status = domain.DefaultStatus
	}
	if !in.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	in.Description = nullIfBlank(in.Description)
	return s.store.Create(ctx, userID, in)
}

// Update applies a partial update. Fields absent from the patch are kept.
func (s *ProjectService) Update(ctx context.Context, userID, id int64, patch domain.Patch) (*domain.Project, error) {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if err := checkTitle(title); err != nil {
			return nil, err
		}
		patch.Title = &title
	}
	if patch.Status != nil && !patch.Status.Valid() {
		return nil, domain.ErrInvalidStatus
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}

	return s.store.Update(ctx, userID, id, patch)
}

// Delete permanently removes a project
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	ok, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

func checkTitle(title string) error {
	if title == "" {
		return domain.ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return domain.ErrTitleTooLong
	}
	return nil
}

func nullIfBlank(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
