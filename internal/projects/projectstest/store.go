// Package projectstest provides an in-memory project store for tests.
package projectstest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// Store is a concurrency-safe in-memory implementation of service.Store.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]domain.Project

	// Now is used for created_at and updated_at. Defaults to time.Now.
	Now func() time.Time
	// Err, when set, is returned by every operation.
	Err error
}

func NewStore() *Store {
	return &Store{items: make(map[int64]domain.Project)}
}

func (s *Store) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Seed inserts p as-is, assigning an id when p.ID is zero.
func (s *Store) Seed(p domain.Project) domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		s.nextID++
		p.ID = s.nextID
	} else if p.ID > s.nextID {
		s.nextID = p.ID
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = s.now()
		p.UpdatedAt = p.CreatedAt
	}
	s.items[p.ID] = p
	return p
}

// All returns every stored project regardless of owner, ordered by id.
func (s *Store) All() []domain.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Project, 0, len(s.items))
	for _, p := range s.items {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Project) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

func (s *Store) List(_ context.Context, userID int64, q domain.ListQuery) ([]domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	owned := make([]domain.Project, 0, len(s.items))
	for _, p := range s.items {
		if p.UserID == userID {
			owned = append(owned, p)
		}
	}
	return q.Apply(owned), nil
}

func (s *Store) Get(_ context.Context, userID, id int64) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.items[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (s *Store) Create(_ context.Context, userID int64, in domain.NewProject) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	s.nextID++
	now := s.now()
	p := domain.Project{
		ID:          s.nextID,
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.items[p.ID] = p
	return &p, nil
}

func (s *Store) Update(_ context.Context, userID, id int64, patch domain.Patch) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.items[id]
	if !ok || p.UserID != userID {
		return nil, domain.ErrNotFound
	}
	if !patch.IsEmpty() {
		patch.ApplyTo(&p)
		p.UpdatedAt = s.now()
		s.items[id] = p
	}
	return &p, nil
}

func (s *Store) Delete(_ context.Context, userID, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	p, ok := s.items[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}
