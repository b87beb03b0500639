// Package board holds the client-side list state: fetched projects, the
// selected filter and sort, and per-record operations in flight.
package board

import (
	"context"
	"errors"
	"sync"

	"github.com/GoSim-25-26J-441/project-tracker/internal/client"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

var (
	ErrDeleteInFlight    = errors.New("delete already in progress")
	ErrDeleteUnconfirmed = errors.New("delete was not confirmed")
	ErrUpdateInFlight    = errors.New("update already in progress")
)

// Backend is the subset of the API client the board drives.
type Backend interface {
	ListProjects(ctx context.Context, opts client.ListOptions) ([]client.Project, error)
	CreateProject(ctx context.Context, in client.NewProject) (*client.Project, error)
	UpdateProject(ctx context.Context, id int64, patch client.ProjectPatch) (*client.Project, error)
	DeleteProject(ctx context.Context, id int64) error
}

// Board is safe for concurrent use.
type Board struct {
	backend Backend

	mu       sync.Mutex
	items    []domain.Project
	filter   Filter
	sort     SortOption
	loading  bool
	err      error
	gen      uint64
	pending  map[int64]bool
	deleting map[int64]bool
	updating map[int64]bool
}

func New(backend Backend) *Board {
	return &Board{
		backend:  backend,
		filter:   FilterAll,
		sort:     SortTitleAsc,
		pending:  make(map[int64]bool),
		deleting: make(map[int64]bool),
		updating: make(map[int64]bool),
	}
}

// Load fetches the list for the current filter and sort. A response that
// arrives after a newer Load started is discarded.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.gen++
	gen := b.gen
	b.loading = true
	field, order := b.sort.Split()
	opts := client.ListOptions{Status: string(b.filter), Sort: field, Order: order}
	b.mu.Unlock()

	items, err := b.backend.ListProjects(ctx, opts)

	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen {
		return err
	}
	b.loading = false
	b.err = err
	if err == nil {
		b.items = items
	}
	return err
}

// SetFilter changes the status filter and reloads.
func (b *Board) SetFilter(ctx context.Context, f Filter) error {
	if _, err := ParseFilter(string(f)); err != nil {
		return err
	}
	b.mu.Lock()
	b.filter = f
	b.mu.Unlock()
	return b.Load(ctx)
}

// SetSort changes the sort option and reloads.
func (b *Board) SetSort(ctx context.Context, o SortOption) error {
	if _, err := ParseSort(string(o)); err != nil {
		return err
	}
	b.mu.Lock()
	b.sort = o
	b.mu.Unlock()
	return b.Load(ctx)
}

func (b *Board) Filter() Filter {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

func (b *Board) Sort() SortOption {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sort
}

func (b *Board) Loading() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.loading
}

// Err returns the error of the last completed fetch.
func (b *Board) Err() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.err
}

// Projects returns the visible list derived from the fetched records and
// the current filter and sort.
func (b *Board) Projects() []domain.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return query(b.filter, b.sort).Apply(b.items)
}

// Create submits the form and reloads on success.
func (b *Board) Create(ctx context.Context, f Form) (*domain.Project, error) {
	in, err := f.NewProject()
	if err != nil {
		return nil, err
	}
	p, err := b.backend.CreateProject(ctx, in)
	if err != nil {
		return nil, err
	}
	return p, b.Load(ctx)
}

// Update sends patch for id and reloads on success.
func (b *Board) Update(ctx context.Context, id int64, patch client.ProjectPatch) (*domain.Project, error) {
	b.mu.Lock()
	if b.updating[id] {
		b.mu.Unlock()
		return nil, ErrUpdateInFlight
	}
	b.updating[id] = true
	b.mu.Unlock()

	p, err := b.backend.UpdateProject(ctx, id, patch)

	b.mu.Lock()
	delete(b.updating, id)
	b.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return p, b.Load(ctx)
}

func (b *Board) Updating(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.updating[id]
}

// RequestDelete marks id as awaiting confirmation.
func (b *Board) RequestDelete(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[id] = true
}

// CancelDelete drops a pending confirmation.
func (b *Board) CancelDelete(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.pending, id)
}

// PendingDelete reports whether id awaits confirmation.
func (b *Board) PendingDelete(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pending[id]
}

// ConfirmDelete deletes a record previously passed to RequestDelete and
// reloads on success.
func (b *Board) ConfirmDelete(ctx context.Context, id int64) error {
	b.mu.Lock()
	if b.deleting[id] {
		b.mu.Unlock()
		return ErrDeleteInFlight
	}
	if !b.pending[id] {
		b.mu.Unlock()
		return ErrDeleteUnconfirmed
	}
	delete(b.pending, id)
	b.deleting[id] = true
	b.mu.Unlock()

	err := b.backend.DeleteProject(ctx, id)

	b.mu.Lock()
	delete(b.deleting, id)
	b.mu.Unlock()

	if err != nil {
		return err
	}
	return b.Load(ctx)
}

func (b *Board) Deleting(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.deleting[id]
}
