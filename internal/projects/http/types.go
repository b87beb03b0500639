package http

import (
	"strings"

	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/service"
)

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc      *service.ProjectService
	validate *validation.Validator
	log      *zap.Logger
}

func New(svc *service.ProjectService, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		svc:      svc,
		validate: validation.New(),
		log:      log,
	}
}

type createReq struct {
	Title       string  `json:"title" validate:"required,notblank,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitnil,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitnil,oneof=in_progress completed"`
}

// Normalize trims the title and treats an empty due_date or status as absent.
func (r *createReq) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.DueDate = nilIfEmpty(r.DueDate)
	r.Status = nilIfEmpty(r.Status)
}

func (r createReq) toNewProject() domain.NewProject {
	in := domain.NewProject{
		Title:       r.Title,
		Description: r.Description,
	}
	if r.DueDate != nil {
		// format already checked by the validator
		if d, err := domain.ParseDate(*r.DueDate); err == nil {
			in.DueDate = &d
		}
	}
	if r.Status != nil {
		in.Status = domain.Status(*r.Status)
	}
	return in
}

// updateReq fields are all optional. An empty description or due_date clears it.
type updateReq struct {
	Title       *string `json:"title" validate:"omitnil,notblank,max=255"`
	Description *string `json:"description"`
	DueDate     *string `json:"due_date" validate:"omitnil,datetime=2006-01-02"`
	Status      *string `json:"status" validate:"omitnil,oneof=in_progress completed"`

	clearDue bool
}

// Normalize trims the title and turns an empty due_date into a clear.
func (r *updateReq) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if r.DueDate != nil && *r.DueDate == "" {
		r.DueDate = nil
		r.clearDue = true
	}
}

func (r updateReq) toPatch() domain.Patch {
	patch := domain.Patch{
		Title:       r.Title,
		Description: r.Description,
	}
	switch {
	case r.clearDue:
		patch.DueDate = &domain.Date{}
	case r.DueDate != nil:
		if d, err := domain.ParseDate(*r.DueDate); err == nil {
			patch.DueDate = &d
		}
	}
	if r.Status != nil {
		status := domain.Status(*r.Status)
		patch.Status = &status
	}
	return patch
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
