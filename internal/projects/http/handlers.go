package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/api/http/validation"
	"github.com/GoSim-25-26J-441/project-tracker/internal/auth"
	"github.com/GoSim-25-26J-441/project-tracker/internal/logging"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	q := domain.NewListQuery(c.Query("status"), c.Query("sort"), c.Query("order"))

	items, err := h.svc.List(c.Request.Context(), auth.UserID(c), q)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) show(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), auth.UserID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := h.validate.Bind(c, &req); err != nil {
		validation.Respond(c, err)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), auth.UserID(c), req.toNewProject())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *Handler) update(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	var req updateReq
	if err := h.validate.Bind(c, &req); err != nil {
		validation.Respond(c, err)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), auth.UserID(c), id, req.toPatch())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), auth.UserID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// projectID parses the :id path parameter. Non-numeric ids are reported as
// missing projects.
func projectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		notFound(c)
		return 0, false
	}
	return id, true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Project not found"})
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		notFound(c)
	case errors.Is(err, domain.ErrTitleRequired):
		fieldError(c, "title", "The title field is required.")
	case errors.Is(err, domain.ErrTitleTooLong):
		fieldError(c, "title", "The title field must not be greater than 255 characters.")
	case errors.Is(err, domain.ErrInvalidStatus):
		fieldError(c, "status", "The selected status is invalid.")
	default:
		fields := append(logging.ContextFields(c.Request.Context()),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		h.log.Error("project request failed", fields...)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
	}
}

func fieldError(c *gin.Context, field, msg string) {
	errs := &validation.Errors{}
	errs.Add(field, msg)
	validation.Respond(c, errs)
}
