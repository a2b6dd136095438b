package handler

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/uniak/teaching-backend/internal/repository"
	"github.com/uniak/teaching-backend/internal/response"
	"github.com/uniak/teaching-backend/internal/service"
	"github.com/uniak/teaching-backend/internal/validator"
)

// Service is the CRUD surface a Resource serves. T is the read model and In
// the write payload.
type Service[T any, In any] interface {
	List(ctx context.Context, q url.Values) ([]T, error)
	Get(ctx context.Context, id int64) (*T, error)
	Create(ctx context.Context, in *In) (*T, error)
	Update(ctx context.Context, id int64, in *In) (*T, error)
	Delete(ctx context.Context, id int64) error
}

// CRUD is the route surface of a Resource, independent of its types.
type CRUD interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Replace(c *gin.Context)
	Patch(c *gin.Context)
	Delete(c *gin.Context)
}

// Resource exposes one entity over HTTP.
type Resource[T any, In any] struct {
	name    string
	service Service[T, In]
	toInput func(*T) In
	log     zerolog.Logger
}

// NewResource creates a Resource. name is the singular display name used in
// messages ("Course"); toInput converts a stored row into its write payload
// so PATCH can merge a partial body over it.
func NewResource[T any, In any](name string, svc Service[T, In], toInput func(*T) In, log zerolog.Logger) *Resource[T, In] {
	return &Resource[T, In]{
		name:    name,
		service: svc,
		toInput: toInput,
		log:     log.With().Str("component", "handler").Str("resource", name).Logger(),
	}
}

// List godoc
// GET /api/v1/<collection>/
func (h *Resource[T, In]) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	if items == nil {
		items = []T{}
	}
	response.Success(c, http.StatusOK, items)
}

// Get godoc
// GET /api/v1/<collection>/:id/
func (h *Resource[T, In]) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Create godoc
// POST /api/v1/<collection>/add/
func (h *Resource[T, In]) Create(c *gin.Context) {
	var in In
	if fields := validator.Bind(c, &in); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.service.Create(c.Request.Context(), &in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusCreated, item)
}

// Replace godoc
// PUT /api/v1/<collection>/:id/update/
// Every writable field is taken from the body; omitted fields are reset.
func (h *Resource[T, In]) Replace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var in In
	if fields := validator.Bind(c, &in); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.update(c, id, &in)
}

// Patch godoc
// PATCH /api/v1/<collection>/:id/update/
// The body is merged over the stored values.
func (h *Resource[T, In]) Patch(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	current, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.log, err)
		return
	}

	in := h.toInput(current)
	var fields map[string]string
	if c.Request.ContentLength == 0 {
		fields = validator.Validate(&in)
	} else {
		fields = validator.Bind(c, &in)
	}
	if fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}
	h.update(c, id, &in)
}

func (h *Resource[T, In]) update(c *gin.Context, id int64, in *In) {
	item, err := h.service.Update(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

// Delete godoc
// DELETE /api/v1/<collection>/:id/delete/
func (h *Resource[T, In]) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		writeError(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": h.name + " deleted successfully"})
}

// parseID reads the :id path parameter, writing a 400 when it is not a
// positive integer.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}

// writeError maps service and repository errors onto the response envelope.
func writeError(c *gin.Context, log zerolog.Logger, err error) {
	var (
		ve  *service.ValidationError
		dup *repository.DuplicateError
		inv *repository.InvalidError
	)
	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
	case errors.Is(err, repository.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
	case errors.As(err, &dup):
		response.FailWithFields(c, http.StatusConflict, response.ErrConflict, map[string]string{
			dup.Field: "A record with this " + dup.Field + " already exists.",
		})
	case errors.As(err, &inv):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, map[string]string{
			inv.Field: "Invalid value.",
		})
	default:
		log.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
