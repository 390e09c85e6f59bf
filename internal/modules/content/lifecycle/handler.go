package lifecycle

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/response"
)

// Handler exposes the draft/publish/lock operations over HTTP. The routes
// are identical for every content kind, so the kind packages mount this
// handler inside their authenticated group instead of repeating it.
type Handler[T any, PT interface {
	*T
	Content
}] struct {
	svc *Service[T, PT]
}

// NewHandler wraps a lifecycle service for HTTP.
func NewHandler[T any, PT interface {
	*T
	Content
}](svc *Service[T, PT]) *Handler[T, PT] {
	return &Handler[T, PT]{svc: svc}
}

// RegisterEditorial mounts the draft, publish and lock routes onto an
// already-authenticated router group.
func (h *Handler[T, PT]) RegisterEditorial(rg *gin.RouterGroup) {
	rg.PATCH("/:id/draft", h.createDraft)
	rg.DELETE("/:id/draft", h.discardDraft)
	rg.POST("/:id/publish", h.publish)
	rg.POST("/:id/lock", h.acquireLock)
	rg.POST("/:id/lock/renew", h.renewLock)
	rg.DELETE("/:id/lock", h.releaseLock)
}

// createDraft PATCH /:id/draft
// The body is a partial field map; keys explicitly set to null are kept in
// the overlay, so the bind goes through a plain map, never a typed DTO.
func (h *Handler[T, PT]) createDraft(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	var patch map[string]interface{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rec, err := h.svc.CreateDraft(id, patch)
	if err != nil {
		MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// discardDraft DELETE /:id/draft
func (h *Handler[T, PT]) discardDraft(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.DiscardDraft(id)
	if err != nil {
		MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// publish POST /:id/publish
func (h *Handler[T, PT]) publish(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.Publish(id)
	if err != nil {
		MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// acquireLock POST /:id/lock
func (h *Handler[T, PT]) acquireLock(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.AcquireLock(id, middleware.CurrentUserID(c))
	if err != nil {
		MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// renewLock POST /:id/lock/renew
func (h *Handler[T, PT]) renewLock(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.RenewLock(id, middleware.CurrentUserID(c))
	if err != nil {
		MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// releaseLock DELETE /:id/lock
// Admins may clear any lock to recover a stuck record.
func (h *Handler[T, PT]) releaseLock(c *gin.Context) {
	id, ok := ParseIDParam(c)
	if !ok {
		return
	}
	override := middleware.CurrentRole(c) == models.RoleAdmin
	if err := h.svc.ReleaseLock(id, middleware.CurrentUserID(c), override); err != nil {
		MapError(c, err)
		return
	}
	response.NoContent(c)
}

// MapError translates lifecycle errors to HTTP responses.
func MapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.NotFound(c, "")
	case errors.Is(err, ErrNothingToPublish):
		response.UnprocessableEntity(c, err.Error())
	case errors.Is(err, ErrLockConflict), errors.Is(err, ErrVersionConflict), errors.Is(err, ErrSlugTaken):
		response.Conflict(c, err.Error())
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// ParseIDParam reads the :id route parameter, responding 400 on garbage.
func ParseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
