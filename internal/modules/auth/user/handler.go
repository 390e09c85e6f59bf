package user

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	"github.com/terravita/core/internal/pkg/pagination"
	"github.com/terravita/core/internal/pkg/response"
)

// Handler handles account-administration HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts user routes. Everything requires authentication;
// listing, creation and role changes additionally require admin.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	ug := rg.Group("/users", authMW)

	ug.GET("/me", h.me)
	ug.PATCH("/me", h.updateProfile)

	admin := ug.Group("", adminMW)
	admin.GET("", h.list)
	admin.GET("/:id", h.get)
	admin.POST("", h.create)
	admin.PATCH("/:id/role", h.updateRole)
}

// me GET /users/me
func (h *Handler) me(c *gin.Context) {
	u, err := h.svc.GetByID(middleware.CurrentUserID(c))
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.Unauthorized(c)
		return
	}
	response.OK(c, u)
}

// updateProfile PATCH /users/me
func (h *Handler) updateProfile(c *gin.Context) {
	var dto UpdateProfileDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateProfile(middleware.CurrentUserID(c), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, u)
}

// list GET /users
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c, 20)
	users, pag, err := h.svc.List(q)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, users, pag)
}

// get GET /users/:id
func (h *Handler) get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.svc.GetByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if u == nil {
		response.NotFound(c, "")
		return
	}
	response.OK(c, u)
}

// create POST /users
func (h *Handler) create(c *gin.Context) {
	var dto CreateUserDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Create(c.Request.Context(), &dto)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.Created(c, u)
}

// updateRole PATCH /users/:id/role
func (h *Handler) updateRole(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var dto UpdateRoleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.UpdateRole(c.Request.Context(), middleware.CurrentUserID(c), id, dto.Role)
	if err != nil {
		h.mapError(c, err)
		return
	}
	response.OK(c, u)
}

func (h *Handler) mapError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, errSelfRoleChange):
		response.Forbidden(c, err.Error())
	case errors.Is(err, errInvalidRole):
		response.BadRequest(c, err.Error())
	case errors.Is(err, errUsernameTaken):
		response.Conflict(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}
