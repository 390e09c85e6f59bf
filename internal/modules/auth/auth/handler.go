package auth

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	"github.com/terravita/core/internal/pkg/response"
)

// Handler handles authentication HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts auth routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	ag := rg.Group("/auth")

	ag.POST("/login", h.login)
	ag.POST("/register", h.register)

	authed := ag.Group("", authMW)
	authed.POST("/logout", h.logout)
	authed.POST("/logout-all", h.logoutAll)
}

// login POST /auth/login
func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, user, err := h.svc.Login(dto.Username, dto.Password, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		if errors.Is(err, errUserNotFound) || errors.Is(err, errWrongPassword) {
			response.Unauthorized(c)
			return
		}
		response.InternalError(c, err)
		return
	}

	response.OK(c, gin.H{
		"token": token,
		"user":  user,
	})
}

// register POST /auth/register
// Only creates the very first (admin) account.
func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.svc.Register(&dto)
	if err != nil {
		if errors.Is(err, errAlreadyRegistered) {
			response.Forbidden(c, err.Error())
			return
		}
		response.InternalError(c, err)
		return
	}
	response.Created(c, user)
}

// logout POST /auth/logout
func (h *Handler) logout(c *gin.Context) {
	if err := h.svc.Logout(middleware.CurrentUserID(c), middleware.CurrentSessionID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}

// logoutAll POST /auth/logout-all
func (h *Handler) logoutAll(c *gin.Context) {
	if err := h.svc.LogoutAll(middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c, err)
		return
	}
	response.NoContent(c)
}
