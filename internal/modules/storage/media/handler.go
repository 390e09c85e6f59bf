package media

import (
	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/pkg/response"
)

// uploads are capped well below gin's default multipart memory ceiling
const maxUploadBytes = 20 << 20

// Handler handles media upload HTTP requests.
type Handler struct{ svc *Service }

func NewHandler(svc *Service) *Handler { return &Handler{svc: svc} }

// RegisterRoutes mounts media routes for authenticated editors.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	mg := rg.Group("/media", authMW)
	mg.POST("/upload", h.upload)
}

// upload POST /media/upload
func (h *Handler) upload(c *gin.Context) {
	if middleware.CurrentRole(c) == models.RoleUser {
		response.Forbidden(c, "")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "missing file field")
		return
	}
	if file.Size > maxUploadBytes {
		response.BadRequest(c, "file too large")
		return
	}

	src, err := file.Open()
	if err != nil {
		response.InternalError(c, err)
		return
	}
	defer src.Close()

	url, err := h.svc.Upload(c.Request.Context(), file.Filename,
		file.Header.Get("Content-Type"), src, file.Size)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.OK(c, gin.H{"url": url})
}
