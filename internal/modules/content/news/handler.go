package news

import (
	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/middleware"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"github.com/terravita/core/internal/pkg/pagination"
	"github.com/terravita/core/internal/pkg/response"
)

// Handler handles news HTTP requests.
type Handler struct {
	svc       *Service
	editorial *lifecycle.Handler[models.NewsModel, *models.NewsModel]
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:       svc,
		editorial: lifecycle.NewHandler(svc.Service),
	}
}

// RegisterRoutes mounts news routes onto the given router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW ...gin.HandlerFunc) {
	nw := rg.Group("/news")

	nw.GET("", h.list)
	nw.GET("/id/:id", h.getByID)
	nw.GET("/:slug", h.getBySlug)

	authed := nw.Group("", authMW...)
	authed.GET("/admin/list", h.adminList)
	authed.GET("/admin/:id", h.adminGet)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	h.editorial.RegisterEditorial(authed)
}

// list GET /news
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c, h.svc.Schema().DefaultPageSize)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	published := models.StatusPublished
	records, pag, err := h.svc.List(q, lifecycle.Filters{
		Search:  lq.Search,
		Status:  &published,
		Facets:  map[string]string{"category": lq.Category},
		SortBy:  lq.SortBy,
		SortDir: lq.SortDir,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]publicNewsItem, len(records))
	for i := range records {
		items[i] = toPublicItem(&records[i])
	}
	response.Paged(c, items, pag)
}

// getBySlug GET /news/:slug
func (h *Handler) getBySlug(c *gin.Context) {
	rec, err := h.svc.FindBySlug(c.Param("slug"), true)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if rec == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, toPublicDetail(rec, h.authorName(rec)))
}

// getByID GET /news/id/:id
func (h *Handler) getByID(c *gin.Context) {
	id, ok := lifecycle.ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.FindPublishedByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if rec == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, toPublicDetail(rec, h.authorName(rec)))
}

// adminList GET /news/admin/list
func (h *Handler) adminList(c *gin.Context) {
	q := pagination.FromContext(c, h.svc.Schema().DefaultPageSize)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f := lifecycle.Filters{
		Search:  lq.Search,
		Facets:  map[string]string{"category": lq.Category},
		SortBy:  lq.SortBy,
		SortDir: lq.SortDir,
	}
	if st := models.ContentStatus(lq.Status); st.Valid() {
		f.Status = &st
	}

	records, pag, err := h.svc.List(q, f)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	response.Paged(c, records, pag)
}

// adminGet GET /news/admin/:id
func (h *Handler) adminGet(c *gin.Context) {
	id, ok := lifecycle.ParseIDParam(c)
	if !ok {
		return
	}
	rec, err := h.svc.FindByID(id)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	if rec == nil {
		response.NotFound(c, "")
		return
	}
	response.OK(c, rec)
}

// create POST /news
func (h *Handler) create(c *gin.Context) {
	var dto CreateNewsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rec, err := h.svc.Create(&dto, middleware.CurrentUserID(c))
	if err != nil {
		lifecycle.MapError(c, err)
		return
	}
	response.Created(c, rec)
}

// update PUT/PATCH /news/:id
func (h *Handler) update(c *gin.Context) {
	id, ok := lifecycle.ParseIDParam(c)
	if !ok {
		return
	}
	var dto UpdateNewsDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rec, err := h.svc.Update(id, &dto)
	if err != nil {
		lifecycle.MapError(c, err)
		return
	}
	response.OK(c, rec)
}

// delete DELETE /news/:id
func (h *Handler) delete(c *gin.Context) {
	id, ok := lifecycle.ParseIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(id); err != nil {
		lifecycle.MapError(c, err)
		return
	}
	response.NoContent(c)
}

// authorName resolves the display name of the article author; best effort,
// an empty string when unknown.
func (h *Handler) authorName(rec *models.NewsModel) string {
	if rec.AuthorID == nil {
		return ""
	}
	var user models.UserModel
	if err := h.svc.DB().Select("name", "username").First(&user, "id = ?", *rec.AuthorID).Error; err != nil {
		return ""
	}
	if user.Name != "" {
		return user.Name
	}
	return user.Username
}
