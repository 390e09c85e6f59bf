package species

import (
	"github.com/gin-gonic/gin"
	"github.com/terravita/core/internal/models"
	"github.com/terravita/core/internal/modules/content/lifecycle"
	"github.com/terravita/core/internal/pkg/pagination"
	"github.com/terravita/core/internal/pkg/response"
)

// Handler handles species HTTP requests.
type Handler struct {
	svc       *Service
	editorial *lifecycle.Handler[models.SpeciesModel, *models.SpeciesModel]
}

func NewHandler(svc *Service) *Handler {
	return &Handler{
		svc:       svc,
		editorial: lifecycle.NewHandler(svc.Service),
	}
}

// RegisterRoutes mounts species routes onto the given router group. The
// public surface serves published records only; everything under authMW is
// the editorial surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW ...gin.HandlerFunc) {
	sp := rg.Group("/species")

	sp.GET("", h.list)
	sp.GET("/id/:id", h.getByID)
	sp.GET("/:slug", h.getBySlug)

	authed := sp.Group("", authMW...)
	authed.GET("/admin/list", h.adminList)
	authed.GET("/admin/:id", h.adminGet)
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.PATCH("/:id", h.update)
	authed.DELETE("/:id", h.delete)
	h.editorial.RegisterEditorial(authed)
}

// list GET /species
func (h *Handler) list(c *gin.Context) {
	q := pagination.FromContext(c, h.svc.Schema().DefaultPageSize)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	published := models.StatusPublished
	records, pag, err := h.svc.List(q, lifecycle.Filters{
		Search: lq.Search,
		Status: &published,
		Facets: map[string]string{
			"category":           lq.Category,
			"conservationStatus": lq.ConservationStatus,
			"region":             lq.Region,
		},
		SortBy:  lq.SortBy,
		SortDir: lq.SortDir,
	})
	if err != nil {
		response.InternalError(c, err)
		return
	}

	items := make([]publicSpeciesItem, len(records))
	for i := range records {
		items[i] = toPublicItem(&records[i])
	}
	response.Paged(c, items, pag)
}

// getBySlug GET /species/:slug
// Unresolved or unpublished slugs answer with JSON null, not an error.
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
	response.OK(c, toPublicDetail(rec))
}

// getByID GET /species/id/:id
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
	response.OK(c, toPublicDetail(rec))
}

// adminList GET /species/admin/list
// The editorial listing: no forced status filter, full records including
// draft state.
func (h *Handler) adminList(c *gin.Context) {
	q := pagination.FromContext(c, h.svc.Schema().DefaultPageSize)

	var lq ListQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	f := lifecycle.Filters{
		Search: lq.Search,
		Facets: map[string]string{
			"category":           lq.Category,
			"conservationStatus": lq.ConservationStatus,
			"region":             lq.Region,
		},
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

// adminGet GET /species/admin/:id
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

// create POST /species
func (h *Handler) create(c *gin.Context) {
	var dto CreateSpeciesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rec, err := h.svc.Create(&dto)
	if err != nil {
		lifecycle.MapError(c, err)
		return
	}
	response.Created(c, rec)
}

// update PUT/PATCH /species/:id
func (h *Handler) update(c *gin.Context) {
	id, ok := lifecycle.ParseIDParam(c)
	if !ok {
		return
	}
	var dto UpdateSpeciesDTO
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

// delete DELETE /species/:id
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
