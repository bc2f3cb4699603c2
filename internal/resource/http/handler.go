package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/dev-resources-backend/internal/auth"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/request"
	"github.com/nekogravitycat/dev-resources-backend/internal/pkg/response"
	"github.com/nekogravitycat/dev-resources-backend/internal/resource"
)

// SessionHeader carries the browse session id.
const SessionHeader = "X-Session-ID"

type Handler struct {
	service resource.Service
}

func NewHandler(service resource.Service) *Handler {
	return &Handler{service: service}
}

func identity(c *gin.Context) resource.Identity {
	return resource.Identity{
		Authenticated: auth.IsAuthenticated(c),
		UserID:        auth.GetUserID(c),
	}
}

func sessionID(c *gin.Context) string {
	return strings.TrimSpace(c.GetHeader(SessionHeader))
}

// fail writes err, turning editor rejections into 422 field lists.
func fail(c *gin.Context, err error) {
	var verr *resource.ValidationError
	if errors.As(err, &verr) {
		response.Error(c, apperror.Validation(err, toFieldErrors(verr.Fields)))
		return
	}
	response.Error(c, err)
}

// === Catalog ===

func (h *Handler) List(c *gin.Context) {
	var req ListResourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	page, err := h.service.Browse(c.Request.Context(), req.Criteria(resource.SortNewest), req.Page, sessionID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPageResponse(page))
}

func (h *Handler) Facets(c *gin.Context) {
	c.JSON(http.StatusOK, NewFacetsResponse(h.service.Facets(c.Request.Context())))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.GetCatalogResource(c.Request.Context(), req.ID, sessionID(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
}

// === Browse sessions ===

func (h *Handler) StartSession(c *gin.Context) {
	view := h.service.StartSession(c.Request.Context())
	c.Header(SessionHeader, view.ID)
	c.JSON(http.StatusCreated, NewSessionResponse(view))
}

// requireSession aborts with 400 when the session header is absent.
func requireSession(c *gin.Context) (string, bool) {
	id := sessionID(c)
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing " + SessionHeader + " header"})
		return "", false
	}
	return id, true
}

func (h *Handler) writeSession(c *gin.Context, view resource.SessionView, err error) {
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, NewSessionResponse(view))
}

func (h *Handler) GetSession(c *gin.Context) {
	id, ok := requireSession(c)
	if !ok {
		return
	}
	view, err := h.service.ViewSession(c.Request.Context(), id)
	h.writeSession(c, view, err)
}

func (h *Handler) SetCriteria(c *gin.Context) {
	id, ok := requireSession(c)
	if !ok {
		return
	}

	var body CriteriaBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	view, err := h.service.SetSessionCriteria(c.Request.Context(), id, body.Criteria())
	h.writeSession(c, view, err)
}

func (h *Handler) SetPage(c *gin.Context) {
	id, ok := requireSession(c)
	if !ok {
		return
	}

	var body PageBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	view, err := h.service.SetSessionPage(c.Request.Context(), id, body.Page)
	h.writeSession(c, view, err)
}

func (h *Handler) NextPage(c *gin.Context) {
	id, ok := requireSession(c)
	if !ok {
		return
	}
	view, err := h.service.NextPage(c.Request.Context(), id)
	h.writeSession(c, view, err)
}

func (h *Handler) PrevPage(c *gin.Context) {
	id, ok := requireSession(c)
	if !ok {
		return
	}
	view, err := h.service.PrevPage(c.Request.Context(), id)
	h.writeSession(c, view, err)
}

func (h *Handler) ToggleUseful(c *gin.Context) {
	h.toggle(c, h.service.ToggleUseful)
}

func (h *Handler) ToggleFavorite(c *gin.Context) {
	h.toggle(c, h.service.ToggleFavorite)
}

type toggleFunc func(ctx context.Context, sessionID, resourceID string) (resource.Resource, resource.Mark, error)

func (h *Handler) toggle(c *gin.Context, flip toggleFunc) {
	id, ok := requireSession(c)
	if !ok {
		return
	}

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, mark, err := flip(c.Request.Context(), id, uri.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{
		Resource:     NewResponse(res),
		MarkResponse: MarkResponse{Useful: mark.Useful, Favorite: mark.Favorite},
	})
}

// === Owned resources ===

func (h *Handler) ListOwned(c *gin.Context) {
	var req ListResourcesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "invalid query parameters", err)
		return
	}

	// No sort given keeps insertion order.
	page, err := h.service.ListOwned(c.Request.Context(), identity(c), req.Criteria(""), req.Page)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, NewPageResponse(page))
}

func (h *Handler) GetOwned(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	res, err := h.service.GetOwned(c.Request.Context(), identity(c), req.ID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
}

func (h *Handler) CreateOwned(c *gin.Context) {
	var body ResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.service.CreateOwned(c.Request.Context(), identity(c), body.Form())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(res))
}

func (h *Handler) UpdateOwned(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	var body ResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	res, err := h.service.UpdateOwned(c.Request.Context(), identity(c), uri.ID, body.Form())
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(res))
}

func (h *Handler) DeleteOwned(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BadRequest(c, "invalid request", err)
		return
	}

	if err := h.service.DeleteOwned(c.Request.Context(), identity(c), req.ID); err != nil {
		fail(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ValidateOwned checks a form without saving it.
func (h *Handler) ValidateOwned(c *gin.Context) {
	var body ResourceBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, "invalid request body", err)
		return
	}

	fields := toFieldErrors(h.service.ValidateForm(body.Form()))
	c.JSON(http.StatusOK, ValidateResponse{Valid: len(fields) == 0, Fields: fields})
}
