package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modtok/internal/content/service"
	"modtok/internal/content/transport"
	"modtok/platform/httpkit"
	"modtok/platform/validator"
)

// Handler handles HTTP requests for editorial content.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid entry id"
)

// New creates a new content handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPublished lists published entries of one kind.
// GET /api/v1/content/:kind
func (h *Handler) ListPublished(c *gin.Context) {
	var req transport.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListEntries(c.Request.Context(), c.Param("kind"), req, true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPublishedBySlug retrieves a published entry with rendered HTML.
// GET /api/v1/content/:kind/:slug
func (h *Handler) GetPublishedBySlug(c *gin.Context) {
	result, err := h.svc.GetPublishedBySlug(c.Request.Context(), c.Param("kind"), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SubmitContact accepts a public contact form message.
// POST /api/v1/contact
func (h *Handler) SubmitContact(c *gin.Context) {
	var req transport.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SubmitContact(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// CreateEntry creates an entry.
// POST /api/v1/admin/content/:kind
func (h *Handler) CreateEntry(c *gin.Context) {
	var req transport.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateEntry(c.Request.Context(), c.Param("kind"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateEntry applies a partial update.
// PUT /api/v1/admin/content/:kind/:id
func (h *Handler) UpdateEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateEntry(c.Request.Context(), c.Param("kind"), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetEntryByID retrieves one entry regardless of status.
// GET /api/v1/admin/content/:kind/:id
func (h *Handler) GetEntryByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetEntryByID(c.Request.Context(), c.Param("kind"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListEntries lists entries of one kind for the admin panel.
// GET /api/v1/admin/content/:kind
func (h *Handler) ListEntries(c *gin.Context) {
	var req transport.ListEntriesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListEntries(c.Request.Context(), c.Param("kind"), req, false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteEntry removes an entry.
// DELETE /api/v1/admin/content/:kind/:id
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	err = h.svc.DeleteEntry(c.Request.Context(), c.Param("kind"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ListContactSubmissions lists stored contact messages.
// GET /api/v1/admin/contact-submissions
func (h *Handler) ListContactSubmissions(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))

	result, err := h.svc.ListContactSubmissions(c.Request.Context(), page, pageSize)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
