package handler

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modtok/internal/catalog/service"
	"modtok/internal/catalog/transport"
	"modtok/platform/httpkit"
	"modtok/platform/validator"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid entity id"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// ListPublished lists published entities of one type.
// GET /api/v1/catalog/:entityType
func (h *Handler) ListPublished(c *gin.Context) {
	var req transport.ListEntitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListEntities(c.Request.Context(), c.Param("entityType"), req, true)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPublishedBySlug retrieves a published entity's public page data.
// GET /api/v1/catalog/:entityType/:slug
func (h *Handler) GetPublishedBySlug(c *gin.Context) {
	result, err := h.svc.GetPublishedEntityBySlug(c.Request.Context(), c.Param("entityType"), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPublicPageQR renders a QR code for a published entity's page.
// GET /api/v1/catalog/:entityType/:slug/qr
func (h *Handler) GetPublicPageQR(c *gin.Context) {
	png, err := h.svc.PublicPageQR(c.Request.Context(), c.Param("entityType"), c.Param("slug"))
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// CreateEntity creates an entity.
// POST /api/v1/admin/catalog/:entityType
func (h *Handler) CreateEntity(c *gin.Context) {
	var req transport.CreateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreateEntity(c.Request.Context(), c.Param("entityType"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdateEntity applies a partial update.
// PUT /api/v1/admin/catalog/:entityType/:id
func (h *Handler) UpdateEntity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateEntityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateEntity(c.Request.Context(), c.Param("entityType"), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetEntityByID retrieves one entity regardless of status.
// GET /api/v1/admin/catalog/:entityType/:id
func (h *Handler) GetEntityByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetEntityByID(c.Request.Context(), c.Param("entityType"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ListEntities lists entities of one type for the admin panel.
// GET /api/v1/admin/catalog/:entityType
func (h *Handler) ListEntities(c *gin.Context) {
	var req transport.ListEntitiesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.ListEntities(c.Request.Context(), c.Param("entityType"), req, false)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteEntity removes an entity.
// DELETE /api/v1/admin/catalog/:entityType/:id
func (h *Handler) DeleteEntity(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	err = h.svc.DeleteEntity(c.Request.Context(), c.Param("entityType"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// UploadAsset stores a multipart file upload for an entity.
// POST /api/v1/admin/catalog/:entityType/:id/assets
func (h *Handler) UploadAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "failed to read file", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.svc.UploadAsset(c.Request.Context(), c.Param("entityType"), id, fileHeader.Filename, contentType, data)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ListAssets lists an entity's assets.
// GET /api/v1/admin/catalog/:entityType/:id/assets
func (h *Handler) ListAssets(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.ListAssets(c.Request.Context(), c.Param("entityType"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteAsset removes an asset and its stored object.
// DELETE /api/v1/admin/catalog-assets/:assetID
func (h *Handler) DeleteAsset(c *gin.Context) {
	id, err := uuid.Parse(c.Param("assetID"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid asset id", nil)
		return
	}

	err = h.svc.DeleteAsset(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
