package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"modtok/internal/shared/dates"
	"modtok/internal/visibility/service"
	"modtok/internal/visibility/transport"
	"modtok/platform/httpkit"
	"modtok/platform/validator"
)

// Handler handles HTTP requests for visibility resolution and the
// editorial gate.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid entity id"
)

// New creates a new visibility handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetEffectiveVisibility resolves effective tiers for a batch of ids.
// GET /api/v1/visibility/effective
func (h *Handler) GetEffectiveVisibility(c *gin.Context) {
	var req transport.EffectiveVisibilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	ids, err := parseIDList(req.IDs)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "ids must be a comma-separated list of UUIDs", nil)
		return
	}

	asOf := dates.Today()
	if req.AsOf != "" {
		asOf, err = dates.Parse(req.AsOf)
		if httpkit.HandleError(c, err) {
			return
		}
	}

	tiers, err := h.svc.ResolveEffectiveCached(c.Request.Context(), req.Type, ids, asOf)
	if httpkit.HandleError(c, err) {
		return
	}

	resp := transport.EffectiveVisibilityResponse{
		Tiers: make(map[uuid.UUID]string, len(tiers)),
		AsOf:  dates.Format(asOf),
	}
	for id, tier := range tiers {
		resp.Tiers[id] = string(tier)
	}
	httpkit.OK(c, resp)
}

// GetEditorialState reports an entity's review flags and derived state.
// GET /api/v1/admin/editorial/:entityType/:id
func (h *Handler) GetEditorialState(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetEditorialState(c.Request.Context(), c.Param("entityType"), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateEditorialFlags applies a partial review flag update.
// PUT /api/v1/admin/editorial/:entityType/:id
func (h *Handler) UpdateEditorialFlags(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateEditorialFlagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	result, err := h.svc.UpdateEditorialFlags(c.Request.Context(), c.Param("entityType"), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// BulkApprove approves batches of entities partitioned by type.
// POST /api/v1/admin/editorial-bulk-approve
func (h *Handler) BulkApprove(c *gin.Context) {
	var req transport.BulkApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.BulkApprove(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}

	status := http.StatusOK
	if result.PartialFailure {
		status = http.StatusMultiStatus
	}
	httpkit.JSON(c, status, result)
}

func parseIDList(raw string) ([]uuid.UUID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
