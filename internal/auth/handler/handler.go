package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"modtok/internal/auth/service"
	"modtok/internal/auth/transport"
	"modtok/platform/httpkit"
	"modtok/platform/validator"
)

// Handler handles HTTP requests for admin authentication.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
)

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login verifies credentials and returns an access token.
// POST /api/v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Login(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Me returns the calling admin's profile.
// GET /api/v1/admin/me
func (h *Handler) Me(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	result, err := h.svc.Me(c.Request.Context(), id.AdminID())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ChangePassword updates the calling admin's password.
// PUT /api/v1/admin/me/password
func (h *Handler) ChangePassword(c *gin.Context) {
	id := httpkit.MustGetIdentity(c)
	if id == nil {
		return
	}

	var req transport.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	err := h.svc.ChangePassword(c.Request.Context(), id.AdminID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
