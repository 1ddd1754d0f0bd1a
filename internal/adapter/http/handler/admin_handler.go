package handler

import (
	"encoding/json"

	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler exposes raw record CRUD behind JWT auth.
type AdminHandler struct {
	admin ports.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin ports.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// List handles GET /api.
func (h *AdminHandler) List(c *gin.Context) {
	objs, err := h.admin.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"count": len(objs), "results": objs})
}

// Get handles GET /api/:id.
func (h *AdminHandler) Get(c *gin.Context) {
	obj, err := h.admin.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"result": obj})
}

// Create handles POST /api.
func (h *AdminHandler) Create(c *gin.Context) {
	raw, ok := bindRawObject(c)
	if !ok {
		return
	}

	obj, err := h.admin.Create(c.Request.Context(), raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, obj.ID)
	response.Created(c, response.Body{"id": obj.ID, "result": obj})
}

// Update handles PUT /api/:id.
func (h *AdminHandler) Update(c *gin.Context) {
	raw, ok := bindRawObject(c)
	if !ok {
		return
	}

	obj, err := h.admin.Update(c.Request.Context(), c.Param("id"), raw)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"result": obj})
}

// Delete handles DELETE /api/:id.
func (h *AdminHandler) Delete(c *gin.Context) {
	if err := h.admin.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// DeletePrivateKey handles DELETE /api/:id/privkey.
func (h *AdminHandler) DeletePrivateKey(c *gin.Context) {
	if err := h.admin.DeletePrivateKey(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func bindRawObject(c *gin.Context) (map[string]json.RawMessage, bool) {
	var raw map[string]json.RawMessage
	if err := c.ShouldBindJSON(&raw); err != nil || raw == nil {
		response.Error(c, apperror.Validation("Invalid JSON body"))
		return nil, false
	}
	return raw, true
}
