package handler

import (
	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
)

// StoreForwardHandler manages presigned PaymentRequest endpoints.
type StoreForwardHandler struct {
	sf ports.StoreForwardService
}

// NewStoreForwardHandler creates a new StoreForwardHandler.
func NewStoreForwardHandler(sf ports.StoreForwardService) *StoreForwardHandler {
	return &StoreForwardHandler{sf: sf}
}

// Register handles POST /sf.
func (h *StoreForwardHandler) Register(c *gin.Context) {
	reg, err := h.sf.Register(c.Request.Context(), c.GetString(middleware.CtxIdentity))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Set(middleware.CtxResourceID, reg.ID)
	response.OK(c, response.Body{"id": reg.ID, "endpoint": reg.Endpoint})
}

// Add handles PUT /sf/:id.
func (h *StoreForwardHandler) Add(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperror.Validation("Invalid Request"))
		return
	}

	added, err := h.sf.Add(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"payment_requests_added": added})
}

// Delete handles DELETE /sf/:id.
func (h *StoreForwardHandler) Delete(c *gin.Context) {
	if err := h.sf.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Count handles GET /sf/:id.
func (h *StoreForwardHandler) Count(c *gin.Context) {
	n, err := h.sf.Count(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"payment_request_count": n})
}
