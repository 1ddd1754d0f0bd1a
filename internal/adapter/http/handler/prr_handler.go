package handler

import (
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
)

const returnFailuresMessage = "Submitted Return PaymentRequests contain errors, please see failures field for more information"

// PRRHandler serves the queued PaymentRequest Request relay.
type PRRHandler struct {
	prr ports.PRRService
}

// NewPRRHandler creates a new PRRHandler.
func NewPRRHandler(prr ports.PRRService) *PRRHandler {
	return &PRRHandler{prr: prr}
}

// List handles GET /prr/:id.
func (h *PRRHandler) List(c *gin.Context) {
	requests, err := h.prr.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"count": len(requests), "requests": requests})
}

// SubmitReturns handles POST /prr/:id.
func (h *PRRHandler) SubmitReturns(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperror.Validation("Missing or Empty ready_requests list"))
		return
	}

	result, err := h.prr.SubmitReturn(c.Request.Context(), c.Param("id"), body)
	if err != nil {
		response.Error(c, err)
		return
	}

	if len(result.Failures) > 0 {
		response.ErrorWithData(c, apperror.Validation(returnFailuresMessage), response.Body{
			"accept_count": result.AcceptCount,
			"failures":     result.Failures,
		})
		return
	}
	response.OK(c, response.Body{"accept_count": result.AcceptCount})
}

// GetReturn handles GET /pr/:id. It is unauthenticated; the payload is
// encrypted to the receiver.
func (h *PRRHandler) GetReturn(c *gin.Context) {
	rpr, err := h.prr.GetReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{
		"encrypted_payment_request": rpr.EncryptedPaymentRequest,
		"receiver_pubkey":           rpr.ReceiverPubKey,
	})
}
