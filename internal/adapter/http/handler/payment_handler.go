package handler

import (
	"payment-resolver/internal/adapter/http/dto"
	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles BIP70 Payment submission and refund lookups.
type PaymentHandler struct {
	paymentSvc ports.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentSvc ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

// SubmitPayment handles POST /payment/:id.
func (h *PaymentHandler) SubmitPayment(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperror.ErrInvalidPayment())
		return
	}

	ack, err := h.paymentSvc.Process(c.Request.Context(), ports.PaymentSubmission{
		ID:              c.Param("id"),
		Body:            body,
		ContentType:     c.GetHeader("Content-Type"),
		Accept:          c.GetHeader("Accept"),
		TestTransaction: c.GetHeader(domain.HeaderTestTransaction) != "",
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Binary(c, domain.MIMEPaymentACK, ack)
}

// RefundAddress handles GET /payment/:id/refund/:tx.
func (h *PaymentHandler) RefundAddress(c *gin.Context) {
	var p dto.RefundParams
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.ErrNotFound("Unable to Retrieve Payment Meta for Transaction"))
		return
	}

	meta, err := h.paymentSvc.RefundAddress(c.Request.Context(), p.TxHash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, response.Body{
		"memo":      meta.Memo,
		"refund_to": meta.RefundTo,
	})
}
