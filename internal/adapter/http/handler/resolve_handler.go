package handler

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"payment-resolver/internal/adapter/http/dto"
	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// ResolveHandler serves endpoint resolution and PRR submission.
type ResolveHandler struct {
	resolver       ports.ResolverService
	prr            ports.PRRService
	adminPubKey    string
	allowedOrigins []string
}

// NewResolveHandler creates a new ResolveHandler. adminPubKey authorizes
// branch listing; empty disables it. Referrers containing siteURL or a
// loopback host are echoed back as the CORS origin of URI responses.
func NewResolveHandler(resolver ports.ResolverService, prr ports.PRRService, adminPubKey, siteURL string) *ResolveHandler {
	origins := []string{"localhost", "127.0.0.1"}
	if siteURL != "" {
		origins = append([]string{siteURL}, origins...)
	}
	return &ResolveHandler{resolver: resolver, prr: prr, adminPubKey: adminPubKey, allowedOrigins: origins}
}

// Resolve handles GET /resolve/:id.
func (h *ResolveHandler) Resolve(c *gin.Context) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.ErrNotFound("Unable to retrieve endpoint from database"))
		return
	}

	result, err := h.resolver.Resolve(c.Request.Context(), ports.ResolveRequest{
		ID:       p.ID,
		BIP70:    strings.ToLower(c.Query("bip70")),
		Accept:   c.GetHeader("Accept"),
		Amount:   c.Query("amount"),
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		if apperror.HasCode(err, apperror.ErrPRROnly().Code) {
			c.Header("Allow", http.MethodPost)
		}
		response.Error(c, err)
		return
	}

	if result.PaymentRequest != nil {
		response.Binary(c, domain.MIMEPaymentRequest, result.PaymentRequest)
		return
	}
	h.setURICORSHeaders(c)
	c.String(http.StatusOK, result.URI)
}

// setURICORSHeaders lets browser wallets on an allowed origin read the
// bitcoin: URI.
func (h *ResolveHandler) setURICORSHeaders(c *gin.Context) {
	c.Header("Access-Control-Allow-Methods", "GET, POST")
	c.Header("Access-Control-Allow-Headers", "X-Requested-With, accept, content-type")

	referrer := c.Request.Referer()
	if referrer == "" {
		return
	}
	for _, origin := range h.allowedOrigins {
		if !strings.Contains(referrer, origin) {
			continue
		}
		u, err := url.Parse(referrer)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return
		}
		c.Header("Access-Control-Allow-Origin", u.Scheme+"://"+u.Host)
		return
	}
}

// SubmitPRR handles POST /resolve/:id. The caller is authenticated by
// signature only; its identity becomes the PRR sender key.
func (h *ResolveHandler) SubmitPRR(c *gin.Context) {
	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.ErrUnknownID())
		return
	}

	body, err := c.GetRawData()
	if err != nil {
		response.Error(c, apperror.Validation("Invalid Request"))
		return
	}

	var n dto.PRRNotification
	if json.Unmarshal(body, &n) == nil {
		dto.SanitizeStruct(&n)
		if binding.Validator.ValidateStruct(&n) != nil {
			response.Error(c, apperror.Validation("Invalid notification_url"))
			return
		}
	}

	location, err := h.prr.Submit(c.Request.Context(), p.ID, c.GetString(middleware.CtxIdentity), body)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Location", location)
	response.Accepted(c, nil)
}

// Branches handles GET /branches/:id. Only the configured admin key may
// list branches.
func (h *ResolveHandler) Branches(c *gin.Context) {
	identity := c.GetString(middleware.CtxIdentity)
	if h.adminPubKey == "" || !strings.EqualFold(identity, h.adminPubKey) {
		response.Error(c, apperror.ErrUnknownID())
		return
	}

	var p dto.IDParam
	if err := c.ShouldBindUri(&p); err != nil {
		response.Error(c, apperror.ErrUnknownID())
		return
	}

	branches, err := h.resolver.Branches(c.Request.Context(), p.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, response.Body{"branches": branches})
}
