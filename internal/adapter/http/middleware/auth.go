package middleware

import (
	"bytes"
	"io"
	"strings"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"
	"payment-resolver/pkg/apperror"
	"payment-resolver/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequirePublicKey admits the request only when X-Identity matches the
// auth_public_key of the record named by the :id route param. The loaded
// record is stored under CtxRecord.
func RequirePublicKey(repo ports.IdentityRepository, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetHeader(domain.HeaderIdentity)
		if identity == "" {
			response.Error(c, apperror.ErrMissingIdentity())
			c.Abort()
			return
		}

		obj, err := repo.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			log.Error().Err(err).Str("id", c.Param("id")).Msg("failed to load record for identity check")
			response.Error(c, apperror.Internal("Unable to Retrieve ID Object", err))
			c.Abort()
			return
		}
		if obj == nil || !strings.EqualFold(obj.AuthPublicKey, identity) {
			response.Error(c, apperror.ErrUnknownID())
			c.Abort()
			return
		}

		c.Set(CtxIdentity, identity)
		c.Set(CtxRecord, obj)
		c.Next()
	}
}

// RequireValidSignature checks X-Signature over the full request URL
// followed by the raw body, signed by the X-Identity key. The body is
// restored for the handler.
func RequireValidSignature(sigSvc ports.SignatureService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := c.GetHeader(domain.HeaderIdentity)
		if identity == "" {
			response.Error(c, apperror.ErrMissingIdentity())
			c.Abort()
			return
		}
		signature := c.GetHeader(domain.HeaderSignature)
		if signature == "" {
			response.Error(c, apperror.ErrMissingSignature())
			c.Abort()
			return
		}

		var body []byte
		if c.Request.Body != nil {
			var err error
			body, err = io.ReadAll(c.Request.Body)
			if err != nil {
				response.Error(c, apperror.Validation("Unable to read request body"))
				c.Abort()
				return
			}
			c.Request.Body = io.NopCloser(bytes.NewReader(body))
		}

		message := append([]byte(RequestURL(c)), body...)
		ok, err := sigSvc.Verify(identity, signature, message)
		if err != nil {
			response.Error(c, apperror.ErrBadPublicKey())
			c.Abort()
			return
		}
		if !ok {
			response.Error(c, apperror.ErrInvalidSignature())
			c.Abort()
			return
		}

		c.Set(CtxIdentity, identity)
		c.Next()
	}
}

// RequestURL rebuilds the absolute URL the client addressed, honouring
// X-Forwarded-Proto from a terminating proxy.
func RequestURL(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if p := c.GetHeader("X-Forwarded-Proto"); p != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(p, ",")[0]))
	}
	return scheme + "://" + c.Request.Host + c.Request.URL.RequestURI()
}
