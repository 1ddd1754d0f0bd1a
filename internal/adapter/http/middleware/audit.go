package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"payment-resolver/internal/core/domain"
	"payment-resolver/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CtxResourceID lets a handler name the record it created.
const CtxResourceID = "audit_resource_id"

type auditRoute struct {
	method string
	path   string
}

type auditTarget struct {
	action       domain.AuditAction
	resourceType string
}

var auditedRoutes = map[auditRoute]auditTarget{
	{http.MethodPost, "/api/login"}:         {domain.AuditActionAdminLogin, "session"},
	{http.MethodPost, "/api"}:               {domain.AuditActionCreateEndpoint, "id_object"},
	{http.MethodPut, "/api/:id"}:            {domain.AuditActionUpdateEndpoint, "id_object"},
	{http.MethodDelete, "/api/:id"}:         {domain.AuditActionDeleteEndpoint, "id_object"},
	{http.MethodDelete, "/api/:id/privkey"}: {domain.AuditActionDeletePrivKey, "id_object"},
	{http.MethodPost, "/sf"}:                {domain.AuditActionSFRegister, "id_object"},
	{http.MethodPut, "/sf/:id"}:             {domain.AuditActionSFAdd, "presigned_payment_requests"},
	{http.MethodDelete, "/sf/:id"}:          {domain.AuditActionSFDelete, "id_object"},
	{http.MethodPost, "/prr/:id"}:           {domain.AuditActionReturnPR, "return_payment_request"},
}

// AuditLog records successful mutations on the admin and store-forward
// routes. Matching is on the registered route pattern.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}
		target, ok := auditedRoutes[auditRoute{c.Request.Method, c.FullPath()}]
		if !ok {
			return
		}

		resourceID := c.Param("id")
		if id := c.GetString(CtxResourceID); id != "" {
			resourceID = id
		}
		actor := c.GetString(CtxAdmin)
		if actor == "" {
			actor = c.GetString(CtxIdentity)
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"status": status,
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			Actor:        actor,
			Action:       target.action,
			ResourceType: target.resourceType,
			ResourceID:   resourceID,
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}
