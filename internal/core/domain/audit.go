package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionCreateEndpoint AuditAction = "CREATE_ENDPOINT"
	AuditActionUpdateEndpoint AuditAction = "UPDATE_ENDPOINT"
	AuditActionDeleteEndpoint AuditAction = "DELETE_ENDPOINT"
	AuditActionDeletePrivKey  AuditAction = "DELETE_PRIVKEY"
	AuditActionAdminLogin     AuditAction = "ADMIN_LOGIN"
	AuditActionSFRegister     AuditAction = "SF_REGISTER"
	AuditActionSFAdd          AuditAction = "SF_ADD"
	AuditActionSFDelete       AuditAction = "SF_DELETE"
	AuditActionReturnPR       AuditAction = "RETURN_PR"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	Actor        string      `json:"actor,omitempty"` // admin user or caller identity key
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
