package dto

// LoginRequest is the admin API login body.
type LoginRequest struct {
	Username string `json:"username" binding:"required,max=64" sanitize:"trim"`
	Password string `json:"password" binding:"required,max=256"`
}

// IDParam binds the :id route segment.
type IDParam struct {
	ID string `uri:"id" binding:"required,safe_id"`
}

// RefundParams binds GET /payment/:id/refund/:tx.
type RefundParams struct {
	ID     string `uri:"id" binding:"required,safe_id"`
	TxHash string `uri:"tx" binding:"required,len=64,hexstr"`
}

// PRRNotification is the part of a PRR body checked at the edge.
type PRRNotification struct {
	NotificationURL string `json:"notification_url" binding:"omitempty,safe_url" sanitize:"trim"`
}

// HealthResponse reports dependency health.
type HealthResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]DependencyStatus `json:"dependencies"`
}

// DependencyStatus is one entry of HealthResponse.
type DependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}
