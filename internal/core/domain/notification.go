package domain

import (
	"time"

	"github.com/google/uuid"
)

// NotificationStatus represents the delivery state of a PRR notification.
type NotificationStatus string

const (
	NotificationStatusPending   NotificationStatus = "PENDING"
	NotificationStatusDelivered NotificationStatus = "DELIVERED"
	NotificationStatusFailed    NotificationStatus = "FAILED"
)

// NotificationDeliveryLog records delivery attempts for one fulfilled PRR.
type NotificationDeliveryLog struct {
	ID              uuid.UUID          `json:"id"`
	PRRID           string             `json:"prr_id"`
	NotificationURL string             `json:"notification_url"`
	Payload         string             `json:"payload"` // JSON string
	HTTPStatus      *int               `json:"http_status"`
	Attempt         int                `json:"attempt"`
	Status          NotificationStatus `json:"status"`
	LastError       *string            `json:"last_error"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}
