package postgres

import (
	"context"
	"fmt"
	"time"

	"payment-resolver/internal/core/domain"
)

// NotificationRepo implements ports.NotificationRepository.
type NotificationRepo struct {
	pool Pool
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(pool Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Create(ctx context.Context, log *domain.NotificationDeliveryLog) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notification_delivery_logs
		 (id, prr_id, notification_url, payload, http_status, attempt, status, last_error, created_at, updated_at)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		log.ID, log.PRRID, log.NotificationURL, log.Payload, log.HTTPStatus,
		log.Attempt, string(log.Status), log.LastError, log.CreatedAt, log.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert notification log: %w", err)
	}
	return nil
}

func (r *NotificationRepo) Update(ctx context.Context, log *domain.NotificationDeliveryLog) error {
	log.UpdatedAt = time.Now()
	_, err := r.pool.Exec(ctx,
		`UPDATE notification_delivery_logs
		 SET http_status=$1, attempt=$2, status=$3, last_error=$4, updated_at=$5
		 WHERE id=$6`,
		log.HTTPStatus, log.Attempt, string(log.Status), log.LastError, log.UpdatedAt, log.ID,
	)
	if err != nil {
		return fmt.Errorf("update notification log: %w", err)
	}
	return nil
}

func (r *NotificationRepo) GetByPRRID(ctx context.Context, prrID string) ([]domain.NotificationDeliveryLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, prr_id, notification_url, payload, http_status, attempt, status, last_error, created_at, updated_at
		 FROM notification_delivery_logs
		 WHERE prr_id=$1
		 ORDER BY created_at DESC`, prrID)
	if err != nil {
		return nil, fmt.Errorf("query notification logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.NotificationDeliveryLog
	for rows.Next() {
		var l domain.NotificationDeliveryLog
		var status string
		if err := rows.Scan(
			&l.ID, &l.PRRID, &l.NotificationURL, &l.Payload, &l.HTTPStatus,
			&l.Attempt, &status, &l.LastError, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification log: %w", err)
		}
		l.Status = domain.NotificationStatus(status)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
