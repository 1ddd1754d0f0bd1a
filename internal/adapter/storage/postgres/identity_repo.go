package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"payment-resolver/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

const maxIDAttempts = 10

// ErrIDSpaceBusy means no free id was found after repeated collisions.
var ErrIDSpaceBusy = errors.New("unable to allocate unique id")

// IdentityRepo implements ports.IdentityRepository over a JSONB column.
type IdentityRepo struct {
	pool Pool
}

// NewIdentityRepo creates a new IdentityRepo.
func NewIdentityRepo(pool Pool) *IdentityRepo {
	return &IdentityRepo{pool: pool}
}

// Get returns nil, nil if no row matches.
func (r *IdentityRepo) Get(ctx context.Context, id string) (*domain.IdObject, error) {
	var data []byte
	err := r.pool.QueryRow(ctx, `SELECT data FROM identities WHERE id = $1`, id).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get identity: %w", err)
	}

	obj := domain.NewIdObject(id)
	if err := json.Unmarshal(data, obj); err != nil {
		return nil, fmt.Errorf("decode identity %s: %w", id, err)
	}
	obj.ID = id
	return obj, nil
}

// Save upserts obj. A record without an id gets a fresh one; the insert
// only succeeds when no row holds it yet.
func (r *IdentityRepo) Save(ctx context.Context, obj *domain.IdObject) (string, error) {
	if obj.ID != "" {
		data, err := json.Marshal(obj)
		if err != nil {
			return "", err
		}
		_, err = r.pool.Exec(ctx,
			`INSERT INTO identities (id, data) VALUES ($1, $2)
			 ON CONFLICT (id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
			obj.ID, data)
		if err != nil {
			return "", fmt.Errorf("upsert identity: %w", err)
		}
		return obj.ID, nil
	}

	for i := 0; i < maxIDAttempts; i++ {
		obj.ID = domain.NewHexToken(1)
		data, err := json.Marshal(obj)
		if err != nil {
			obj.ID = ""
			return "", err
		}
		tag, err := r.pool.Exec(ctx,
			`INSERT INTO identities (id, data) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
			obj.ID, data)
		if err != nil {
			obj.ID = ""
			return "", fmt.Errorf("insert identity: %w", err)
		}
		if tag.RowsAffected() == 1 {
			return obj.ID, nil
		}
	}
	obj.ID = ""
	return "", ErrIDSpaceBusy
}

func (r *IdentityRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM identities WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete identity: %w", err)
	}
	return nil
}

func (r *IdentityRepo) ListKeys(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM identities ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list identities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan identity id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
