package ports

import (
	"context"
	"time"

	"payment-resolver/internal/core/domain"

	"github.com/btcsuite/btcd/wire"
)

// IdentityRepository persists IdObjects. Get returns nil, nil when absent.
type IdentityRepository interface {
	Get(ctx context.Context, id string) (*domain.IdObject, error)
	// Save writes the record, assigning a fresh collision-checked id when
	// obj.ID is empty. It returns the id written.
	Save(ctx context.Context, obj *domain.IdObject) (string, error)
	Delete(ctx context.Context, id string) error
	ListKeys(ctx context.Context) ([]string, error)
}

// BranchIndexStore tracks the last issued derivation index per branch.
type BranchIndexStore interface {
	// GetIndex reports the cursor for a branch, ok is false when none was issued.
	GetIndex(ctx context.Context, id string, branch uint32) (index int64, ok bool, err error)
	SetIndex(ctx context.Context, id string, branch uint32, index int64) error
	Branches(ctx context.Context, id string) ([]uint32, error)
	DeleteAll(ctx context.Context, id string) error
}

// PRRQueue holds pending PaymentRequestRequests per endpoint.
type PRRQueue interface {
	Add(ctx context.Context, endpointID string, prr *domain.PaymentRequestRequest) error
	List(ctx context.Context, endpointID string) ([]*domain.PaymentRequestRequest, error)
	Get(ctx context.Context, endpointID, prrID string) (*domain.PaymentRequestRequest, error)
	Delete(ctx context.Context, endpointID, prrID string) error
	Endpoints(ctx context.Context) ([]string, error)
}

// ReturnPRStore holds encrypted answers to PRRs. Get returns nil, nil when absent.
type ReturnPRStore interface {
	Put(ctx context.Context, rpr *domain.ReturnPaymentRequest) error
	Get(ctx context.Context, id string) (*domain.ReturnPaymentRequest, error)
	ListAll(ctx context.Context) ([]*domain.ReturnPaymentRequest, error)
	Delete(ctx context.Context, id string) error
}

// InvoiceMetaStore keeps the expected outputs of generated payment requests.
type InvoiceMetaStore interface {
	Put(ctx context.Context, meta *domain.InvoiceMeta) error
	Get(ctx context.Context, key string) (*domain.InvoiceMeta, error)
	// Purge removes entries whose expiration_date is before now.
	Purge(ctx context.Context, now time.Time) (int, error)
}

// PaymentMetaStore keeps refund data per submitted transaction.
type PaymentMetaStore interface {
	Put(ctx context.Context, meta *domain.PaymentMeta) error
	Get(ctx context.Context, txHash string) (*domain.PaymentMeta, error)
	Purge(ctx context.Context, now time.Time) (int, error)
}

// AddressCache answers whether an address has appeared on chain.
type AddressCache interface {
	IsAddressUsed(ctx context.Context, address string) (bool, error)
	CurrentSyncHeight(ctx context.Context) (int64, error)
	// IsUpToDate compares the sync height against the node tip.
	IsUpToDate(ctx context.Context) (bool, error)
	MarkUsed(ctx context.Context, address string, height int64) error
	SetSyncHeight(ctx context.Context, height int64) error
}

// BlockchainNode is the subset of node RPC the service relies on.
type BlockchainNode interface {
	GetBlockCount(ctx context.Context) (int64, error)
	GetBlock(ctx context.Context, height int64) (*wire.MsgBlock, error)
	// SendRawTransaction returns the node-assigned tx hash.
	SendRawTransaction(ctx context.Context, tx *wire.MsgTx) (string, error)
}

// PaymentRequestLogger records every generated payment request.
type PaymentRequestLogger interface {
	LogPaymentRequest(ctx context.Context, entry *domain.PaymentRequestLog) error
}

// AuditRepository persists audit entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// NotificationRepository persists PRR notification delivery attempts.
type NotificationRepository interface {
	Create(ctx context.Context, log *domain.NotificationDeliveryLog) error
	Update(ctx context.Context, log *domain.NotificationDeliveryLog) error
	GetByPRRID(ctx context.Context, prrID string) ([]domain.NotificationDeliveryLog, error)
}
