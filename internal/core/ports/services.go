package ports

import (
	"context"
	"encoding/json"
	"time"

	"payment-resolver/internal/core/domain"
)

// EncryptionService handles AES-256-GCM encryption/decryption.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// SignatureService verifies secp256k1 request signatures.
type SignatureService interface {
	// Verify reports whether sigHex is a valid signature by the hex-encoded
	// public key over sha256(message). It returns an error only when the key
	// cannot be parsed.
	Verify(pubKeyHex, sigHex string, message []byte) (bool, error)
}

// HashService handles password hashing (Argon2id).
type HashService interface {
	Hash(password string) (string, error)
	Verify(password string, hash string) (bool, error)
}

// TokenService handles JWT token operations.
type TokenService interface {
	Generate(subject string) (string, time.Time, error)
	Validate(tokenString string) (*TokenClaims, error)
}

// TokenClaims holds the parsed JWT claims.
type TokenClaims struct {
	Subject string
}

// Signer signs serialized PaymentRequests on behalf of an endpoint.
type Signer interface {
	Sign(ctx context.Context, obj *domain.IdObject, data []byte) ([]byte, error)
	PKIType() string
	// Bind prepares the signing material stored on the record.
	Bind(ctx context.Context, obj *domain.IdObject) error
}

// --- Service Ports (Business Logic) ---

// ResolverService turns an endpoint id into a payment destination.
type ResolverService interface {
	Resolve(ctx context.Context, req ResolveRequest) (*ResolveResult, error)
	Branches(ctx context.Context, id string) ([]uint32, error)
}

// ResolveRequest carries the request signals the decision tree reads.
type ResolveRequest struct {
	ID       string
	BIP70    string // raw bip70 query value, lowercased
	Accept   string
	Amount   string // raw amount query value
	ClientIP string
}

// ResolveResult is either a binary PaymentRequest or a BIP72 URI.
type ResolveResult struct {
	PaymentRequest []byte
	URI            string
}

// PaymentService validates and broadcasts BIP70 Payments.
type PaymentService interface {
	Process(ctx context.Context, sub PaymentSubmission) ([]byte, error)
	RefundAddress(ctx context.Context, txHash string) (*domain.PaymentMeta, error)
}

// PaymentSubmission holds the raw Payment and the headers it arrived with.
type PaymentSubmission struct {
	ID              string
	Body            []byte
	ContentType     string
	Accept          string
	TestTransaction bool
}

// StoreForwardService manages presigned PaymentRequest endpoints.
type StoreForwardService interface {
	Register(ctx context.Context, identity string) (*Registration, error)
	Add(ctx context.Context, id string, body []byte) (int, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context, id string) (int, error)
}

// Registration is returned for a newly created store-forward endpoint.
type Registration struct {
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
}

// PRRService implements the PaymentRequest Request relay.
type PRRService interface {
	Submit(ctx context.Context, id, senderPubKey string, body []byte) (string, error)
	List(ctx context.Context, id string) ([]*domain.PaymentRequestRequest, error)
	SubmitReturn(ctx context.Context, id string, body []byte) (*ReturnResult, error)
	GetReturn(ctx context.Context, prrID string) (*domain.ReturnPaymentRequest, error)
}

// ReturnResult reports a batch of return PaymentRequests.
type ReturnResult struct {
	AcceptCount int
	Failures    map[string][]string
}

// AdminService is the raw record CRUD surface.
type AdminService interface {
	List(ctx context.Context) ([]*domain.IdObject, error)
	Get(ctx context.Context, id string) (*domain.IdObject, error)
	Create(ctx context.Context, raw map[string]json.RawMessage) (*domain.IdObject, error)
	Update(ctx context.Context, id string, raw map[string]json.RawMessage) (*domain.IdObject, error)
	Delete(ctx context.Context, id string) error
	DeletePrivateKey(ctx context.Context, id string) error
}

// AuthService authenticates the admin user.
type AuthService interface {
	Login(ctx context.Context, username, password string) (string, time.Time, error) // token, expiry, error
}

// AuditService records audited actions.
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// NotificationService tells a PRR sender its return PaymentRequest is ready.
type NotificationService interface {
	NotifyFulfilled(ctx context.Context, prr *domain.PaymentRequestRequest, location string) error
}
