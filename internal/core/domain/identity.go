package domain

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// IdObject is the per-endpoint configuration record an id resolves to.
type IdObject struct {
	ID                       string   `json:"id"`
	BIP32Enabled             bool     `json:"bip32_enabled"`
	BIP70Enabled             bool     `json:"bip70_enabled"`
	MasterPublicKey          string   `json:"master_public_key"`
	WalletAddress            string   `json:"wallet_address"`
	LastGeneratedIndex       int64    `json:"last_generated_index"`
	LastUsedIndex            int64    `json:"last_used_index"`
	PrivateKey               string   `json:"private_key"` // encrypted at rest, never returned
	PrivateKeyID             string   `json:"private_key_id"`
	X509Cert                 string   `json:"x509_cert"`
	Expires                  *Expiry  `json:"expires"`
	Memo                     string   `json:"memo"`
	PaymentURL               string   `json:"payment_url"`
	MerchantData             string   `json:"merchant_data"`
	BIP70StaticAmount        *int64   `json:"bip70_static_amount"`
	PresignedPaymentRequests []string `json:"presigned_payment_requests"`
	PresignedOnly            bool     `json:"presigned_only"`
	PRROnly                  bool     `json:"prr_only"`
	AuthPublicKey            string   `json:"auth_public_key"`
}

// NewIdObject returns a record with every field at its default.
func NewIdObject(id string) *IdObject {
	return &IdObject{
		ID:                       id,
		PresignedPaymentRequests: []string{},
	}
}

// HasPresigned reports whether any presigned requests remain.
func (o *IdObject) HasPresigned() bool {
	return len(o.PresignedPaymentRequests) > 0
}

// Redacted returns a copy safe to hand to admin clients.
func (o *IdObject) Redacted() *IdObject {
	cp := *o
	cp.PrivateKey = ""
	cp.PresignedPaymentRequests = append([]string{}, o.PresignedPaymentRequests...)
	return &cp
}

// idObjectFields lists the keys accepted by ApplyUpdate.
var idObjectFields = map[string]struct{}{
	"id": {}, "bip32_enabled": {}, "bip70_enabled": {}, "master_public_key": {},
	"wallet_address": {}, "last_generated_index": {}, "last_used_index": {},
	"private_key": {}, "private_key_id": {}, "x509_cert": {}, "expires": {},
	"memo": {}, "payment_url": {}, "merchant_data": {}, "bip70_static_amount": {},
	"presigned_payment_requests": {}, "presigned_only": {}, "prr_only": {},
	"auth_public_key": {},
}

// ErrUnknownField is returned by ApplyUpdate for keys outside the record.
type ErrUnknownField struct {
	Key string
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown key %q", e.Key)
}

// ApplyUpdate copies the submitted keys onto the record. The id is never
// changed and an empty private_key leaves the stored key in place.
func (o *IdObject) ApplyUpdate(raw map[string]json.RawMessage) error {
	for key := range raw {
		if _, ok := idObjectFields[key]; !ok {
			return &ErrUnknownField{Key: key}
		}
	}

	id := o.ID
	privateKey := o.PrivateKey

	filtered := make(map[string]json.RawMessage, len(raw))
	for key, val := range raw {
		if key == "id" {
			continue
		}
		filtered[key] = val
	}

	buf, err := json.Marshal(filtered)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(buf, o); err != nil {
		return err
	}

	o.ID = id
	if o.PrivateKey == "" {
		o.PrivateKey = privateKey
	}
	if o.PresignedPaymentRequests == nil {
		o.PresignedPaymentRequests = []string{}
	}
	return nil
}

// Expiry is either an offset from generation time or an absolute instant.
// JSON form: a number of seconds, or an RFC3339 string.
type Expiry struct {
	Offset time.Duration
	At     time.Time
}

// Resolve returns the unix expiry relative to now.
func (e *Expiry) Resolve(now time.Time) int64 {
	if !e.At.IsZero() {
		return e.At.Unix()
	}
	return now.Add(e.Offset).Unix()
}

func (e Expiry) MarshalJSON() ([]byte, error) {
	if !e.At.IsZero() {
		return json.Marshal(e.At.UTC().Format(time.RFC3339))
	}
	return json.Marshal(int64(e.Offset / time.Second))
}

func (e *Expiry) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		at, err := time.Parse(time.RFC3339, strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("expires: %w", err)
		}
		*e = Expiry{At: at}
		return nil
	}

	var secs int64
	if err := json.Unmarshal(b, &secs); err != nil {
		return fmt.Errorf("expires: %w", err)
	}
	*e = Expiry{Offset: time.Duration(secs) * time.Second}
	return nil
}

// NewHexToken concatenates n random UUIDs as lowercase hex, 32*n chars.
func NewHexToken(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		u := uuid.New()
		sb.WriteString(hex.EncodeToString(u[:]))
	}
	return sb.String()
}
