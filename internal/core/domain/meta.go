package domain

import (
	"encoding/json"
	"time"
)

// InvoiceMeta is recorded when a payment request is generated and consulted
// when the matching Payment arrives. The key travels as merchant_data.
type InvoiceMeta struct {
	Key                   string `json:"-"`
	ExpirationDate        int64  `json:"expiration_date"`
	PaymentValidationData string `json:"payment_validation_data"` // JSON {address: satoshis}
}

// NewInvoiceMeta encodes the expected outputs.
func NewInvoiceMeta(key string, expires int64, expected map[string]int64) (*InvoiceMeta, error) {
	buf, err := json.Marshal(expected)
	if err != nil {
		return nil, err
	}
	return &InvoiceMeta{
		Key:                   key,
		ExpirationDate:        expires,
		PaymentValidationData: string(buf),
	}, nil
}

// ExpectedOutputs decodes payment_validation_data into a fresh map.
func (m *InvoiceMeta) ExpectedOutputs() (map[string]int64, error) {
	out := make(map[string]int64)
	if err := json.Unmarshal([]byte(m.PaymentValidationData), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// IsExpired reports whether the expiration date has passed.
func (m *InvoiceMeta) IsExpired(now time.Time) bool {
	return now.Unix() > m.ExpirationDate
}

// PaymentMeta is recorded per submitted transaction for refund lookups.
type PaymentMeta struct {
	TxHash         string   `json:"-"`
	Memo           string   `json:"memo"`
	RefundTo       []string `json:"refund_to"` // hex scripts
	ExpirationDate int64    `json:"expiration_date,omitempty"`
}

// IsExpired reports whether the expiration date has passed.
func (m *PaymentMeta) IsExpired(now time.Time) bool {
	return now.Unix() > m.ExpirationDate
}

// PaymentRequestLog describes one generated payment request.
type PaymentRequestLog struct {
	Address      string    `json:"address"`
	Signer       string    `json:"signer"`
	Amount       int64     `json:"amount"`
	Expires      int64     `json:"expires"`
	Memo         string    `json:"memo,omitempty"`
	PaymentURL   string    `json:"payment_url,omitempty"`
	MerchantData string    `json:"merchant_data,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
