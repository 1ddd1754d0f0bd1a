package domain

import "time"

// PaymentRequestRequest is a queued ask for an offline endpoint owner to
// produce a payment request later.
type PaymentRequestRequest struct {
	ID              string `json:"id"`
	SenderPubKey    string `json:"sender_pubkey"`
	Amount          int64  `json:"amount"`
	NotificationURL string `json:"notification_url,omitempty"`
	X509Cert        string `json:"x509_cert,omitempty"`
	Signature       string `json:"signature,omitempty"`
	SubmitDate      int64  `json:"submit_date"`
}

// IsStale reports whether the record is older than maxAge at now.
func (p *PaymentRequestRequest) IsStale(now time.Time, maxAge time.Duration) bool {
	return time.Unix(p.SubmitDate, 0).Add(maxAge).Before(now)
}

// ReturnPaymentRequest is the owner's encrypted answer to a PRR.
type ReturnPaymentRequest struct {
	ID                      string `json:"id"`
	ReceiverPubKey          string `json:"receiver_pubkey"`
	EncryptedPaymentRequest string `json:"encrypted_payment_request"`
	SubmitDate              int64  `json:"submit_date"`
}

// IsStale reports whether the record is older than maxAge at now.
func (r *ReturnPaymentRequest) IsStale(now time.Time, maxAge time.Duration) bool {
	return time.Unix(r.SubmitDate, 0).Add(maxAge).Before(now)
}
