package domain

import (
	"errors"
	"math"
)

// Payment protocol MIME types.
const (
	MIMEPaymentRequest = "application/bitcoin-paymentrequest"
	MIMEPayment        = "application/bitcoin-payment"
	MIMEPaymentACK     = "application/bitcoin-paymentack"
)

// Request headers.
const (
	HeaderIdentity        = "X-Identity"
	HeaderSignature       = "X-Signature"
	HeaderTestTransaction = "Test-Transaction"
)

// TestTxHash stands in for a node-assigned hash when submission is skipped.
const TestTxHash = "testtxhash"

// SatoshiPerUnit converts whole currency units to the smallest unit.
const SatoshiPerUnit = 100000000

// MaxAmount is the largest whole-unit amount whose satoshi value fits in int64.
const MaxAmount = math.MaxInt64 / SatoshiPerUnit

var (
	// ErrDerivationExhausted means every candidate index up to the cap was used.
	ErrDerivationExhausted = errors.New("no unused address within derivation limit")
	// ErrMissingMasterKey means bip32 is enabled without an extended key.
	ErrMissingMasterKey = errors.New("master public key missing")
	// ErrMissingCert means a signed request was asked for without a certificate.
	ErrMissingCert = errors.New("x509 certificate missing")
)
