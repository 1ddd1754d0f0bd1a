package bip70

import (
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/btcsuite/btcd/chaincfg"
)

// SatoshiPerCoin scales whole-coin amounts to output values.
const SatoshiPerCoin = 100000000

// Signer signs the serialized PaymentRequest.
type Signer interface {
	PKIType() string
	Sign(data []byte) ([]byte, error)
}

// Request describes a single-output PaymentRequest to build.
type Request struct {
	Destination  string
	Amount       int64 // whole coins
	Time         time.Time
	Expires      time.Time
	Memo         string
	PaymentURL   string
	MerchantData []byte
	CertPEM      string
	Signer       Signer
}

// ErrNoCertificates is returned when CertPEM holds no certificate block.
var ErrNoCertificates = errors.New("bip70: no certificates in PEM data")

// Build encodes and, when both a certificate and a signer are given, signs
// the PaymentRequest. It returns the serialized message.
func Build(req Request, params *chaincfg.Params) ([]byte, error) {
	if req.Amount < 0 {
		return nil, fmt.Errorf("bip70: negative amount %d", req.Amount)
	}
	if req.Amount > math.MaxInt64/SatoshiPerCoin {
		return nil, fmt.Errorf("bip70: amount %d overflows output value", req.Amount)
	}

	details := PaymentDetails{
		Network: NetworkName(params),
		Outputs: []Output{{
			Amount: uint64(req.Amount) * SatoshiPerCoin,
			Script: DestinationScript(req.Destination, params),
		}},
		Time:         uint64(req.Time.Unix()),
		Memo:         req.Memo,
		PaymentURL:   req.PaymentURL,
		MerchantData: req.MerchantData,
	}

	if !req.Expires.IsZero() {
		details.Expires = uint64(req.Expires.Unix())
	}

	pr := PaymentRequest{
		PaymentDetailsVersion:    DefaultVersion,
		PKIType:                  PKITypeNone,
		SerializedPaymentDetails: details.Marshal(),
	}

	if req.CertPEM == "" || req.Signer == nil {
		return pr.Marshal(), nil
	}

	certs, err := CertificatesFromPEM(req.CertPEM)
	if err != nil {
		return nil, err
	}
	pr.PKIType = req.Signer.PKIType()
	pr.PKIData = (&X509Certificates{Certificates: certs}).Marshal()
	pr.Signature = []byte{}

	sig, err := req.Signer.Sign(pr.Marshal())
	if err != nil {
		return nil, fmt.Errorf("signing payment request: %w", err)
	}
	pr.Signature = sig
	return pr.Marshal(), nil
}

// CertificatesFromPEM returns the DER bytes of each CERTIFICATE block in order.
func CertificatesFromPEM(data string) ([][]byte, error) {
	var certs [][]byte
	rest := []byte(data)
	for {
		var block *pem.Block
		block, rest = pem.Decode(rest)
		if block == nil {
			break
		}
		if block.Type == "CERTIFICATE" {
			certs = append(certs, block.Bytes)
		}
	}
	if len(certs) == 0 {
		return nil, ErrNoCertificates
	}
	return certs, nil
}

// VerifySignature checks the signature against the leaf certificate in
// pki_data. Only x509+sha256 is understood.
func (r *PaymentRequest) VerifySignature() error {
	if r.PKIType != PKITypeX509SHA256 {
		return fmt.Errorf("bip70: unsupported pki_type %q", r.PKIType)
	}

	var chain X509Certificates
	if err := chain.Unmarshal(r.PKIData); err != nil {
		return fmt.Errorf("bip70: pki_data: %w", err)
	}
	if len(chain.Certificates) == 0 {
		return ErrNoCertificates
	}
	leaf, err := x509.ParseCertificate(chain.Certificates[0])
	if err != nil {
		return fmt.Errorf("bip70: leaf certificate: %w", err)
	}

	unsigned := *r
	unsigned.Signature = []byte{}
	return leaf.CheckSignature(x509.SHA256WithRSA, unsigned.Marshal(), r.Signature)
}
