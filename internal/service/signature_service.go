package service

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Secp256k1SignatureService implements ports.SignatureService.
type Secp256k1SignatureService struct{}

// NewSecp256k1SignatureService creates a new secp256k1 signature service.
func NewSecp256k1SignatureService() *Secp256k1SignatureService {
	return &Secp256k1SignatureService{}
}

// ParsePublicKey accepts a hex SEC1 key, compressed or uncompressed, or the
// 64-byte raw X||Y form.
func ParsePublicKey(pubKeyHex string) (*btcec.PublicKey, error) {
	raw, err := hex.DecodeString(pubKeyHex)
	if err != nil {
		return nil, fmt.Errorf("public key hex: %w", err)
	}
	if len(raw) == 64 {
		raw = append([]byte{0x04}, raw...)
	}
	pub, err := btcec.ParsePubKey(raw)
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}
	return pub, nil
}

// Verify checks sigHex over sha1(message), the digest ECDSA clients of the
// resolver protocol sign with. Signatures are either DER or
// the 64-byte r||s form.
func (s *Secp256k1SignatureService) Verify(pubKeyHex, sigHex string, message []byte) (bool, error) {
	pub, err := ParsePublicKey(pubKeyHex)
	if err != nil {
		return false, err
	}

	raw, err := hex.DecodeString(sigHex)
	if err != nil {
		return false, nil
	}

	sig, ok := parseSignature(raw)
	if !ok {
		return false, nil
	}

	digest := sha1.Sum(message)
	return sig.Verify(digest[:], pub), nil
}

func parseSignature(raw []byte) (*ecdsa.Signature, bool) {
	if len(raw) == 64 {
		var r, s secp256k1.ModNScalar
		if overflow := r.SetByteSlice(raw[:32]); overflow || r.IsZero() {
			return nil, false
		}
		if overflow := s.SetByteSlice(raw[32:]); overflow || s.IsZero() {
			return nil, false
		}
		return ecdsa.NewSignature(&r, &s), true
	}

	sig, err := ecdsa.ParseDERSignature(raw)
	if err != nil {
		return nil, false
	}
	return sig, true
}
